package handler

import (
	"errors"
	"net/http"

	"github.com/ekoshkina/gearshare/internal/dto"
	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/service"
	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	svc service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) RegisterRoutes(e *echo.Echo) {
	requests := e.Group("/requests")
	requests.POST("", h.Create)
	requests.GET("", h.GetOwn)
	requests.GET("/all", h.GetAll)
	requests.GET("/:id", h.GetByID)
}

func (h *RequestHandler) Create(c echo.Context) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}

	var req dto.CreateItemRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}

	request := &models.ItemRequest{Description: req.Description}
	if err := h.svc.Create(c.Request().Context(), request, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponse(request))
}

func (h *RequestHandler) GetByID(c echo.Context) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	request, err := h.svc.GetByID(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound), errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponse(request))
}

func (h *RequestHandler) GetOwn(c echo.Context) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.GetOwn(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponseList(requests))
}

func (h *RequestHandler) GetAll(c echo.Context) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	from, size, err := pagingParams(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.GetAll(c.Request().Context(), userID, from, size)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToItemRequestResponseList(requests))
}
