package handler

import (
	"errors"
	"net/http"

	"github.com/ekoshkina/gearshare/internal/dto"
	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/service"
	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	items := e.Group("/items")
	items.POST("", h.Create)
	items.GET("", h.GetAllForOwner)
	items.GET("/search", h.Search)
	items.GET("/:id", h.GetByID)
	items.PATCH("/:id", h.Patch)
}

func (h *ItemHandler) Create(c echo.Context) error {
	ownerID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}

	var req dto.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and description are required")
	}
	if req.Available == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "available is required")
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}
	if err := h.svc.Create(c.Request().Context(), item, ownerID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrRequestNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

func (h *ItemHandler) Patch(c echo.Context) error {
	ownerID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item, err := h.svc.Patch(c.Request().Context(), id, ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrNoAccess):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *ItemHandler) GetByID(c echo.Context) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.svc.GetByID(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *ItemHandler) GetAllForOwner(c echo.Context) error {
	ownerID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	from, size, err := pagingParams(c)
	if err != nil {
		return err
	}

	items, err := h.svc.GetAllForOwner(c.Request().Context(), ownerID, from, size)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToItemResponseList(items))
}

func (h *ItemHandler) Search(c echo.Context) error {
	if _, err := userIDFromHeader(c); err != nil {
		return err
	}
	from, size, err := pagingParams(c)
	if err != nil {
		return err
	}

	items, err := h.svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToItemResponseList(items))
}
