package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ekoshkina/gearshare/internal/dto"
	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/bookings")
	bookings.POST("", h.Create)
	bookings.GET("/owner", h.GetAllForOwner)
	bookings.GET("/:id", h.GetByID)
	bookings.PATCH("/:id", h.SetApprove)
	bookings.GET("", h.GetAllForBooker)
}

func (h *BookingHandler) Create(c echo.Context) error {
	bookerID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ItemID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "item_id is required")
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_at and end_at are required")
	}
	if !req.EndAt.After(req.StartAt) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_at must be after start_at")
	}
	if req.StartAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "start_at must not be in the past")
	}

	booking := &models.Booking{
		ItemID:  req.ItemID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	}
	created, err := h.svc.Create(c.Request().Context(), booking, bookerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound),
			errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrOwnerBooking):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrItemUnavailable):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, dto.ToBookingResponse(created))
}

func (h *BookingHandler) SetApprove(c echo.Context) error {
	ownerID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved must be true or false")
	}

	booking, err := h.svc.SetApprove(c.Request().Context(), id, approved, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrNoAccess):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStatusFinal):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetByID(c echo.Context) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetByID(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrNoAccess):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetAllForBooker(c echo.Context) error {
	return h.listBookings(c, h.svc.GetAllForBooker)
}

func (h *BookingHandler) GetAllForOwner(c echo.Context) error {
	return h.listBookings(c, h.svc.GetAllForOwner)
}

func (h *BookingHandler) listBookings(
	c echo.Context,
	query func(ctx context.Context, userID uint, state models.BookingState, from, size int) ([]models.Booking, error),
) error {
	userID, err := userIDFromHeader(c)
	if err != nil {
		return err
	}
	state, err := models.ParseBookingState(c.QueryParam("state"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	from, size, err := pagingParams(c)
	if err != nil {
		return err
	}

	bookings, err := query(c.Request().Context(), userID, state, from, size)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponseList(bookings))
}
