package dto

import (
	"time"

	"github.com/ekoshkina/gearshare/internal/models"
)

type CreateBookingRequest struct {
	ItemID  uint      `json:"item_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type BookingResponse struct {
	ID      uint                 `json:"id"`
	StartAt time.Time            `json:"start_at"`
	EndAt   time.Time            `json:"end_at"`
	Status  models.BookingStatus `json:"status"`
	Item    *ItemResponse        `json:"item,omitempty"`
	Booker  *UserResponse        `json:"booker,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:      b.ID,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Status:  b.Status,
	}
	if b.Item != nil {
		item := ToItemResponse(b.Item)
		resp.Item = &item
	}
	if b.Booker != nil {
		booker := ToUserResponse(b.Booker)
		resp.Booker = &booker
	}
	return resp
}

func ToBookingResponseList(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
