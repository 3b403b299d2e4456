package models

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// BookingState is the filter used when listing bookings. It is a query
// concept, distinct from the persisted BookingStatus.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StateFuture   BookingState = "FUTURE"
	StatePast     BookingState = "PAST"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a query-parameter value to a BookingState.
// An empty value defaults to ALL.
func ParseBookingState(s string) (BookingState, error) {
	if s == "" {
		return StateAll, nil
	}
	switch state := BookingState(s); state {
	case StateAll, StateCurrent, StateFuture, StatePast, StateWaiting, StateRejected:
		return state, nil
	default:
		return "", fmt.Errorf("Unknown state: %s", s)
	}
}

type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	StartAt   time.Time     `gorm:"not null;index" json:"start_at"`
	EndAt     time.Time     `gorm:"not null" json:"end_at"`
	ItemID    uint          `gorm:"not null;index" json:"item_id"`
	BookerID  uint          `gorm:"not null;index" json:"booker_id"`
	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'WAITING'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Item   *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:BookerID" json:"booker,omitempty"`
}
