package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/repository"
	"github.com/ekoshkina/gearshare/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrItemUnavailable = errors.New("item is not available")
	// ErrOwnerBooking is reported as not-found, matching how the API hides
	// ownership details from the booker.
	ErrOwnerBooking = errors.New("owner cannot book own item")
	ErrStatusFinal  = errors.New("booking status is already set")
)

type BookingService interface {
	Create(ctx context.Context, booking *models.Booking, bookerID uint) (*models.Booking, error)
	SetApprove(ctx context.Context, id uint, approved bool, ownerID uint) (*models.Booking, error)
	GetByID(ctx context.Context, id, userID uint) (*models.Booking, error)
	GetAllForBooker(ctx context.Context, bookerID uint, state models.BookingState, from, size int) ([]models.Booking, error)
	GetAllForOwner(ctx context.Context, ownerID uint, state models.BookingState, from, size int) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, itemRepo repository.ItemRepository, userRepo repository.UserRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *models.Booking, bookerID uint) (*models.Booking, error) {
	item, err := s.itemRepo.FindByID(ctx, booking.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, ErrOwnerBooking
	}
	if item.Available == nil || !*item.Available {
		return nil, ErrItemUnavailable
	}

	booker, err := s.userRepo.FindByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	booking.BookerID = bookerID
	booking.Status = models.StatusWaiting

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.bookingRepo.Create(ctx, tx, booking)
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	booking.Item = item
	booking.Booker = booker
	log.Printf("booking %d created", booking.ID)

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.created", booking)
	}
	return booking, nil
}

func (s *bookingService) SetApprove(ctx context.Context, id uint, approved bool, ownerID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Item == nil || booking.Item.OwnerID != ownerID {
		return nil, ErrNoAccess
	}
	if booking.Status != models.StatusWaiting {
		return nil, ErrStatusFinal
	}

	status := models.StatusRejected
	routingKey := "booking.rejected"
	if approved {
		status = models.StatusApproved
		routingKey = "booking.approved"
	}

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, status)
	})
	if err != nil {
		return nil, fmt.Errorf("update booking %d status: %w", id, err)
	}

	booking.Status = status
	log.Printf("booking %d status changed to %s", booking.ID, status)

	if s.publisher != nil {
		_ = s.publisher.Publish(routingKey, booking)
	}
	return booking, nil
}

// GetByID returns the booking to its booker or to the item owner; anyone
// else gets a not-found answer.
func (s *bookingService) GetByID(ctx context.Context, id, userID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.BookerID != userID && (booking.Item == nil || booking.Item.OwnerID != userID) {
		return nil, ErrNoAccess
	}
	return booking, nil
}

func (s *bookingService) GetAllForBooker(ctx context.Context, bookerID uint, state models.BookingState, from, size int) ([]models.Booking, error) {
	if err := s.checkUserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	offset := pageOffset(from, size)
	now := time.Now()
	queries := map[models.BookingState]func() ([]models.Booking, error){
		models.StateAll: func() ([]models.Booking, error) {
			return s.bookingRepo.FindByBookerID(ctx, bookerID, offset, size)
		},
		models.StateCurrent: func() ([]models.Booking, error) {
			return s.bookingRepo.FindCurrentByBookerID(ctx, bookerID, now, offset, size)
		},
		models.StateFuture: func() ([]models.Booking, error) {
			return s.bookingRepo.FindFutureByBookerID(ctx, bookerID, now, offset, size)
		},
		models.StatePast: func() ([]models.Booking, error) {
			return s.bookingRepo.FindPastByBookerID(ctx, bookerID, now, offset, size)
		},
		models.StateWaiting: func() ([]models.Booking, error) {
			return s.bookingRepo.FindByBookerIDAndStatus(ctx, bookerID, models.StatusWaiting, offset, size)
		},
		models.StateRejected: func() ([]models.Booking, error) {
			return s.bookingRepo.FindByBookerIDAndStatus(ctx, bookerID, models.StatusRejected, offset, size)
		},
	}
	return queries[state]()
}

func (s *bookingService) GetAllForOwner(ctx context.Context, ownerID uint, state models.BookingState, from, size int) ([]models.Booking, error) {
	if err := s.checkUserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	offset := pageOffset(from, size)
	now := time.Now()
	queries := map[models.BookingState]func() ([]models.Booking, error){
		models.StateAll: func() ([]models.Booking, error) {
			return s.bookingRepo.FindByOwnerID(ctx, ownerID, offset, size)
		},
		models.StateCurrent: func() ([]models.Booking, error) {
			return s.bookingRepo.FindCurrentByOwnerID(ctx, ownerID, now, offset, size)
		},
		models.StateFuture: func() ([]models.Booking, error) {
			return s.bookingRepo.FindFutureByOwnerID(ctx, ownerID, now, offset, size)
		},
		models.StatePast: func() ([]models.Booking, error) {
			return s.bookingRepo.FindPastByOwnerID(ctx, ownerID, now, offset, size)
		},
		models.StateWaiting: func() ([]models.Booking, error) {
			return s.bookingRepo.FindByOwnerIDAndStatus(ctx, ownerID, models.StatusWaiting, offset, size)
		},
		models.StateRejected: func() ([]models.Booking, error) {
			return s.bookingRepo.FindByOwnerIDAndStatus(ctx, ownerID, models.StatusRejected, offset, size)
		},
	}
	return queries[state]()
}

func (s *bookingService) checkUserExists(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
