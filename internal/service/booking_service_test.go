package service

import (
	"context"
	"testing"
	"time"

	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock repositories ---

type mockItemRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Item, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item *models.Item) error { return nil }

func (m *mockItemRepo) Save(ctx context.Context, item *models.Item) error { return nil }
func (m *mockItemRepo) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockItemRepo) FindByOwnerID(ctx context.Context, ownerID uint, offset, limit int) ([]models.Item, error) {
	return nil, nil
}
func (m *mockItemRepo) Search(ctx context.Context, text string, offset, limit int) ([]models.Item, error) {
	return nil, nil
}

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepo) Save(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &models.User{ID: id}, nil
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) { return nil, nil }

func (m *mockUserRepo) DeleteByID(ctx context.Context, id uint) error { return nil }

// mockBookingRepo records which canned listing query was dispatched.
type mockBookingRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Booking, error)
	lastQuery  string
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return nil
}
func (m *mockBookingRepo) FindByBookerID(ctx context.Context, bookerID uint, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "booker/all"
	return nil, nil
}
func (m *mockBookingRepo) FindCurrentByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "booker/current"
	return nil, nil
}
func (m *mockBookingRepo) FindFutureByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "booker/future"
	return nil, nil
}
func (m *mockBookingRepo) FindPastByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "booker/past"
	return nil, nil
}
func (m *mockBookingRepo) FindByBookerIDAndStatus(ctx context.Context, bookerID uint, status models.BookingStatus, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "booker/status/" + string(status)
	return nil, nil
}
func (m *mockBookingRepo) FindByOwnerID(ctx context.Context, ownerID uint, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "owner/all"
	return nil, nil
}
func (m *mockBookingRepo) FindCurrentByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "owner/current"
	return nil, nil
}
func (m *mockBookingRepo) FindFutureByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "owner/future"
	return nil, nil
}
func (m *mockBookingRepo) FindPastByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "owner/past"
	return nil, nil
}
func (m *mockBookingRepo) FindByOwnerIDAndStatus(ctx context.Context, ownerID uint, status models.BookingStatus, offset, limit int) ([]models.Booking, error) {
	m.lastQuery = "owner/status/" + string(status)
	return nil, nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Tests ---

func availableItem(ownerID uint) *models.Item {
	available := true
	return &models.Item{ID: 3, Name: "Cordless drill", Available: &available, OwnerID: ownerID}
}

func TestCreateBooking_ItemNotFound(t *testing.T) {
	itemRepo := &mockItemRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, itemRepo, &mockUserRepo{}, nil)
	_, err := svc.Create(context.Background(), &models.Booking{ItemID: 3}, 2)

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateBooking_OwnerCannotBook(t *testing.T) {
	itemRepo := &mockItemRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return availableItem(2), nil
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, itemRepo, &mockUserRepo{}, nil)
	_, err := svc.Create(context.Background(), &models.Booking{ItemID: 3}, 2)

	assert.ErrorIs(t, err, ErrOwnerBooking)
}

func TestCreateBooking_ItemUnavailable(t *testing.T) {
	itemRepo := &mockItemRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Item, error) {
			item := availableItem(1)
			unavailable := false
			item.Available = &unavailable
			return item, nil
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, itemRepo, &mockUserRepo{}, nil)
	_, err := svc.Create(context.Background(), &models.Booking{ItemID: 3}, 2)

	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCreateBooking_BookerNotFound(t *testing.T) {
	itemRepo := &mockItemRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Item, error) {
			return availableItem(1), nil
		},
	}
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, itemRepo, userRepo, nil)
	_, err := svc.Create(context.Background(), &models.Booking{ItemID: 3}, 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetApprove_NotOwner(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{
				ID:     id,
				Status: models.StatusWaiting,
				Item:   availableItem(1),
			}, nil
		},
	}

	svc := NewBookingService(bookingRepo, &mockItemRepo{}, &mockUserRepo{}, nil)
	_, err := svc.SetApprove(context.Background(), 5, true, 9)

	assert.ErrorIs(t, err, ErrNoAccess)
}

func TestSetApprove_AlreadyDecided(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{
				ID:     id,
				Status: models.StatusApproved,
				Item:   availableItem(1),
			}, nil
		},
	}

	svc := NewBookingService(bookingRepo, &mockItemRepo{}, &mockUserRepo{}, nil)
	_, err := svc.SetApprove(context.Background(), 5, false, 1)

	assert.ErrorIs(t, err, ErrStatusFinal)
}

func TestGetBooking_VisibleToBookerAndOwner(t *testing.T) {
	bookingRepo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return &models.Booking{
				ID:       id,
				BookerID: 2,
				Status:   models.StatusWaiting,
				Item:     availableItem(1),
			}, nil
		},
	}

	svc := NewBookingService(bookingRepo, &mockItemRepo{}, &mockUserRepo{}, nil)

	booking, err := svc.GetByID(context.Background(), 5, 2) // booker
	assert.NoError(t, err)
	assert.Equal(t, uint(5), booking.ID)

	_, err = svc.GetByID(context.Background(), 5, 1) // item owner
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 5, 7) // stranger
	assert.ErrorIs(t, err, ErrNoAccess)
}

func TestGetAllForBooker_DispatchesByState(t *testing.T) {
	cases := []struct {
		state models.BookingState
		query string
	}{
		{models.StateAll, "booker/all"},
		{models.StateCurrent, "booker/current"},
		{models.StateFuture, "booker/future"},
		{models.StatePast, "booker/past"},
		{models.StateWaiting, "booker/status/WAITING"},
		{models.StateRejected, "booker/status/REJECTED"},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			bookingRepo := &mockBookingRepo{}
			svc := NewBookingService(bookingRepo, &mockItemRepo{}, &mockUserRepo{}, nil)

			_, err := svc.GetAllForBooker(context.Background(), 2, tc.state, 0, 10)

			assert.NoError(t, err)
			assert.Equal(t, tc.query, bookingRepo.lastQuery)
		})
	}
}

func TestGetAllForOwner_DispatchesByState(t *testing.T) {
	cases := []struct {
		state models.BookingState
		query string
	}{
		{models.StateAll, "owner/all"},
		{models.StateCurrent, "owner/current"},
		{models.StateFuture, "owner/future"},
		{models.StatePast, "owner/past"},
		{models.StateWaiting, "owner/status/WAITING"},
		{models.StateRejected, "owner/status/REJECTED"},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			bookingRepo := &mockBookingRepo{}
			svc := NewBookingService(bookingRepo, &mockItemRepo{}, &mockUserRepo{}, nil)

			_, err := svc.GetAllForOwner(context.Background(), 1, tc.state, 0, 10)

			assert.NoError(t, err)
			assert.Equal(t, tc.query, bookingRepo.lastQuery)
		})
	}
}

func TestGetAllForBooker_UnknownUser(t *testing.T) {
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewBookingService(&mockBookingRepo{}, &mockItemRepo{}, userRepo, nil)
	_, err := svc.GetAllForBooker(context.Background(), 99, models.StateAll, 0, 10)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
