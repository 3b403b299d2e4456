package repository

import (
	"context"
	"time"

	"github.com/ekoshkina/gearshare/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error

	FindByBookerID(ctx context.Context, bookerID uint, offset, limit int) ([]models.Booking, error)
	FindCurrentByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error)
	FindFutureByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error)
	FindPastByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error)
	FindByBookerIDAndStatus(ctx context.Context, bookerID uint, status models.BookingStatus, offset, limit int) ([]models.Booking, error)

	FindByOwnerID(ctx context.Context, ownerID uint, offset, limit int) ([]models.Booking, error)
	FindCurrentByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error)
	FindFutureByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error)
	FindPastByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error)
	FindByOwnerIDAndStatus(ctx context.Context, ownerID uint, status models.BookingStatus, offset, limit int) ([]models.Booking, error)

	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

// forBooker builds the common listing query for a booker: embedded item and
// booker preloaded, newest start first, paginated.
func (r *bookingRepository) forBooker(ctx context.Context, bookerID uint, offset, limit int) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("booker_id = ?", bookerID).
		Order("start_at DESC").
		Offset(offset).Limit(limit)
}

// forOwner is the owner-side counterpart, joining items to filter on the
// item owner rather than the booker.
func (r *bookingRepository) forOwner(ctx context.Context, ownerID uint, offset, limit int) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Order("bookings.start_at DESC").
		Offset(offset).Limit(limit)
}

func (r *bookingRepository) FindByBookerID(ctx context.Context, bookerID uint, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forBooker(ctx, bookerID, offset, limit).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindCurrentByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forBooker(ctx, bookerID, offset, limit).
		Where("start_at < ? AND end_at > ?", at, at).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindFutureByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forBooker(ctx, bookerID, offset, limit).
		Where("start_at > ?", at).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindPastByBookerID(ctx context.Context, bookerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forBooker(ctx, bookerID, offset, limit).
		Where("end_at < ?", at).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByBookerIDAndStatus(ctx context.Context, bookerID uint, status models.BookingStatus, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forBooker(ctx, bookerID, offset, limit).
		Where("status = ?", status).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByOwnerID(ctx context.Context, ownerID uint, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forOwner(ctx, ownerID, offset, limit).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindCurrentByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forOwner(ctx, ownerID, offset, limit).
		Where("bookings.start_at < ? AND bookings.end_at > ?", at, at).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindFutureByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forOwner(ctx, ownerID, offset, limit).
		Where("bookings.start_at > ?", at).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindPastByOwnerID(ctx context.Context, ownerID uint, at time.Time, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forOwner(ctx, ownerID, offset, limit).
		Where("bookings.end_at < ?", at).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) FindByOwnerIDAndStatus(ctx context.Context, ownerID uint, status models.BookingStatus, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.forOwner(ctx, ownerID, offset, limit).
		Where("bookings.status = ?", status).
		Find(&bookings).Error
	return bookings, err
}
