package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ekoshkina/gearshare/internal/dto"
	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/repository"
	"github.com/ekoshkina/gearshare/pkg/rabbitmq"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	Create(ctx context.Context, user *models.User) error
	Patch(ctx context.Context, id uint, patch dto.UpdateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	DeleteByID(ctx context.Context, id uint) error
	CheckExists(ctx context.Context, id uint) error
}

type userService struct {
	repo      repository.UserRepository
	publisher *rabbitmq.Publisher
}

func NewUserService(repo repository.UserRepository, publisher *rabbitmq.Publisher) UserService {
	return &userService{repo: repo, publisher: publisher}
}

func (s *userService) Create(ctx context.Context, user *models.User) error {
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	log.Printf("user %d created", user.ID)

	if s.publisher != nil {
		_ = s.publisher.Publish("user.created", user)
	}
	return nil
}

func (s *userService) Patch(ctx context.Context, id uint, patch dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	log.Printf("user %d updated", user.ID)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) DeleteByID(ctx context.Context, id uint) error {
	if err := s.CheckExists(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	log.Printf("user %d removed", id)
	return nil
}

// CheckExists is shared by the other services that validate the identity
// header against a persisted user.
func (s *userService) CheckExists(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
