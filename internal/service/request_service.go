package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/repository"
	"gorm.io/gorm"
)

type RequestService interface {
	Create(ctx context.Context, request *models.ItemRequest, requesterID uint) error
	GetByID(ctx context.Context, id, userID uint) (*models.ItemRequest, error)
	GetOwn(ctx context.Context, requesterID uint) ([]models.ItemRequest, error)
	GetAll(ctx context.Context, userID uint, from, size int) ([]models.ItemRequest, error)
}

type requestService struct {
	repo    repository.RequestRepository
	userSvc UserService
}

func NewRequestService(repo repository.RequestRepository, userSvc UserService) RequestService {
	return &requestService{repo: repo, userSvc: userSvc}
}

func (s *requestService) Create(ctx context.Context, request *models.ItemRequest, requesterID uint) error {
	if err := s.userSvc.CheckExists(ctx, requesterID); err != nil {
		return err
	}

	request.RequesterID = requesterID
	if err := s.repo.Create(ctx, request); err != nil {
		return fmt.Errorf("create item request: %w", err)
	}
	log.Printf("item request %d created by user %d", request.ID, requesterID)
	return nil
}

func (s *requestService) GetByID(ctx context.Context, id, userID uint) (*models.ItemRequest, error) {
	if err := s.userSvc.CheckExists(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (s *requestService) GetOwn(ctx context.Context, requesterID uint) ([]models.ItemRequest, error) {
	if err := s.userSvc.CheckExists(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.FindByRequesterID(ctx, requesterID)
}

// GetAll lists requests created by other users, newest first.
func (s *requestService) GetAll(ctx context.Context, userID uint, from, size int) ([]models.ItemRequest, error) {
	if err := s.userSvc.CheckExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.FindAllExceptRequester(ctx, userID, pageOffset(from, size), size)
}
