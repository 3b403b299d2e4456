package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ekoshkina/gearshare/internal/dto"
	"github.com/ekoshkina/gearshare/internal/models"
	"github.com/ekoshkina/gearshare/internal/repository"
	"github.com/ekoshkina/gearshare/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrRequestNotFound = errors.New("item request not found")
	// ErrNoAccess covers ownership violations. The API reports them as
	// not-found so the existence of foreign resources is not leaked.
	ErrNoAccess = errors.New("no access to this resource")
)

type ItemService interface {
	Create(ctx context.Context, item *models.Item, ownerID uint) error
	Patch(ctx context.Context, id, ownerID uint, patch dto.UpdateItemRequest) (*models.Item, error)
	GetByID(ctx context.Context, id, userID uint) (*models.Item, error)
	GetAllForOwner(ctx context.Context, ownerID uint, from, size int) ([]models.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]models.Item, error)
}

type itemService struct {
	repo        repository.ItemRepository
	requestRepo repository.RequestRepository
	userSvc     UserService
	publisher   *rabbitmq.Publisher
}

func NewItemService(repo repository.ItemRepository, requestRepo repository.RequestRepository, userSvc UserService, publisher *rabbitmq.Publisher) ItemService {
	return &itemService{repo: repo, requestRepo: requestRepo, userSvc: userSvc, publisher: publisher}
}

func (s *itemService) Create(ctx context.Context, item *models.Item, ownerID uint) error {
	if err := s.userSvc.CheckExists(ctx, ownerID); err != nil {
		return err
	}
	if item.RequestID != nil {
		if _, err := s.requestRepo.FindByID(ctx, *item.RequestID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	log.Printf("item %d created by user %d", item.ID, ownerID)

	if s.publisher != nil {
		_ = s.publisher.Publish("item.created", item)
	}
	return nil
}

func (s *itemService) Patch(ctx context.Context, id, ownerID uint, patch dto.UpdateItemRequest) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, ErrNoAccess
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = patch.Available
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	log.Printf("item %d updated", item.ID)
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id, userID uint) (*models.Item, error) {
	if err := s.userSvc.CheckExists(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetAllForOwner(ctx context.Context, ownerID uint, from, size int) ([]models.Item, error) {
	if err := s.userSvc.CheckExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.FindByOwnerID(ctx, ownerID, pageOffset(from, size), size)
}

func (s *itemService) Search(ctx context.Context, text string, from, size int) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.repo.Search(ctx, text, pageOffset(from, size), size)
}
