package dto

import (
	"time"

	"github.com/ekoshkina/gearshare/internal/models"
)

type CreateItemRequestRequest struct {
	Description string `json:"description"`
}

type ItemRequestResponse struct {
	ID          uint           `json:"id"`
	Description string         `json:"description"`
	RequesterID uint           `json:"requester_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Items       []ItemResponse `json:"items"`
}

func ToItemRequestResponse(r *models.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
		Items:       ToItemResponseList(r.Items),
	}
}

func ToItemRequestResponseList(requests []models.ItemRequest) []ItemRequestResponse {
	resp := make([]ItemRequestResponse, len(requests))
	for i := range requests {
		resp[i] = ToItemRequestResponse(&requests[i])
	}
	return resp
}
