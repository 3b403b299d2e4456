package dto

import "github.com/ekoshkina/gearshare/internal/models"

type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *uint  `json:"request_id"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type ItemResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     uint   `json:"owner_id"`
	RequestID   *uint  `json:"request_id,omitempty"`
}

func ToItemResponse(i *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
	}
	if i.Available != nil {
		resp.Available = *i.Available
	}
	return resp
}

func ToItemResponseList(items []models.Item) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = ToItemResponse(&items[i])
	}
	return resp
}
