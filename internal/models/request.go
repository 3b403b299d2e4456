package models

import "time"

type ItemRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	RequesterID uint      `gorm:"not null;index" json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`

	Requester *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Items     []Item `gorm:"foreignKey:RequestID" json:"items,omitempty"`
}
