package domain

import "time"

// Link represents a link block on a profile page
type Link struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64    `gorm:"index;not null" json:"profile_id"`
	Title     string    `gorm:"size:128;not null" json:"title"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	Position  int       `gorm:"default:0" json:"position"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Link) TableName() string {
	return "links"
}

// CreateLinkRequest is the payload for creating a link block
type CreateLinkRequest struct {
	Title    string `json:"title" binding:"required,max=128"`
	URL      string `json:"url" binding:"required,url,max=2048"`
	Position int    `json:"position" binding:"gte=0"`
}

// UpdateLinkRequest is the payload for updating a link block
type UpdateLinkRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=128"`
	URL      *string `json:"url" binding:"omitempty,url,max=2048"`
	Position *int    `json:"position" binding:"omitempty,gte=0"`
	Active   *bool   `json:"active"`
}
