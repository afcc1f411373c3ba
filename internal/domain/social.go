package domain

import "time"

// SocialIcon represents a social network icon row on a profile page
type SocialIcon struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64    `gorm:"index;not null" json:"profile_id"`
	Network   string    `gorm:"size:32;not null" json:"network"` // e.g. "instagram", "x", "youtube"
	URL       string    `gorm:"size:2048;not null" json:"url"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM
func (SocialIcon) TableName() string {
	return "social_icons"
}

// CreateSocialIconRequest is the payload for adding a social icon
type CreateSocialIconRequest struct {
	Network  string `json:"network" binding:"required,max=32"`
	URL      string `json:"url" binding:"required,url,max=2048"`
	Position int    `json:"position" binding:"gte=0"`
}
