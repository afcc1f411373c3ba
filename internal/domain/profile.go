package domain

import "time"

// Profile represents a public link-in-bio page
type Profile struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     string    `gorm:"size:64;index;not null" json:"owner_id"`
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	DisplayName string    `gorm:"size:128" json:"display_name"`
	Bio         string    `gorm:"size:500" json:"bio"`
	AvatarURL   string    `gorm:"size:512" json:"avatar_url"`
	Theme       string    `gorm:"size:32;default:default" json:"theme"`
	Published   bool      `gorm:"default:true" json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// CreateProfileRequest is the payload for creating a profile
type CreateProfileRequest struct {
	Slug        string `json:"slug" binding:"required,min=3,max=64,slug"`
	DisplayName string `json:"display_name" binding:"max=128"`
	Bio         string `json:"bio" binding:"max=500"`
	Theme       string `json:"theme" binding:"max=32"`
}

// UpdateProfileRequest is the payload for updating a profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=128"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,max=512"`
	Theme       *string `json:"theme" binding:"omitempty,max=32"`
	Published   *bool   `json:"published"`
}

// ProfilePage is the public read DTO: the profile with its visible blocks
type ProfilePage struct {
	Profile  Profile      `json:"profile"`
	Links    []Link       `json:"links"`
	Products []Product    `json:"products"`
	Socials  []SocialIcon `json:"socials"`
}
