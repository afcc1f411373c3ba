package domain

import "time"

// Product represents a product block on a profile page
type Product struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfileID uint64    `gorm:"index;not null" json:"profile_id"`
	Title     string    `gorm:"size:128;not null" json:"title"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	Price     string    `gorm:"size:32" json:"price"` // display string, e.g. "$19.99"
	Position  int       `gorm:"default:0" json:"position"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// CreateProductRequest is the payload for creating a product block
type CreateProductRequest struct {
	Title    string `json:"title" binding:"required,max=128"`
	URL      string `json:"url" binding:"required,url,max=2048"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=512"`
	Price    string `json:"price" binding:"max=32"`
	Position int    `json:"position" binding:"gte=0"`
}

// UpdateProductRequest is the payload for updating a product block
type UpdateProductRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=128"`
	URL      *string `json:"url" binding:"omitempty,url,max=2048"`
	ImageURL *string `json:"image_url" binding:"omitempty,url,max=512"`
	Price    *string `json:"price" binding:"omitempty,max=32"`
	Position *int    `json:"position" binding:"omitempty,gte=0"`
	Active   *bool   `json:"active"`
}
