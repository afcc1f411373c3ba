package repository

import (
	"context"
	"errors"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"gorm.io/gorm"
)

// SocialRepository handles social icon persistence
type SocialRepository interface {
	Create(ctx context.Context, icon *domain.SocialIcon) error
	GetByID(ctx context.Context, id uint64) (*domain.SocialIcon, error)
	ListByProfile(ctx context.Context, profileID uint64) ([]domain.SocialIcon, error)
	Delete(ctx context.Context, id uint64) error
}

type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new SocialRepository
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) Create(ctx context.Context, icon *domain.SocialIcon) error {
	return r.db.WithContext(ctx).Create(icon).Error
}

func (r *socialRepository) GetByID(ctx context.Context, id uint64) (*domain.SocialIcon, error) {
	var icon domain.SocialIcon
	err := r.db.WithContext(ctx).First(&icon, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &icon, nil
}

func (r *socialRepository) ListByProfile(ctx context.Context, profileID uint64) ([]domain.SocialIcon, error) {
	var icons []domain.SocialIcon
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("position ASC, id ASC").
		Find(&icons).Error
	return icons, err
}

func (r *socialRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.SocialIcon{}, id).Error
}
