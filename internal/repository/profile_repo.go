package repository

import (
	"context"
	"errors"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"gorm.io/gorm"
)

// ProfileRepository handles profile persistence
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uint64) (*domain.Profile, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Profile, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Exists(ctx context.Context, id uint64) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return common.ErrSlugTaken
	}
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id uint64) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
