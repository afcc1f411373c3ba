package repository

import (
	"context"
	"errors"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"gorm.io/gorm"
)

// LinkRepository handles link block persistence
type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetByID(ctx context.Context, id uint64) (*domain.Link, error)
	ListByProfile(ctx context.Context, profileID uint64, activeOnly bool) ([]domain.Link, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id uint64) error
	// ExistsForProfile reports whether the link belongs to the profile.
	// Used to attribute click events.
	ExistsForProfile(ctx context.Context, profileID, linkID uint64) (bool, error)
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new LinkRepository
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *domain.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) GetByID(ctx context.Context, id uint64) (*domain.Link, error) {
	var link domain.Link
	err := r.db.WithContext(ctx).First(&link, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) ListByProfile(ctx context.Context, profileID uint64, activeOnly bool) ([]domain.Link, error) {
	var links []domain.Link
	q := r.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("position ASC, id ASC").Find(&links).Error
	return links, err
}

func (r *linkRepository) Update(ctx context.Context, link *domain.Link) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *linkRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Link{}, id).Error
}

func (r *linkRepository) ExistsForProfile(ctx context.Context, profileID, linkID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Link{}).
		Where("id = ? AND profile_id = ?", linkID, profileID).
		Count(&count).Error
	return count > 0, err
}
