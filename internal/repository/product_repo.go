package repository

import (
	"context"
	"errors"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository handles product block persistence
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uint64) (*domain.Product, error)
	ListByProfile(ctx context.Context, profileID uint64, activeOnly bool) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
	// ExistsForProfile reports whether the product belongs to the profile.
	// Used to attribute click events.
	ExistsForProfile(ctx context.Context, profileID, productID uint64) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByProfile(ctx context.Context, profileID uint64, activeOnly bool) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).Where("profile_id = ?", profileID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("position ASC, id ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

func (r *productRepository) ExistsForProfile(ctx context.Context, profileID, productID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND profile_id = ?", productID, profileID).
		Count(&count).Error
	return count > 0, err
}
