package service

import (
	"context"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/repository"
)

// ProductService defines product block business logic
type ProductService interface {
	Create(ctx context.Context, ownerID string, profileID uint64, req *domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, ownerID string, productID uint64, req *domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, ownerID string, productID uint64) error
	List(ctx context.Context, ownerID string, profileID uint64) ([]domain.Product, error)
}

type productService struct {
	profiles    ProfileService
	productRepo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(profiles ProfileService, productRepo repository.ProductRepository) ProductService {
	return &productService{profiles: profiles, productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, ownerID string, profileID uint64, req *domain.CreateProductRequest) (*domain.Product, error) {
	profile, err := s.profiles.OwnedProfile(ctx, ownerID, profileID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ProfileID: profileID,
		Title:     req.Title,
		URL:       req.URL,
		ImageURL:  req.ImageURL,
		Price:     req.Price,
		Position:  req.Position,
		Active:    true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return product, nil
}

func (s *productService) Update(ctx context.Context, ownerID string, productID uint64, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, profile, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.URL != nil {
		product.URL = *req.URL
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Position != nil {
		product.Position = *req.Position
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, ownerID string, productID uint64) error {
	_, profile, err := s.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return nil
}

func (s *productService) List(ctx context.Context, ownerID string, profileID uint64) ([]domain.Product, error) {
	if _, err := s.profiles.OwnedProfile(ctx, ownerID, profileID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByProfile(ctx, profileID, false)
}

func (s *productService) ownedProduct(ctx context.Context, ownerID string, productID uint64) (*domain.Product, *domain.Profile, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.OwnedProfile(ctx, ownerID, product.ProfileID)
	if err != nil {
		return nil, nil, common.ErrForbidden
	}
	return product, profile, nil
}
