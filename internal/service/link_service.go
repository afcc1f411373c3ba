package service

import (
	"context"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/repository"
)

// LinkService defines link block business logic
type LinkService interface {
	Create(ctx context.Context, ownerID string, profileID uint64, req *domain.CreateLinkRequest) (*domain.Link, error)
	Update(ctx context.Context, ownerID string, linkID uint64, req *domain.UpdateLinkRequest) (*domain.Link, error)
	Delete(ctx context.Context, ownerID string, linkID uint64) error
	List(ctx context.Context, ownerID string, profileID uint64) ([]domain.Link, error)
}

type linkService struct {
	profiles ProfileService
	linkRepo repository.LinkRepository
}

// NewLinkService creates a new LinkService
func NewLinkService(profiles ProfileService, linkRepo repository.LinkRepository) LinkService {
	return &linkService{profiles: profiles, linkRepo: linkRepo}
}

func (s *linkService) Create(ctx context.Context, ownerID string, profileID uint64, req *domain.CreateLinkRequest) (*domain.Link, error) {
	profile, err := s.profiles.OwnedProfile(ctx, ownerID, profileID)
	if err != nil {
		return nil, err
	}

	link := &domain.Link{
		ProfileID: profileID,
		Title:     req.Title,
		URL:       req.URL,
		Position:  req.Position,
		Active:    true,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return link, nil
}

func (s *linkService) Update(ctx context.Context, ownerID string, linkID uint64, req *domain.UpdateLinkRequest) (*domain.Link, error) {
	link, profile, err := s.ownedLink(ctx, ownerID, linkID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Position != nil {
		link.Position = *req.Position
	}
	if req.Active != nil {
		link.Active = *req.Active
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return link, nil
}

func (s *linkService) Delete(ctx context.Context, ownerID string, linkID uint64) error {
	_, profile, err := s.ownedLink(ctx, ownerID, linkID)
	if err != nil {
		return err
	}
	if err := s.linkRepo.Delete(ctx, linkID); err != nil {
		return err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return nil
}

func (s *linkService) List(ctx context.Context, ownerID string, profileID uint64) ([]domain.Link, error) {
	if _, err := s.profiles.OwnedProfile(ctx, ownerID, profileID); err != nil {
		return nil, err
	}
	return s.linkRepo.ListByProfile(ctx, profileID, false)
}

func (s *linkService) ownedLink(ctx context.Context, ownerID string, linkID uint64) (*domain.Link, *domain.Profile, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.profiles.OwnedProfile(ctx, ownerID, link.ProfileID)
	if err != nil {
		return nil, nil, common.ErrForbidden
	}
	return link, profile, nil
}
