package service

import (
	"context"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/repository"
)

// SocialService defines social icon business logic
type SocialService interface {
	Create(ctx context.Context, ownerID string, profileID uint64, req *domain.CreateSocialIconRequest) (*domain.SocialIcon, error)
	Delete(ctx context.Context, ownerID string, iconID uint64) error
	List(ctx context.Context, ownerID string, profileID uint64) ([]domain.SocialIcon, error)
}

type socialService struct {
	profiles   ProfileService
	socialRepo repository.SocialRepository
}

// NewSocialService creates a new SocialService
func NewSocialService(profiles ProfileService, socialRepo repository.SocialRepository) SocialService {
	return &socialService{profiles: profiles, socialRepo: socialRepo}
}

func (s *socialService) Create(ctx context.Context, ownerID string, profileID uint64, req *domain.CreateSocialIconRequest) (*domain.SocialIcon, error) {
	profile, err := s.profiles.OwnedProfile(ctx, ownerID, profileID)
	if err != nil {
		return nil, err
	}

	icon := &domain.SocialIcon{
		ProfileID: profileID,
		Network:   req.Network,
		URL:       req.URL,
		Position:  req.Position,
	}
	if err := s.socialRepo.Create(ctx, icon); err != nil {
		return nil, err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return icon, nil
}

func (s *socialService) Delete(ctx context.Context, ownerID string, iconID uint64) error {
	icon, err := s.socialRepo.GetByID(ctx, iconID)
	if err != nil {
		return err
	}
	profile, err := s.profiles.OwnedProfile(ctx, ownerID, icon.ProfileID)
	if err != nil {
		return common.ErrForbidden
	}
	if err := s.socialRepo.Delete(ctx, iconID); err != nil {
		return err
	}
	s.profiles.InvalidatePage(ctx, profile)
	return nil
}

func (s *socialService) List(ctx context.Context, ownerID string, profileID uint64) ([]domain.SocialIcon, error) {
	if _, err := s.profiles.OwnedProfile(ctx, ownerID, profileID); err != nil {
		return nil, err
	}
	return s.socialRepo.ListByProfile(ctx, profileID)
}
