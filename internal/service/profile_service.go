package service

import (
	"context"
	"errors"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/repository"
	pkgcache "github.com/linkpage/linkpage-backend/pkg/cache"
	pkglogger "github.com/linkpage/linkpage-backend/pkg/logger"
)

// ProfileService defines profile page business logic
type ProfileService interface {
	Create(ctx context.Context, ownerID string, req *domain.CreateProfileRequest) (*domain.Profile, error)
	Update(ctx context.Context, ownerID string, profileID uint64, req *domain.UpdateProfileRequest) (*domain.Profile, error)
	ListMine(ctx context.Context, ownerID string) ([]domain.Profile, error)
	// GetPage returns the public profile page (profile + visible blocks)
	GetPage(ctx context.Context, slug string) (*domain.ProfilePage, error)
	// OwnedProfile loads a profile and verifies ownership
	OwnedProfile(ctx context.Context, ownerID string, profileID uint64) (*domain.Profile, error)
	// InvalidatePage drops the cached public page. Block services call it
	// after every write so owners never serve a stale page for the TTL.
	InvalidatePage(ctx context.Context, profile *domain.Profile)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	linkRepo    repository.LinkRepository
	productRepo repository.ProductRepository
	socialRepo  repository.SocialRepository
	cache       pkgcache.Service // nil when Redis is unavailable
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo repository.ProfileRepository,
	linkRepo repository.LinkRepository,
	productRepo repository.ProductRepository,
	socialRepo repository.SocialRepository,
	cache pkgcache.Service,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		linkRepo:    linkRepo,
		productRepo: productRepo,
		socialRepo:  socialRepo,
		cache:       cache,
	}
}

func (s *profileService) Create(ctx context.Context, ownerID string, req *domain.CreateProfileRequest) (*domain.Profile, error) {
	if _, err := s.profileRepo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, common.ErrSlugTaken
	} else if !errors.Is(err, common.ErrProfileNotFound) {
		return nil, err
	}

	theme := req.Theme
	if theme == "" {
		theme = "default"
	}
	profile := &domain.Profile{
		OwnerID:     ownerID,
		Slug:        req.Slug,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Theme:       theme,
		Published:   true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, ownerID string, profileID uint64, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	profile, err := s.OwnedProfile(ctx, ownerID, profileID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Theme != nil {
		profile.Theme = *req.Theme
	}
	if req.Published != nil {
		profile.Published = *req.Published
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.InvalidatePage(ctx, profile)
	return profile, nil
}

func (s *profileService) ListMine(ctx context.Context, ownerID string) ([]domain.Profile, error) {
	return s.profileRepo.ListByOwner(ctx, ownerID)
}

func (s *profileService) GetPage(ctx context.Context, slug string) (*domain.ProfilePage, error) {
	if s.cache != nil {
		var cached domain.ProfilePage
		if err := s.cache.GetProfileBySlug(ctx, slug, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.profileRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !profile.Published {
		return nil, common.ErrProfileNotFound
	}

	links, err := s.linkRepo.ListByProfile(ctx, profile.ID, true)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListByProfile(ctx, profile.ID, true)
	if err != nil {
		return nil, err
	}
	socials, err := s.socialRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	page := &domain.ProfilePage{
		Profile:  *profile,
		Links:    links,
		Products: products,
		Socials:  socials,
	}

	if s.cache != nil {
		if err := s.cache.SetProfileBySlug(ctx, slug, page); err != nil {
			pkglogger.Warn("profile cache set failed: %v", err)
		}
	}
	return page, nil
}

func (s *profileService) OwnedProfile(ctx context.Context, ownerID string, profileID uint64) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.OwnerID != ownerID {
		return nil, common.ErrForbidden
	}
	return profile, nil
}

func (s *profileService) InvalidatePage(ctx context.Context, profile *domain.Profile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProfile(ctx, profile.Slug); err != nil {
		pkglogger.Warn("profile cache invalidation failed: %v", err)
	}
}
