package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAnalyticsDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.Profile{},
		&domain.Link{},
		&domain.Product{},
		&domain.SocialIcon{},
		&domain.DailyProfileStat{},
		&domain.DailyProfileSession{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type analyticsFixture struct {
	svc       AnalyticsService
	statsRepo repository.StatsRepository
	profile   *domain.Profile
	link      *domain.Link
	product   *domain.Product
}

func setupAnalytics(t *testing.T, countUntargeted bool) *analyticsFixture {
	t.Helper()
	db := setupAnalyticsDB(t)
	ctx := context.Background()

	profileRepo := repository.NewProfileRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	productRepo := repository.NewProductRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	profile := &domain.Profile{OwnerID: "owner-1", Slug: "acme", Published: true}
	if err := profileRepo.Create(ctx, profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	link := &domain.Link{ProfileID: profile.ID, Title: "Blog", URL: "https://example.com", Active: true}
	if err := linkRepo.Create(ctx, link); err != nil {
		t.Fatalf("create link: %v", err)
	}
	product := &domain.Product{ProfileID: profile.ID, Title: "Shirt", URL: "https://shop.example.com", Active: true}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	svc := NewAnalyticsService(profileRepo, linkRepo, productRepo, statsRepo, nil, countUntargeted)
	return &analyticsFixture{
		svc:       svc,
		statsRepo: statsRepo,
		profile:   profile,
		link:      link,
		product:   product,
	}
}

func TestTrack_Pageview(t *testing.T) {
	f := setupAnalytics(t, true)
	ctx := context.Background()

	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "pageview",
	}, "")
	assert.NoError(t, err)

	stat, err := f.statsRepo.GetDay(ctx, f.profile.ID, time.Now())
	assert.NoError(t, err)
	if assert.NotNil(t, stat) {
		assert.Equal(t, int64(1), stat.ProfileViews)
		assert.Equal(t, int64(1), stat.TotalInteractions)
	}
}

func TestTrack_LinkClickAttribution(t *testing.T) {
	f := setupAnalytics(t, true)
	ctx := context.Background()

	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "click",
		LinkID:    &f.link.ID,
	}, "")
	assert.NoError(t, err)

	stat, _ := f.statsRepo.GetDay(ctx, f.profile.ID, time.Now())
	if assert.NotNil(t, stat) {
		assert.Equal(t, int64(1), stat.LinkClicks)
		assert.Equal(t, int64(0), stat.ProductClicks)
		assert.Equal(t, int64(1), stat.TotalInteractions)
	}
}

func TestTrack_ProductClickAttribution(t *testing.T) {
	f := setupAnalytics(t, true)
	ctx := context.Background()

	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "click",
		ProductID: &f.product.ID,
	}, "")
	assert.NoError(t, err)

	stat, _ := f.statsRepo.GetDay(ctx, f.profile.ID, time.Now())
	if assert.NotNil(t, stat) {
		assert.Equal(t, int64(1), stat.ProductClicks)
		assert.Equal(t, int64(0), stat.LinkClicks)
	}
}

func TestTrack_ClickForForeignLinkIsUntargeted(t *testing.T) {
	f := setupAnalytics(t, true)
	ctx := context.Background()

	foreign := uint64(99999)
	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "click",
		LinkID:    &foreign,
	}, "")
	assert.NoError(t, err)

	stat, _ := f.statsRepo.GetDay(ctx, f.profile.ID, time.Now())
	if assert.NotNil(t, stat) {
		assert.Equal(t, int64(0), stat.LinkClicks)
		assert.Equal(t, int64(1), stat.TotalInteractions)
	}
}

func TestTrack_UntargetedClickRejectedByPolicy(t *testing.T) {
	f := setupAnalytics(t, false)
	ctx := context.Background()

	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "click",
	}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	// rejected events leave no trace
	stat, gerr := f.statsRepo.GetDay(ctx, f.profile.ID, time.Now())
	assert.NoError(t, gerr)
	assert.Nil(t, stat)
}

func TestTrack_UnknownEventType(t *testing.T) {
	f := setupAnalytics(t, true)
	ctx := context.Background()

	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "scroll",
	}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	stat, _ := f.statsRepo.GetDay(ctx, f.profile.ID, time.Now())
	assert.Nil(t, stat)
}

func TestTrack_MissingSession(t *testing.T) {
	f := setupAnalytics(t, true)

	err := f.svc.Track(context.Background(), &domain.TrackRequest{
		ProfileID: f.profile.ID,
		EventType: "pageview",
	}, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestTrack_UnknownProfile(t *testing.T) {
	f := setupAnalytics(t, true)

	err := f.svc.Track(context.Background(), &domain.TrackRequest{
		ProfileID: 424242,
		SessionID: "s1",
		EventType: "pageview",
	}, "")
	assert.ErrorIs(t, err, common.ErrProfileNotFound)
}

func TestTrack_FillsBrowserAndDeviceFromUserAgent(t *testing.T) {
	f := setupAnalytics(t, true)

	const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	err := f.svc.Track(context.Background(), &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "pageview",
	}, chromeUA)
	assert.NoError(t, err)
}

func TestGetStats_OwnerOnly(t *testing.T) {
	f := setupAnalytics(t, true)
	ctx := context.Background()

	err := f.svc.Track(ctx, &domain.TrackRequest{
		ProfileID: f.profile.ID,
		SessionID: "s1",
		EventType: "pageview",
	}, "")
	assert.NoError(t, err)

	rows, err := f.svc.GetStats(ctx, "owner-1", f.profile.ID, time.Time{}, time.Time{}, 0)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, int64(1), rows[0].ProfileViews)
		assert.Equal(t, int64(1), rows[0].UniqueVisitors)
	}

	_, err = f.svc.GetStats(ctx, "someone-else", f.profile.ID, time.Time{}, time.Time{}, 0)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestGetStats_InvalidRange(t *testing.T) {
	f := setupAnalytics(t, true)

	from := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.GetStats(context.Background(), "owner-1", f.profile.ID, from, to, 0)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

// mockStatsRepo lets tests fail the aggregate write path
type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) RecordEvent(ctx context.Context, ev *domain.AnalyticsEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *mockStatsRepo) RangeByProfile(ctx context.Context, profileID uint64, from, to time.Time, limit int) ([]domain.DailyStatRow, error) {
	args := m.Called(ctx, profileID, from, to, limit)
	if rows, ok := args.Get(0).([]domain.DailyStatRow); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) GetDay(ctx context.Context, profileID uint64, day time.Time) (*domain.DailyProfileStat, error) {
	args := m.Called(ctx, profileID, day)
	if stat, ok := args.Get(0).(*domain.DailyProfileStat); ok {
		return stat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsRepo) SessionsForDay(ctx context.Context, profileID uint64, day time.Time) ([]string, error) {
	args := m.Called(ctx, profileID, day)
	if sessions, ok := args.Get(0).([]string); ok {
		return sessions, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestTrack_StorageFailureSurfaces(t *testing.T) {
	db := setupAnalyticsDB(t)
	ctx := context.Background()

	profileRepo := repository.NewProfileRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	productRepo := repository.NewProductRepository(db)

	profile := &domain.Profile{OwnerID: "owner-1", Slug: "acme"}
	if err := profileRepo.Create(ctx, profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	statsRepo := &mockStatsRepo{}
	statsRepo.On("RecordEvent", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	svc := NewAnalyticsService(profileRepo, linkRepo, productRepo, statsRepo, nil, true)
	err := svc.Track(ctx, &domain.TrackRequest{
		ProfileID: profile.ID,
		SessionID: "s1",
		EventType: "pageview",
	}, "")

	// never swallowed: the caller sees a storage failure it may retry
	assert.ErrorIs(t, err, common.ErrStorage)
	statsRepo.AssertExpectations(t)
}
