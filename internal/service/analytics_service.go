package service

import (
	"context"
	"fmt"
	"time"

	"github.com/linkpage/linkpage-backend/internal/audit"
	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/repository"
	pkglogger "github.com/linkpage/linkpage-backend/pkg/logger"
	"github.com/mssola/useragent"
)

// AnalyticsService ingests visitor events and serves the pre-aggregated
// daily rows. The aggregate is the source of truth: raw events are only
// retained by the optional audit sink.
type AnalyticsService interface {
	// Track validates, normalizes and folds one event. Validation failures
	// leave the aggregate untouched; storage failures surface to the caller
	// with no partial mutation visible.
	Track(ctx context.Context, req *domain.TrackRequest, userAgent string) error
	// GetStats returns daily rows for the owner's profile, newest first
	GetStats(ctx context.Context, ownerID string, profileID uint64, from, to time.Time, limit int) ([]domain.DailyStatRow, error)
}

type analyticsService struct {
	profileRepo repository.ProfileRepository
	linkRepo    repository.LinkRepository
	productRepo repository.ProductRepository
	statsRepo   repository.StatsRepository
	sink        audit.Sink // nil when audit logging is disabled

	// countUntargetedClicks accepts clicks that resolve to neither a link
	// nor a product, folding them into total_interactions only
	countUntargetedClicks bool

	now func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	profileRepo repository.ProfileRepository,
	linkRepo repository.LinkRepository,
	productRepo repository.ProductRepository,
	statsRepo repository.StatsRepository,
	sink audit.Sink,
	countUntargetedClicks bool,
) AnalyticsService {
	return &analyticsService{
		profileRepo:           profileRepo,
		linkRepo:              linkRepo,
		productRepo:           productRepo,
		statsRepo:             statsRepo,
		sink:                  sink,
		countUntargetedClicks: countUntargetedClicks,
		now:                   time.Now,
	}
}

func (s *analyticsService) Track(ctx context.Context, req *domain.TrackRequest, userAgent string) error {
	eventType := domain.EventType(req.EventType)
	if !eventType.Valid() {
		return fmt.Errorf("%w: unknown event_type %q", common.ErrInvalidInput, req.EventType)
	}
	if req.SessionID == "" {
		return fmt.Errorf("%w: session_id is required", common.ErrInvalidInput)
	}

	exists, err := s.profileRepo.Exists(ctx, req.ProfileID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if !exists {
		return common.ErrProfileNotFound
	}

	ev := &domain.AnalyticsEvent{
		ProfileID:  req.ProfileID,
		SessionID:  req.SessionID,
		EventType:  eventType,
		LinkURL:    req.LinkURL,
		Path:       req.Path,
		Referrer:   req.Referrer,
		Browser:    req.Browser,
		Device:     req.Device,
		OccurredAt: s.now(),
	}
	if req.LinkID != nil {
		ev.LinkID = *req.LinkID
	}
	if req.ProductID != nil {
		ev.ProductID = *req.ProductID
	}

	if ev.Browser == "" || ev.Device == "" {
		fillFromUserAgent(ev, userAgent)
	}

	if eventType == domain.EventClick {
		target, err := s.resolveClickTarget(ctx, ev)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrStorage, err)
		}
		ev.Target = target
		if target == domain.TargetNone && !s.countUntargetedClicks {
			return fmt.Errorf("%w: click has no resolvable target", common.ErrInvalidInput)
		}
	}

	if err := s.statsRepo.RecordEvent(ctx, ev); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	// Fire-and-forget audit trail; never affects the caller's result
	if s.sink != nil {
		s.sink.Record(ev)
	}

	return nil
}

// resolveClickTarget attributes a click to a link or product block. An id
// that does not belong to the profile resolves to no target rather than an
// error: stale pages keep sending clicks for deleted blocks.
func (s *analyticsService) resolveClickTarget(ctx context.Context, ev *domain.AnalyticsEvent) (domain.ClickTarget, error) {
	if ev.ProductID != 0 {
		ok, err := s.productRepo.ExistsForProfile(ctx, ev.ProfileID, ev.ProductID)
		if err != nil {
			return domain.TargetNone, err
		}
		if ok {
			return domain.TargetProduct, nil
		}
	}
	if ev.LinkID != 0 {
		ok, err := s.linkRepo.ExistsForProfile(ctx, ev.ProfileID, ev.LinkID)
		if err != nil {
			return domain.TargetNone, err
		}
		if ok {
			return domain.TargetLink, nil
		}
	}
	return domain.TargetNone, nil
}

func (s *analyticsService) GetStats(ctx context.Context, ownerID string, profileID uint64, from, to time.Time, limit int) ([]domain.DailyStatRow, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.OwnerID != ownerID {
		return nil, common.ErrForbidden
	}

	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from is after to", common.ErrInvalidInput)
	}

	rows, err := s.statsRepo.RangeByProfile(ctx, profileID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return rows, nil
}

func fillFromUserAgent(ev *domain.AnalyticsEvent, rawUA string) {
	if rawUA == "" {
		return
	}
	ua := useragent.New(rawUA)
	if ev.Browser == "" {
		name, _ := ua.Browser()
		ev.Browser = name
	}
	if ev.Device == "" {
		switch {
		case ua.Bot():
			ev.Device = "bot"
		case ua.Mobile():
			ev.Device = "mobile"
		default:
			ev.Device = "desktop"
		}
	}
	if ev.Device == "bot" {
		pkglogger.GetLogger().Debug().
			Uint64("profile_id", ev.ProfileID).
			Str("ua", rawUA).
			Msg("bot user agent passed the blocklist")
	}
}
