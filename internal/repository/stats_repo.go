package repository

import (
	"context"
	"errors"
	"time"

	"github.com/linkpage/linkpage-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository persists pre-aggregated daily analytics rows
type StatsRepository interface {
	// RecordEvent folds one accepted event into its (profile, UTC day) row.
	// The fold is a single upsert-and-increment plus a set-insert, both in
	// one transaction: concurrent events for the same key never lose an
	// increment and never double-count a session.
	RecordEvent(ctx context.Context, ev *domain.AnalyticsEvent) error
	// RangeByProfile returns aggregate rows for [from, to], newest first,
	// with unique-visitor counts resolved from the session set.
	RangeByProfile(ctx context.Context, profileID uint64, from, to time.Time, limit int) ([]domain.DailyStatRow, error)
	// GetDay returns the aggregate row for one day, nil if absent
	GetDay(ctx context.Context, profileID uint64, day time.Time) (*domain.DailyProfileStat, error)
	// SessionsForDay returns the day's unique-session set members
	SessionsForDay(ctx context.Context, profileID uint64, day time.Time) ([]string, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

var statKey = []clause.Column{{Name: "profile_id"}, {Name: "stat_date"}}

func (r *statsRepository) RecordEvent(ctx context.Context, ev *domain.AnalyticsEvent) error {
	day := domain.DayBucket(ev.OccurredAt)

	row := &domain.DailyProfileStat{
		ProfileID:         ev.ProfileID,
		StatDate:          day,
		TotalInteractions: 1,
	}

	// On conflict every counter moves by a fixed delta inside the database.
	// Never read-then-write: that loses updates under concurrency.
	assignments := map[string]interface{}{
		"total_interactions": gorm.Expr("total_interactions + 1"),
		"updated_at":         time.Now().UTC(),
	}

	switch {
	case ev.EventType == domain.EventPageview:
		row.ProfileViews = 1
		assignments["profile_views"] = gorm.Expr("profile_views + 1")
	case ev.EventType == domain.EventClick && ev.Target == domain.TargetLink:
		row.LinkClicks = 1
		assignments["link_clicks"] = gorm.Expr("link_clicks + 1")
	case ev.EventType == domain.EventClick && ev.Target == domain.TargetProduct:
		row.ProductClicks = 1
		assignments["product_clicks"] = gorm.Expr("product_clicks + 1")
	}
	// Clicks with no resolvable target count toward total_interactions only.

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   statKey,
			DoUpdates: clause.Assignments(assignments),
		}).Create(row).Error; err != nil {
			return err
		}

		// Set semantics: a duplicate (profile, day, session) insert is a no-op
		session := &domain.DailyProfileSession{
			ProfileID: ev.ProfileID,
			StatDate:  day,
			SessionID: ev.SessionID,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "stat_date"}, {Name: "session_id"}},
			DoNothing: true,
		}).Create(session).Error
	})
}

func (r *statsRepository) RangeByProfile(ctx context.Context, profileID uint64, from, to time.Time, limit int) ([]domain.DailyStatRow, error) {
	var stats []domain.DailyProfileStat
	q := r.db.WithContext(ctx).
		Where("profile_id = ? AND stat_date >= ? AND stat_date <= ?", profileID, domain.DayBucket(from), domain.DayBucket(to)).
		Order("stat_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&stats).Error; err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return []domain.DailyStatRow{}, nil
	}

	type sessionCount struct {
		StatDate time.Time `gorm:"column:stat_date"`
		Count    int64     `gorm:"column:cnt"`
	}
	var counts []sessionCount
	err := r.db.WithContext(ctx).
		Model(&domain.DailyProfileSession{}).
		Select("stat_date, COUNT(*) as cnt").
		Where("profile_id = ? AND stat_date >= ? AND stat_date <= ?", profileID, domain.DayBucket(from), domain.DayBucket(to)).
		Group("stat_date").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}

	visitors := make(map[string]int64, len(counts))
	for _, c := range counts {
		visitors[domain.DayBucket(c.StatDate).Format("2006-01-02")] = c.Count
	}

	rows := make([]domain.DailyStatRow, 0, len(stats))
	for _, s := range stats {
		day := domain.DayBucket(s.StatDate)
		rows = append(rows, domain.DailyStatRow{
			Date:              day,
			ProfileViews:      s.ProfileViews,
			LinkClicks:        s.LinkClicks,
			ProductClicks:     s.ProductClicks,
			TotalInteractions: s.TotalInteractions,
			UniqueVisitors:    visitors[day.Format("2006-01-02")],
		})
	}
	return rows, nil
}

func (r *statsRepository) GetDay(ctx context.Context, profileID uint64, day time.Time) (*domain.DailyProfileStat, error) {
	var stat domain.DailyProfileStat
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND stat_date = ?", profileID, domain.DayBucket(day)).
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *statsRepository) SessionsForDay(ctx context.Context, profileID uint64, day time.Time) ([]string, error) {
	var sessions []string
	err := r.db.WithContext(ctx).
		Model(&domain.DailyProfileSession{}).
		Where("profile_id = ? AND stat_date = ?", profileID, domain.DayBucket(day)).
		Order("session_id").
		Pluck("session_id", &sessions).Error
	return sessions, err
}
