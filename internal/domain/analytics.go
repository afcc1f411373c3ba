package domain

import "time"

// EventType is the closed set of accepted visitor event types
type EventType string

const (
	EventPageview EventType = "pageview"
	EventClick    EventType = "click"
)

// Valid reports whether the event type is one of the accepted variants
func (t EventType) Valid() bool {
	return t == EventPageview || t == EventClick
}

// ClickTarget classifies what a click event resolved to
type ClickTarget int

const (
	TargetNone ClickTarget = iota
	TargetLink
	TargetProduct
)

// AnalyticsEvent is a normalized visitor event. Events are transient: they
// are folded into DailyProfileStat on ingestion and only optionally retained
// by the audit sink.
type AnalyticsEvent struct {
	ProfileID  uint64
	SessionID  string
	EventType  EventType
	LinkID     uint64 // 0 when absent
	ProductID  uint64 // 0 when absent
	Target     ClickTarget
	LinkURL    string
	Path       string
	Referrer   string
	Browser    string
	Device     string
	OccurredAt time.Time
}

// TrackRequest is the ingestion payload for POST /analytics/track
type TrackRequest struct {
	ProfileID uint64  `json:"profile_id" binding:"required"`
	// SessionID may arrive in the body or the x-session-id header; the
	// handler merges them before validation
	SessionID string  `json:"session_id" binding:"max=128"`
	EventType string  `json:"event_type" binding:"required"`
	LinkID    *uint64 `json:"link_id"`
	ProductID *uint64 `json:"product_id"`
	LinkURL   string  `json:"link_url" binding:"max=2048"`
	Path      string  `json:"path" binding:"max=512"`
	Referrer  string  `json:"referrer" binding:"max=2048"`
	Browser   string  `json:"browser" binding:"max=64"`
	Device    string  `json:"device" binding:"max=32"`
}

// DailyProfileStat is the pre-aggregated analytics row: one per profile per
// UTC calendar day, created lazily on the first event and mutated only by
// atomic increments. Rows are never deleted here; retention is external.
type DailyProfileStat struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ProfileID     uint64    `gorm:"uniqueIndex:idx_profile_day;not null" json:"profile_id"`
	StatDate      time.Time `gorm:"uniqueIndex:idx_profile_day;not null" json:"date"`
	ProfileViews  int64     `gorm:"not null;default:0" json:"profile_views"`
	LinkClicks    int64     `gorm:"not null;default:0" json:"link_clicks"`
	ProductClicks int64     `gorm:"not null;default:0" json:"product_clicks"`
	// TotalInteractions counts every accepted event, including clicks that
	// resolved to no target. For targeted traffic it always equals
	// ProfileViews + LinkClicks + ProductClicks.
	TotalInteractions int64     `gorm:"not null;default:0" json:"total_interactions"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// TableName returns the table name for GORM
func (DailyProfileStat) TableName() string {
	return "daily_profile_stats"
}

// DailyProfileSession is one member of a day's unique-visitor session set.
// The composite unique index gives the set exact membership semantics:
// duplicate inserts for the same (profile, day, session) collapse to one row.
type DailyProfileSession struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ProfileID uint64    `gorm:"uniqueIndex:idx_day_session;not null"`
	StatDate  time.Time `gorm:"uniqueIndex:idx_day_session;not null"`
	SessionID string    `gorm:"uniqueIndex:idx_day_session;size:128;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DailyProfileSession) TableName() string {
	return "daily_profile_sessions"
}

// DailyStatRow is the dashboard read DTO: one aggregate row plus the
// cardinality of its unique-visitor session set.
type DailyStatRow struct {
	Date              time.Time `json:"date"`
	ProfileViews      int64     `json:"profile_views"`
	LinkClicks        int64     `json:"link_clicks"`
	ProductClicks     int64     `json:"product_clicks"`
	TotalInteractions int64     `json:"total_interactions"`
	UniqueVisitors    int64     `json:"unique_visitors"`
}

// DayBucket truncates t to its UTC calendar day. All daily aggregation keys
// use UTC regardless of the client's or server's local timezone.
func DayBucket(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
