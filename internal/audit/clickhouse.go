// Package audit provides an optional raw-event trail in ClickHouse. The
// daily aggregate remains the source of truth; the sink is fire-and-forget
// and its failures are logged, never surfaced to the event's submitter.
package audit

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/linkpage/linkpage-backend/internal/domain"
	pkglogger "github.com/linkpage/linkpage-backend/pkg/logger"
)

// Sink records accepted analytics events for audit
type Sink interface {
	Record(ev *domain.AnalyticsEvent)
	Close() error
}

// Config holds ClickHouse connection parameters
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseSink appends accepted events to the analytics_events table
type ClickHouseSink struct {
	conn driver.Conn
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS analytics_events (
    profile_id  UInt64,
    session_id  String,
    event_type  LowCardinality(String),
    link_id     UInt64,
    product_id  UInt64,
    link_url    String,
    path        String,
    referrer    String,
    browser     LowCardinality(String),
    device      LowCardinality(String),
    occurred_at DateTime
) ENGINE = MergeTree()
ORDER BY (profile_id, occurred_at)`

// NewClickHouseSink opens a ClickHouse connection and ensures the events table
func NewClickHouseSink(cfg Config) (*ClickHouseSink, error) {
	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      5 * time.Second,
		MaxOpenConns:     3,
		MaxIdleConns:     2,
		ConnMaxLifetime:  5 * time.Minute,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	}

	// TLS for non-private networks
	if cfg.Host != "localhost" && cfg.Host != "127.0.0.1" &&
		!strings.HasPrefix(cfg.Host, "10.") &&
		!strings.HasPrefix(cfg.Host, "172.") &&
		!strings.HasPrefix(cfg.Host, "192.168.") {
		options.TLS = &tls.Config{InsecureSkipVerify: true}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to open ClickHouse: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("audit: failed to ping ClickHouse: %w", err)
	}
	if err := conn.Exec(ctx, createEventsTable); err != nil {
		return nil, fmt.Errorf("audit: failed to create events table: %w", err)
	}

	return &ClickHouseSink{conn: conn}, nil
}

// Record appends one event asynchronously. Errors are logged only: an
// audit-trail outage must not fail ingestion.
func (s *ClickHouseSink) Record(ev *domain.AnalyticsEvent) {
	e := *ev
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := s.conn.AsyncInsert(ctx, `
			INSERT INTO analytics_events
			(profile_id, session_id, event_type, link_id, product_id, link_url, path, referrer, browser, device, occurred_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			false,
			e.ProfileID, e.SessionID, string(e.EventType), e.LinkID, e.ProductID,
			e.LinkURL, e.Path, e.Referrer, e.Browser, e.Device, e.OccurredAt,
		)
		if err != nil {
			pkglogger.GetLogger().Error().
				Err(err).
				Uint64("profile_id", e.ProfileID).
				Msg("audit: event insert failed")
		}
	}()
}

// Close closes the ClickHouse connection
func (s *ClickHouseSink) Close() error {
	return s.conn.Close()
}
