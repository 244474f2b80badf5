package ports

import (
	"context"
	"time"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

// UsageEventInput is the DTO for a single ingested gameplay sample.
type UsageEventInput struct {
	GameID         string
	Players        int
	Revenue        float64
	SessionMinutes float64
	Device         string
	Region         string
	Returning      bool
	Timestamp      time.Time
}

// ReportInput selects the aggregation window for an analytics report.
type ReportInput struct {
	GameID string // optional: empty aggregates across all games
	Days   int    // window length; defaults to 7, capped at 90
}

// DailyStat is one day's rollup of players and revenue.
type DailyStat struct {
	Date    string  `json:"date"`
	Players int     `json:"players"`
	Revenue float64 `json:"revenue"`
}

// RegionStat is the player count attributed to one region.
type RegionStat struct {
	Name    string `json:"name"`
	Players int    `json:"players"`
}

// DeviceBreakdown is the percentage split of players by device class.
type DeviceBreakdown struct {
	Mobile  float64 `json:"mobile"`
	Desktop float64 `json:"desktop"`
	Tablet  float64 `json:"tablet"`
}

// AnalyticsReport is the aggregated view served to the dashboard.
type AnalyticsReport struct {
	PlayerCount     int             `json:"player_count"`
	Revenue         float64         `json:"revenue"`
	SessionTime     float64         `json:"session_time"`
	RetentionRate   float64         `json:"retention_rate"`
	DeviceBreakdown DeviceBreakdown `json:"device_breakdown"`
	RegionData      []RegionStat    `json:"region_data"`
	DailyStats      []DailyStat     `json:"daily_stats"`
}

// AnalyticsService aggregates stored usage events into reports.
type AnalyticsService interface {
	Ingest(ctx context.Context, events []UsageEventInput) error
	Report(ctx context.Context, input ReportInput) (*AnalyticsReport, error)
}

// AnalyticsRepository defines persistence and aggregation over usage events.
type AnalyticsRepository interface {
	InsertEvents(ctx context.Context, events []*domain.UsageEvent) error
	// DailyStats groups events by calendar day within [from, to).
	DailyStats(ctx context.Context, gameID string, from, to time.Time) ([]DailyStat, error)
	// Summary computes the window-wide averages and breakdowns.
	Summary(ctx context.Context, gameID string, from, to time.Time) (*UsageSummary, error)
}

// UsageSummary is the repository-level aggregate behind a report.
type UsageSummary struct {
	AvgSessionMinutes float64
	RetentionRate     float64
	DevicePlayers     map[string]int
	RegionPlayers     map[string]int
}
