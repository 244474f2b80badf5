package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

type stubAnalyticsRepo struct {
	inserted []*domain.UsageEvent
	daily    []ports.DailyStat
	summary  *ports.UsageSummary

	gotGameID string
	gotFrom   time.Time
	gotTo     time.Time
}

func (r *stubAnalyticsRepo) InsertEvents(_ context.Context, events []*domain.UsageEvent) error {
	r.inserted = append(r.inserted, events...)
	return nil
}

func (r *stubAnalyticsRepo) DailyStats(_ context.Context, gameID string, from, to time.Time) ([]ports.DailyStat, error) {
	r.gotGameID = gameID
	r.gotFrom = from
	r.gotTo = to
	return r.daily, nil
}

func (r *stubAnalyticsRepo) Summary(_ context.Context, _ string, _, _ time.Time) (*ports.UsageSummary, error) {
	if r.summary == nil {
		return &ports.UsageSummary{DevicePlayers: map[string]int{}, RegionPlayers: map[string]int{}}, nil
	}
	return r.summary, nil
}

func TestAnalyticsService_Ingest_StampsIDsAndTimestamps(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc := NewAnalyticsService(repo, zerolog.Nop())

	err := svc.Ingest(context.Background(), []ports.UsageEventInput{
		{GameID: "g1", Players: 10},
		{GameID: "g1", Players: 5, Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.inserted))
	}
	if repo.inserted[0].ID == "" || repo.inserted[0].Timestamp.IsZero() {
		t.Fatalf("missing ID or timestamp backfill: %+v", repo.inserted[0])
	}
	if !repo.inserted[1].Timestamp.Equal(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("explicit timestamp must be kept")
	}
}

func TestAnalyticsService_Report_AggregatesDeterministically(t *testing.T) {
	repo := &stubAnalyticsRepo{
		daily: []ports.DailyStat{
			{Date: "2026-08-25", Players: 100, Revenue: 40},
			{Date: "2026-08-26", Players: 150, Revenue: 60},
			{Date: "2026-08-27", Players: 120, Revenue: 20},
		},
		summary: &ports.UsageSummary{
			AvgSessionMinutes: 24.5,
			RetentionRate:     62.5,
			DevicePlayers: map[string]int{
				domain.DeviceMobile:  200,
				domain.DeviceDesktop: 150,
				domain.DeviceTablet:  50,
			},
			RegionPlayers: map[string]int{
				"North America": 180,
				"Europe":        140,
				"Asia":          80,
			},
		},
	}
	svc := NewAnalyticsService(repo, zerolog.Nop())

	report, err := svc.Report(context.Background(), ports.ReportInput{GameID: "g1", Days: 3})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}

	if report.Revenue != 120 {
		t.Fatalf("revenue must be the window sum, got %v", report.Revenue)
	}
	if report.PlayerCount != 120 {
		t.Fatalf("player count must be the latest day, got %d", report.PlayerCount)
	}
	if report.SessionTime != 24.5 || report.RetentionRate != 62.5 {
		t.Fatalf("summary fields not carried: %+v", report)
	}
	if report.DeviceBreakdown.Mobile != 50 || report.DeviceBreakdown.Desktop != 37.5 || report.DeviceBreakdown.Tablet != 12.5 {
		t.Fatalf("device breakdown must be percentages: %+v", report.DeviceBreakdown)
	}
	if report.RegionData[0].Name != "North America" || report.RegionData[2].Name != "Asia" {
		t.Fatalf("regions must be ordered by players desc: %+v", report.RegionData)
	}
	if repo.gotGameID != "g1" {
		t.Fatalf("game scope not passed through")
	}
}

func TestAnalyticsService_Report_WindowDefaultsAndCap(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc := NewAnalyticsService(repo, zerolog.Nop())

	if _, err := svc.Report(context.Background(), ports.ReportInput{}); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if got := repo.gotTo.Sub(repo.gotFrom); got != 7*24*time.Hour {
		t.Fatalf("default window must be 7 days, got %v", got)
	}

	if _, err := svc.Report(context.Background(), ports.ReportInput{Days: 500}); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if got := repo.gotTo.Sub(repo.gotFrom); got != 90*24*time.Hour {
		t.Fatalf("window must cap at 90 days, got %v", got)
	}
}

func TestAnalyticsService_Report_EmptyWindow(t *testing.T) {
	svc := NewAnalyticsService(&stubAnalyticsRepo{}, zerolog.Nop())

	report, err := svc.Report(context.Background(), ports.ReportInput{})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if report.PlayerCount != 0 || report.Revenue != 0 || len(report.RegionData) != 0 {
		t.Fatalf("empty window must produce zeroed report: %+v", report)
	}
}
