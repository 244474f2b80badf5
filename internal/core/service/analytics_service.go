package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

const (
	defaultReportDays = 7
	maxReportDays     = 90
)

type analyticsService struct {
	repo ports.AnalyticsRepository
	log  zerolog.Logger
}

// NewAnalyticsService returns an AnalyticsService that aggregates stored
// usage events. Reports are computed, never synthesized.
func NewAnalyticsService(repo ports.AnalyticsRepository, log zerolog.Logger) ports.AnalyticsService {
	return &analyticsService{repo: repo, log: log}
}

func (s *analyticsService) Ingest(ctx context.Context, inputs []ports.UsageEventInput) error {
	events := make([]*domain.UsageEvent, 0, len(inputs))
	for _, in := range inputs {
		ts := in.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		events = append(events, &domain.UsageEvent{
			ID:             uuid.NewString(),
			GameID:         in.GameID,
			Players:        in.Players,
			Revenue:        in.Revenue,
			SessionMinutes: in.SessionMinutes,
			Device:         in.Device,
			Region:         in.Region,
			Returning:      in.Returning,
			Timestamp:      ts.UTC(),
		})
	}

	if err := s.repo.InsertEvents(ctx, events); err != nil {
		s.log.Error().Err(err).Int("count", len(events)).Msg("failed to insert usage events")
		return err
	}
	return nil
}

func (s *analyticsService) Report(ctx context.Context, input ports.ReportInput) (*ports.AnalyticsReport, error) {
	days := input.Days
	if days <= 0 {
		days = defaultReportDays
	}
	if days > maxReportDays {
		days = maxReportDays
	}

	now := time.Now().UTC()
	to := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -days)

	daily, err := s.repo.DailyStats(ctx, input.GameID, from, to)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, input.GameID, from, to)
	if err != nil {
		return nil, err
	}

	report := &ports.AnalyticsReport{
		SessionTime:   summary.AvgSessionMinutes,
		RetentionRate: summary.RetentionRate,
		DailyStats:    daily,
	}

	for _, day := range daily {
		report.Revenue += day.Revenue
	}
	if len(daily) > 0 {
		report.PlayerCount = daily[len(daily)-1].Players
	}

	report.DeviceBreakdown = deviceBreakdown(summary.DevicePlayers)
	report.RegionData = regionStats(summary.RegionPlayers)

	return report, nil
}

// deviceBreakdown converts absolute player counts per device into percentages.
func deviceBreakdown(players map[string]int) ports.DeviceBreakdown {
	total := 0
	for _, n := range players {
		total += n
	}
	if total == 0 {
		return ports.DeviceBreakdown{}
	}

	pct := func(device string) float64 {
		return float64(players[device]) / float64(total) * 100
	}
	return ports.DeviceBreakdown{
		Mobile:  pct(domain.DeviceMobile),
		Desktop: pct(domain.DeviceDesktop),
		Tablet:  pct(domain.DeviceTablet),
	}
}

// regionStats flattens the region map into the ordered slice the dashboard
// renders, largest regions first.
func regionStats(players map[string]int) []ports.RegionStat {
	stats := make([]ports.RegionStat, 0, len(players))
	for name, n := range players {
		stats = append(stats, ports.RegionStat{Name: name, Players: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Players != stats[j].Players {
			return stats[i].Players > stats[j].Players
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}
