package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
	"github.com/maqsafnadatabase3/Ropoilet/internal/core/ports"
)

const collectionUsageEvents = "usage_events"

// AnalyticsRepository stores raw usage events and aggregates them server-side
// with Mongo pipelines.
type AnalyticsRepository struct {
	col *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{col: db.Collection(collectionUsageEvents)}
}

func (r *AnalyticsRepository) InsertEvents(ctx context.Context, events []*domain.UsageEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, 0, len(events))
	for _, e := range events {
		docs = append(docs, e)
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert usage events: %w", err)
	}
	return nil
}

// windowMatch builds the shared $match stage for [from, to), optionally
// scoped to one game.
func windowMatch(gameID string, from, to time.Time) bson.M {
	match := bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}}
	if gameID != "" {
		match["game_id"] = gameID
	}
	return match
}

// DailyStats groups events by calendar day within [from, to).
func (r *AnalyticsRepository) DailyStats(ctx context.Context, gameID string, from, to time.Time) ([]ports.DailyStat, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: windowMatch(gameID, from, to)}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$timestamp"}},
			"players": bson.M{"$sum": "$players"},
			"revenue": bson.M{"$sum": "$revenue"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Date    string  `bson:"_id"`
		Players int     `bson:"players"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode daily stats: %w", err)
	}

	stats := make([]ports.DailyStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, ports.DailyStat{Date: row.Date, Players: row.Players, Revenue: row.Revenue})
	}
	return stats, nil
}

// Summary computes the window-wide averages and breakdowns in one $facet pass.
func (r *AnalyticsRepository) Summary(ctx context.Context, gameID string, from, to time.Time) (*ports.UsageSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: windowMatch(gameID, from, to)}},
		{{Key: "$facet", Value: bson.M{
			"totals": bson.A{bson.M{"$group": bson.M{
				"_id":         nil,
				"avg_session": bson.M{"$avg": "$session_minutes"},
				"players":     bson.M{"$sum": "$players"},
				"returning": bson.M{"$sum": bson.M{
					"$cond": bson.A{"$returning", "$players", 0},
				}},
			}}},
			"devices": bson.A{bson.M{"$group": bson.M{
				"_id":     "$device",
				"players": bson.M{"$sum": "$players"},
			}}},
			"regions": bson.A{bson.M{"$group": bson.M{
				"_id":     "$region",
				"players": bson.M{"$sum": "$players"},
			}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	defer cur.Close(ctx)

	type bucket struct {
		ID      string `bson:"_id"`
		Players int    `bson:"players"`
	}
	var results []struct {
		Totals []struct {
			AvgSession float64 `bson:"avg_session"`
			Players    int     `bson:"players"`
			Returning  int     `bson:"returning"`
		} `bson:"totals"`
		Devices []bucket `bson:"devices"`
		Regions []bucket `bson:"regions"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode usage summary: %w", err)
	}

	summary := &ports.UsageSummary{
		DevicePlayers: map[string]int{},
		RegionPlayers: map[string]int{},
	}
	if len(results) == 0 {
		return summary, nil
	}

	res := results[0]
	if len(res.Totals) > 0 {
		t := res.Totals[0]
		summary.AvgSessionMinutes = t.AvgSession
		if t.Players > 0 {
			summary.RetentionRate = float64(t.Returning) / float64(t.Players) * 100
		}
	}
	for _, d := range res.Devices {
		summary.DevicePlayers[d.ID] = d.Players
	}
	for _, rg := range res.Regions {
		summary.RegionPlayers[rg.ID] = rg.Players
	}
	return summary, nil
}

// EnsureIndexes creates necessary indexes on the usage events collection.
func (r *AnalyticsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "game_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
