package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

const collectionSettings = "settings"

// settingsDocID keys the singleton feature flag document.
const settingsDocID = "feature_flags"

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type settingsDoc struct {
	ID        string              `bson:"_id"`
	Flags     domain.FeatureFlags `bson:"flags"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

// GetFeatureFlags returns the stored flags, or found=false when no admin has
// saved any yet.
func (r *SettingsRepository) GetFeatureFlags(ctx context.Context) (domain.FeatureFlags, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc settingsDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.FeatureFlags{}, false, nil
		}
		return domain.FeatureFlags{}, false, fmt.Errorf("find settings: %w", err)
	}
	return doc.Flags, true, nil
}

// SaveFeatureFlags upserts the singleton document.
func (r *SettingsRepository) SaveFeatureFlags(ctx context.Context, flags domain.FeatureFlags) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := settingsDoc{ID: settingsDocID, Flags: flags, UpdatedAt: time.Now().UTC()}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
