// File: database/repository/session/indexes.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the sessions and
// participants collections.
func (repo *MongoSessionRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessionModels := []mongo.IndexModel{
		// Unique index on Session ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for trainer conflict lookups
		{
			Keys:    bson.D{{Key: "trainer_id", Value: 1}, {Key: "start_time", Value: 1}, {Key: "end_time", Value: 1}},
			Options: options.Index().SetName("trainer_interval_idx"),
		},
		// Compound index for weekly quota counts
		{
			Keys:    bson.D{{Key: "start_time", Value: 1}, {Key: "type", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("window_type_status_idx"),
		},
	}
	if _, err := repo.sessions.Indexes().CreateMany(ctx, sessionModels); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	participantModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: all rows of one session, by status
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("session_status_idx"),
		},
	}
	if _, err := repo.participants.Indexes().CreateMany(ctx, participantModels); err != nil {
		return fmt.Errorf("failed to create participant indexes: %w", err)
	}
	return nil
}

// optionsFindSortedByCreation orders participant reads by creation time so
// waitlist scans are deterministic.
func optionsFindSortedByCreation() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
}
