// File: database/repository/session/session_mongo.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"studiofit/database"
	"studiofit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSessionRepo is the MongoDB-backed implementation of SessionRepository.
type MongoSessionRepo struct {
	sessions     *mongo.Collection
	participants *mongo.Collection
}

// NewMongoSessionRepo creates a repository bound to the application database.
func NewMongoSessionRepo() *MongoSessionRepo {
	db := database.GetDatabase()
	return &MongoSessionRepo{
		sessions:     db.Collection("sessions"),
		participants: db.Collection("participants"),
	}
}

func (repo *MongoSessionRepo) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := repo.sessions.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &s, nil
}

func (repo *MongoSessionRepo) GetParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	cur, err := repo.participants.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants for session %s: %w", sessionID, err)
	}
	defer cur.Close(ctx)

	var out []models.Participant
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode participants: %w", err)
	}
	return out, nil
}

func (repo *MongoSessionRepo) ListByTrainerWindow(ctx context.Context, trainerID string, from, to time.Time) ([]models.Session, error) {
	filter := bson.M{
		"trainer_id": trainerID,
		"status":     bson.M{"$ne": models.SessionCancelled},
		"start_time": bson.M{"$lt": to},
		"end_time":   bson.M{"$gt": from},
	}
	cur, err := repo.sessions.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for trainer %s: %w", trainerID, err)
	}
	defer cur.Close(ctx)

	var out []models.Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return out, nil
}

func (repo *MongoSessionRepo) CountInWindow(ctx context.Context, from, to time.Time, types []models.SessionType) (int, error) {
	filter := bson.M{
		"status":     bson.M{"$ne": models.SessionCancelled},
		"type":       bson.M{"$in": types},
		"start_time": bson.M{"$gte": from, "$lte": to},
	}
	n, err := repo.sessions.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions in window: %w", err)
	}
	return int(n), nil
}

func (repo *MongoSessionRepo) DeleteSessionCascade(ctx context.Context, id string) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := repo.sessions.DeleteOne(sc, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to delete session %s: %w", id, err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		if _, err := repo.participants.DeleteMany(sc, bson.M{"session_id": id}); err != nil {
			return fmt.Errorf("failed to delete participants of session %s: %w", id, err)
		}
		return nil
	})
}

// ReconcileCounts repairs drift between the denormalized counter and a fresh
// confirmed count. Runs outside the per-session lock: any write racing the
// sweep reconverges on the next pass.
func (repo *MongoSessionRepo) ReconcileCounts(ctx context.Context) (int, error) {
	cur, err := repo.sessions.Find(ctx, bson.M{"status": bson.M{"$ne": models.SessionCancelled}})
	if err != nil {
		return 0, fmt.Errorf("reconcile: failed to list sessions: %w", err)
	}
	defer cur.Close(ctx)

	fixed := 0
	for cur.Next(ctx) {
		var s models.Session
		if err := cur.Decode(&s); err != nil {
			return fixed, fmt.Errorf("reconcile: decode failed: %w", err)
		}
		n, err := repo.participants.CountDocuments(ctx, bson.M{
			"session_id": s.ID,
			"status":     models.BookingConfirmed,
		})
		if err != nil {
			return fixed, fmt.Errorf("reconcile: count failed for session %s: %w", s.ID, err)
		}
		if int(n) == s.CurrentParticipants {
			continue
		}
		_, err = repo.sessions.UpdateOne(ctx,
			bson.M{"id": s.ID, "current_participants": s.CurrentParticipants},
			bson.M{"$set": bson.M{"current_participants": int(n), "updated_at": time.Now().UTC()}},
		)
		if err != nil {
			return fixed, fmt.Errorf("reconcile: update failed for session %s: %w", s.ID, err)
		}
		fixed++
	}
	return fixed, cur.Err()
}
