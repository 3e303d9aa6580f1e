// File: database/repository/session/transaction.go
package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studiofit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoSessionTx implements SessionTx inside an open mongo transaction.
type mongoSessionTx struct {
	sc        mongo.SessionContext
	repo      *MongoSessionRepo
	sessionID string
}

func (tx *mongoSessionTx) Session() (*models.Session, error) {
	var s models.Session
	err := tx.repo.sessions.FindOne(tx.sc, bson.M{"id": tx.sessionID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tx: failed to fetch session %s: %w", tx.sessionID, err)
	}
	return &s, nil
}

func (tx *mongoSessionTx) Participants() ([]models.Participant, error) {
	cur, err := tx.repo.participants.Find(tx.sc, bson.M{"session_id": tx.sessionID},
		optionsFindSortedByCreation())
	if err != nil {
		return nil, fmt.Errorf("tx: failed to fetch participants: %w", err)
	}
	defer cur.Close(tx.sc)

	var out []models.Participant
	if err := cur.All(tx.sc, &out); err != nil {
		return nil, fmt.Errorf("tx: failed to decode participants: %w", err)
	}
	return out, nil
}

func (tx *mongoSessionTx) UpdateSession(s *models.Session) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := tx.repo.sessions.ReplaceOne(tx.sc, bson.M{"id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("tx: failed to update session %s: %w", s.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (tx *mongoSessionTx) InsertParticipant(p *models.Participant) error {
	if _, err := tx.repo.participants.InsertOne(tx.sc, p); err != nil {
		return fmt.Errorf("tx: failed to insert participant: %w", err)
	}
	return nil
}

func (tx *mongoSessionTx) UpdateParticipant(p *models.Participant) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := tx.repo.participants.ReplaceOne(tx.sc, bson.M{"id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("tx: failed to update participant %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (tx *mongoSessionTx) DeleteParticipant(participantID string) error {
	res, err := tx.repo.participants.DeleteOne(tx.sc, bson.M{"id": participantID})
	if err != nil {
		return fmt.Errorf("tx: failed to delete participant %s: %w", participantID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSession inserts the session row and runs admit within the same
// transaction.
func (repo *MongoSessionRepo) CreateSession(ctx context.Context, s *models.Session, admit func(tx SessionTx) error) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.sessions.InsertOne(sc, s); err != nil {
			return fmt.Errorf("insert session failed: %w", err)
		}
		if admit == nil {
			return nil
		}
		return admit(&mongoSessionTx{sc: sc, repo: repo, sessionID: s.ID})
	})
}

// InSessionTx serializes the read-modify-write unit against one session by
// bumping the session's version inside the transaction. Two concurrent units
// on the same row produce a write conflict and one of them aborts with
// ErrTxConflict.
func (repo *MongoSessionRepo) InSessionTx(ctx context.Context, sessionID string, fn func(tx SessionTx) error) error {
	return repo.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := repo.sessions.UpdateOne(sc,
			bson.M{"id": sessionID},
			bson.M{"$inc": bson.M{"version": 1}},
		)
		if err != nil {
			return fmt.Errorf("failed to lock session %s: %w", sessionID, err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return fn(&mongoSessionTx{sc: sc, repo: repo, sessionID: sessionID})
	})
}

func (repo *MongoSessionRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := repo.sessions.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err != nil {
		if isTransient(err) {
			return ErrTxConflict
		}
		return err
	}
	return nil
}

// isTransient reports whether the error carries a mongo transient-transaction
// label, meaning the whole unit is safe to retry.
func isTransient(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") ||
			ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		return we.HasErrorLabel("TransientTransactionError")
	}
	return false
}
