package memberRepo

import (
	"context"
	"fmt"

	"studiofit/database"
	"studiofit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMemberRepo is the MongoDB-backed implementation of MemberRepository.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

func NewMongoMemberRepo() *MongoMemberRepo {
	return &MongoMemberRepo{coll: database.GetDatabase().Collection("members")}
}

func (repo *MongoMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var m models.Member
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s: %w", id, err)
	}
	return &m, nil
}

func (repo *MongoMemberRepo) Create(ctx context.Context, m *models.Member) error {
	if _, err := repo.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}
