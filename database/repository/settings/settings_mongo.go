package settingsRepo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"studiofit/config"
	"studiofit/database"
	"studiofit/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	weeklyQuotaKey      = "settings:weekly_session_quota"
	weeklyQuotaCacheTTL = 30 * time.Second
)

// MongoSettingsRepo stores settings in mongo with a short-lived redis cache
// in front; the quota check runs on every non-bypassing booking.
type MongoSettingsRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

func NewMongoSettingsRepo() *MongoSettingsRepo {
	return &MongoSettingsRepo{
		coll:  database.GetDatabase().Collection("settings"),
		cache: utils.GetCacheClient(),
	}
}

type settingDoc struct {
	Key   string `bson:"key"`
	Value int    `bson:"value"`
}

func (repo *MongoSettingsRepo) GetWeeklyQuota(ctx context.Context) (int, error) {
	if cached, err := repo.cache.Get(ctx, weeklyQuotaKey).Result(); err == nil {
		if quota, convErr := strconv.Atoi(cached); convErr == nil {
			return quota, nil
		}
	}

	var doc settingDoc
	err := repo.coll.FindOne(ctx, bson.M{"key": "weekly_session_quota"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		// No administrator override stored yet; fall back to the configured
		// default.
		return config.AppConfig.WeeklySessionQuota, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to fetch weekly quota: %w", err)
	}

	if err := repo.cache.Set(ctx, weeklyQuotaKey, doc.Value, weeklyQuotaCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache weekly quota", zap.Error(err))
	}
	return doc.Value, nil
}

func (repo *MongoSettingsRepo) SetWeeklyQuota(ctx context.Context, quota int) error {
	if quota < 0 {
		return fmt.Errorf("weekly quota must be non-negative, got %d", quota)
	}
	_, err := repo.coll.UpdateOne(ctx,
		bson.M{"key": "weekly_session_quota"},
		bson.M{"$set": bson.M{"value": quota, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store weekly quota: %w", err)
	}
	// Invalidate rather than update: the next read repopulates the cache.
	if err := repo.cache.Del(ctx, weeklyQuotaKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate weekly quota cache", zap.Error(err))
	}
	return nil
}
