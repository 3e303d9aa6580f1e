package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"studiofit/config"
	"studiofit/database"
	sessionRepo "studiofit/database/repository/session"
	"studiofit/models"
	"studiofit/services/tasks"
	"studiofit/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitWorker runs the async worker in background: it delivers notification
// events and periodically reconciles the denormalized participant counters
// against a fresh confirmed count.
func InitWorker(repo sessionRepo.SessionRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifyEvent, handleNotifyEvent)
	mux.HandleFunc(tasks.TypeReconcileCounter, handleReconcile(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Enqueue the periodic reconciliation sweep.
	go scheduleReconciliation(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleNotifyEvent persists the outbound event for the notification
// collaborator. Delivery is best-effort by contract; the triggering booking
// transaction has long since committed.
func handleNotifyEvent(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var ev models.NotificationEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		logger.Error("invalid notification payload", zap.Error(err))
		return err
	}

	doc := models.Notification{
		ID:        uuid.New().String(),
		Type:      ev.Type,
		SessionID: ev.SessionID,
		MemberID:  ev.MemberID,
		Position:  ev.Position,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := database.GetDatabase().Collection("notifications").InsertOne(ctx, doc); err != nil {
		logger.Error("failed to persist notification", zap.Error(err))
		return err
	}

	logger.Info("notification delivered",
		zap.String("type", ev.Type),
		zap.String("sessionId", ev.SessionID),
		zap.String("memberId", ev.MemberID),
		zap.Int("position", ev.Position))
	return nil
}

// handleReconcile repairs counter drift. Drift here means a bug or an
// out-of-band write slipped past the state machine, so it is logged loudly.
func handleReconcile(repo sessionRepo.SessionRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		logger := utils.GetLogger()
		fixed, err := repo.ReconcileCounts(ctx)
		if err != nil {
			logger.Error("counter reconciliation failed", zap.Error(err))
			return err
		}
		if fixed > 0 {
			logger.Warn("participant counters drifted and were repaired", zap.Int("sessions", fixed))
		} else {
			logger.Debug("participant counters consistent")
		}
		return nil
	}
}

// scheduleReconciliation enqueues the sweep on a fixed interval.
func scheduleReconciliation(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	interval := time.Duration(config.AppConfig.ReconcileIntervalMin) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := client.Enqueue(tasks.NewReconcileTask()); err != nil {
			log.Printf("[Worker] Failed to enqueue reconciliation task: %v", err)
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
