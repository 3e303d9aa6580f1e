package notification

import (
	"context"

	"studiofit/config"
	"studiofit/models"
	"studiofit/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqNotifier publishes events onto the redis-backed task queue for the
// background worker to deliver.
type AsynqNotifier struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqNotifier(logger *zap.Logger) *AsynqNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &AsynqNotifier{client: client, logger: logger}
}

func (n *AsynqNotifier) Publish(ctx context.Context, event models.NotificationEvent) {
	task, err := tasks.NewNotifyEventTask(event)
	if err != nil {
		n.logger.Error("failed to build notification task",
			zap.String("type", event.Type), zap.Error(err))
		return
	}
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		// Fire-and-forget: the triggering transaction already committed.
		n.logger.Error("failed to enqueue notification event",
			zap.String("type", event.Type),
			zap.String("sessionId", event.SessionID),
			zap.Error(err))
		return
	}
	n.logger.Debug("notification event enqueued",
		zap.String("type", event.Type),
		zap.String("sessionId", event.SessionID),
		zap.String("memberId", event.MemberID))
}

// Close releases the underlying queue client.
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
