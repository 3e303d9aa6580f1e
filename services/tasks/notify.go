package tasks

import (
	"encoding/json"

	"studiofit/models"

	"github.com/hibiken/asynq"
)

const (
	TypeNotifyEvent      = "notify:event"
	TypeReconcileCounter = "reconcile:counters"
)

// NewNotifyEventTask builds the queue task carrying one notification event.
func NewNotifyEventTask(event models.NotificationEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyEvent, b), nil
}

// NewReconcileTask builds the periodic counter-reconciliation task.
func NewReconcileTask() *asynq.Task {
	return asynq.NewTask(TypeReconcileCounter, nil)
}
