package notification

import (
	"context"

	"studiofit/models"
)

// Notifier hands engine events to the notification collaborator. Publishing
// is fire-and-forget: delivery failures are logged and never roll back the
// transaction that produced the event.
type Notifier interface {
	Publish(ctx context.Context, event models.NotificationEvent)
}
