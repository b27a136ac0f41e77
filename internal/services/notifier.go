package services

import (
	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"go.uber.org/zap"
)

// AlertEvent is what the alert sweep hands to the notification collaborator
// whenever an alert is created or escalated. Delivery is someone else's job.
type AlertEvent struct {
	AlertID       uint64           `json:"alert_id"`
	AlertType     models.AlertType `json:"alert_type"`
	ScheduledDate models.Date      `json:"scheduled_date"`
}

// Notifier consumes alert events emitted by the sweep.
type Notifier interface {
	Notify(event AlertEvent)
}

// LogNotifier records alert events on the structured log. It is the shipped
// implementation; external delivery services plug in behind the same
// interface.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(event AlertEvent) {
	n.logger.Info("vaccination alert event",
		zap.Uint64("alert_id", event.AlertID),
		zap.String("alert_type", string(event.AlertType)),
		zap.String("scheduled_date", event.ScheduledDate.String()),
	)
}
