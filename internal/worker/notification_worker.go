package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/doctor-portal/internal/service"
)

// StartNotificationWorker attaches the notification handlers to the appointment event stream.
// Handlers run synchronously inside Publish, so there is no goroutine to stop.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	subscribed := notificationService.RegisterHandlers()
	if logger == nil {
		return
	}
	names := make([]string, 0, len(subscribed))
	for _, eventType := range subscribed {
		names = append(names, string(eventType))
	}
	logger.Info("notification worker started", zap.Strings("events", names))
}
