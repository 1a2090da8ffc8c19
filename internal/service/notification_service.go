package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/doctor-portal/internal/config"
	"github.com/spec-kit/doctor-portal/internal/events"
)

// NotificationService handles emitting notifications for appointment events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to appointment events and returns the subscribed types.
func (n *NotificationService) RegisterHandlers() []events.EventType {
	if n.dispatcher == nil {
		return nil
	}
	handlers := map[events.EventType]events.EventHandler{
		events.EventAppointmentCreated: n.handleAppointmentCreated,
		events.EventAppointmentUpdated: n.handleAppointmentUpdated,
	}
	subscribed := make([]events.EventType, 0, len(handlers))
	for eventType, handler := range handlers {
		n.dispatcher.Subscribe(eventType, handler)
		subscribed = append(subscribed, eventType)
	}
	return subscribed
}

func (n *NotificationService) handleAppointmentCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentCreated",
		zap.Int64("appointment_id", event.AppointmentID),
		zap.Int64("patient_id", event.PatientID),
		zap.Int64("doctor_id", event.Actor.DoctorID))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAppointmentUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentUpdated",
		zap.Int64("appointment_id", event.AppointmentID),
		zap.Int64("patient_id", event.PatientID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// Clinical content never leaves the service in notifications; only identifiers do.
func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("patient_id", event.PatientID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.Int64("appointment_id", event.AppointmentID),
		zap.String("event_type", string(event.Type)))
}
