package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/doctor-portal/internal/config"
	"github.com/spec-kit/doctor-portal/internal/events"
)

func TestNotificationServiceLogsIdentifiersOnly(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com/portal",
	})

	subscribed := svc.RegisterHandlers()
	assert.ElementsMatch(t, []events.EventType{events.EventAppointmentCreated, events.EventAppointmentUpdated}, subscribed)

	actor := events.Actor{AccountID: 1, DoctorID: 2}
	created := events.NewEvent(events.EventAppointmentCreated, 10, 3, actor,
		events.AppointmentCreatedPayload{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, dispatcher.Publish(context.Background(), created))

	updated := events.NewEvent(events.EventAppointmentUpdated, 10, 3, actor,
		events.AppointmentUpdatedPayload{Fields: []string{"notes"}})
	require.NoError(t, dispatcher.Publish(context.Background(), updated))

	assert.Equal(t, 1, logs.FilterMessage("AppointmentCreated").Len())
	assert.Equal(t, 1, logs.FilterMessage("AppointmentUpdated").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())

	entry := logs.FilterMessage("AppointmentCreated").All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, int64(10), fields["appointment_id"])
	assert.Equal(t, int64(3), fields["patient_id"])
	assert.Equal(t, int64(2), fields["doctor_id"])
}

func TestNotificationServiceWithoutDispatcher(t *testing.T) {
	svc := NewNotificationService(nil, zap.NewNop(), config.NotificationConfig{})
	assert.Empty(t, svc.RegisterHandlers())
}
