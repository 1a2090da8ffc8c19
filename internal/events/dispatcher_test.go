package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string

	d.Subscribe(EventAppointmentCreated, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventAppointmentCreated, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		assert.Equal(t, int64(5), e.AppointmentID)
		return nil
	})
	d.Subscribe(EventAppointmentUpdated, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	event := NewEvent(EventAppointmentCreated, 5, 3, Actor{AccountID: 1, DoctorID: 1}, nil)
	err := d.Publish(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.NotEmpty(t, event.ID)
}

func TestDispatcherWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventAppointmentUpdated, 1, 1, Actor{}, nil)))
}
