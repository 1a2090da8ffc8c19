package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/events"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

type recordedEvents struct {
	events []events.Event
}

func newAppointmentService(c *clinic, scope auth.PatientScope) (*AppointmentService, *recordedEvents) {
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recordedEvents{}
	record := func(_ context.Context, e events.Event) error {
		rec.events = append(rec.events, e)
		return nil
	}
	dispatcher.Subscribe(events.EventAppointmentCreated, record)
	dispatcher.Subscribe(events.EventAppointmentUpdated, record)

	return NewAppointmentService(AppointmentDependencies{
		Patients:     c.repos.Patients,
		Appointments: c.repos.Appointments,
		Guard:        auth.NewGuard(scope),
		Dispatcher:   dispatcher,
	}), rec
}

func TestAppointmentService_CreateAttributesSessionDoctor(t *testing.T) {
	c := newClinic(t)
	svc, rec := newAppointmentService(c, auth.ScopeGlobal)
	date := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	appt, err := svc.Create(context.Background(), c.doctorSession(c.doctorA), AppointmentInput{
		PatientID:   c.patientB.ID,
		Date:        date,
		Notes:       " checkup ",
		Medications: "none",
	})
	require.NoError(t, err)

	assert.Equal(t, c.doctorA.ID, appt.DoctorID)
	assert.Equal(t, c.patientB.ID, appt.PatientID)
	assert.Equal(t, "checkup", appt.Notes)
	assert.Equal(t, "Dr A", appt.DoctorName)

	stored, err := c.repos.Appointments.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, c.doctorA.ID, stored.DoctorID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.EventAppointmentCreated, rec.events[0].Type)
	assert.Equal(t, c.doctorA.ID, rec.events[0].Actor.DoctorID)
}

func TestAppointmentService_CreateDenied(t *testing.T) {
	c := newClinic(t)
	svc, rec := newAppointmentService(c, auth.ScopeAssigned)
	ctx := context.Background()
	input := func(patientID int64) AppointmentInput {
		return AppointmentInput{PatientID: patientID, Date: time.Now()}
	}

	tests := []struct {
		name     string
		session  *domain.Session
		input    AppointmentInput
		wantCode string
	}{
		{"no session", nil, input(c.patientA.ID), apperrors.CodeUnauthorized},
		{"patient for self", c.patientSession(c.patientA), input(c.patientA.ID), apperrors.CodeForbidden},
		{"patient for other", c.patientSession(c.patientA), input(c.patientB.ID), apperrors.CodeForbidden},
		{"doctor without profile", &domain.Session{Role: domain.RoleDoctor}, input(c.patientA.ID), apperrors.CodeForbidden},
		{"doctor outside scope", c.doctorSession(c.doctorA), input(c.patientB.ID), apperrors.CodeForbidden},
		{"missing patient", c.doctorSession(c.doctorA), input(9999), apperrors.CodeNotFound},
		{"missing date", c.doctorSession(c.doctorA), AppointmentInput{PatientID: c.patientA.ID}, apperrors.CodeMalformedRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt, err := svc.Create(ctx, tt.session, tt.input)
			assert.Nil(t, appt)
			assert.Equal(t, tt.wantCode, codeOf(err))
		})
	}

	list, err := c.repos.Appointments.ListByPatient(ctx, c.patientA.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, rec.events)
}

func TestAppointmentService_Update(t *testing.T) {
	c := newClinic(t)
	svc, rec := newAppointmentService(c, auth.ScopeAssigned)
	ctx := context.Background()
	original := c.addAppointment(t, c.patientA, c.doctorA, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), "initial")

	notes := "revised"
	allergies := "penicillin"
	updated, err := svc.Update(ctx, c.doctorSession(c.doctorA), original.ID, AppointmentUpdate{Notes: &notes, Allergies: &allergies})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Notes)
	assert.Equal(t, "penicillin", updated.Allergies)
	assert.True(t, updated.Date.Equal(original.Date))
	assert.Equal(t, c.doctorA.ID, updated.DoctorID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, events.EventAppointmentUpdated, rec.events[0].Type)
	assert.Equal(t, events.AppointmentUpdatedPayload{Fields: []string{"notes", "allergies"}}, rec.events[0].Payload)
}

func TestAppointmentService_UpdateDenied(t *testing.T) {
	c := newClinic(t)
	svc, _ := newAppointmentService(c, auth.ScopeAssigned)
	ctx := context.Background()
	appt := c.addAppointment(t, c.patientA, c.doctorA, time.Now(), "initial")
	notes := "changed"
	change := AppointmentUpdate{Notes: &notes}

	_, err := svc.Update(ctx, c.patientSession(c.patientA), appt.ID, change)
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	_, err = svc.Update(ctx, c.doctorSession(c.doctorB), appt.ID, change)
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	_, err = svc.Update(ctx, c.doctorSession(c.doctorA), 9999, change)
	assert.Equal(t, apperrors.CodeNotFound, codeOf(err))

	_, err = svc.Update(ctx, c.doctorSession(c.doctorA), appt.ID, AppointmentUpdate{})
	assert.Equal(t, apperrors.CodeMalformedRequest, codeOf(err))

	stored, err := c.repos.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "initial", stored.Notes)
}
