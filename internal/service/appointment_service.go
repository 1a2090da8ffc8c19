package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/events"
	"github.com/spec-kit/doctor-portal/internal/repository"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

// AppointmentService handles doctor-authored appointment writes.
type AppointmentService struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	guard        *auth.Guard
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// AppointmentDependencies bundles collaborators for AppointmentService.
type AppointmentDependencies struct {
	Patients     repository.PatientRepository
	Appointments repository.AppointmentRepository
	Guard        *auth.Guard
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		patients:     deps.Patients,
		appointments: deps.Appointments,
		guard:        deps.Guard,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// AppointmentInput carries the fields of a new appointment. There is no author field:
// the author is always the calling doctor.
type AppointmentInput struct {
	PatientID   int64
	Date        time.Time
	Notes       string
	Medications string
	Allergies   string
}

// AppointmentUpdate holds optional replacements for the clinical fields.
type AppointmentUpdate struct {
	Date        *time.Time
	Notes       *string
	Medications *string
	Allergies   *string
}

func (u AppointmentUpdate) fields() []string {
	var fields []string
	if u.Date != nil {
		fields = append(fields, "date")
	}
	if u.Notes != nil {
		fields = append(fields, "notes")
	}
	if u.Medications != nil {
		fields = append(fields, "medications")
	}
	if u.Allergies != nil {
		fields = append(fields, "allergies")
	}
	return fields
}

// Create records an appointment authored by the session's doctor profile.
func (s *AppointmentService) Create(ctx context.Context, session *domain.Session, input AppointmentInput) (*domain.Appointment, error) {
	patient, err := loadAuthorizedPatient(ctx, s.guard, s.patients, session, auth.ActionCreateAppointment, input.PatientID)
	if err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewMalformedRequest("date is required")
	}

	appointment := &domain.Appointment{
		PatientID:   patient.ID,
		DoctorID:    *session.DoctorID,
		Date:        input.Date.UTC(),
		Notes:       strings.TrimSpace(input.Notes),
		Medications: strings.TrimSpace(input.Medications),
		Allergies:   strings.TrimSpace(input.Allergies),
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewEvent(events.EventAppointmentCreated, appointment.ID, patient.ID, doctorActor(session),
		events.AppointmentCreatedPayload{Date: appointment.Date}))
	return s.reload(ctx, appointment)
}

// Update rewrites the given clinical fields. Patient and author stay as recorded.
func (s *AppointmentService) Update(ctx context.Context, session *domain.Session, appointmentID int64, update AppointmentUpdate) (*domain.Appointment, error) {
	if err := s.guard.Authorize(session, auth.ActionUpdateAppointment, 0); err != nil {
		return nil, err
	}
	fields := update.fields()
	if len(fields) == 0 {
		return nil, apperrors.NewMalformedRequest("no fields to update")
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("appointment")
	}
	if err != nil {
		return nil, err
	}
	if _, err := loadAuthorizedPatient(ctx, s.guard, s.patients, session, auth.ActionUpdateAppointment, appointment.PatientID); err != nil {
		return nil, err
	}

	if update.Date != nil {
		if update.Date.IsZero() {
			return nil, apperrors.NewMalformedRequest("date cannot be empty")
		}
		appointment.Date = update.Date.UTC()
	}
	if update.Notes != nil {
		appointment.Notes = strings.TrimSpace(*update.Notes)
	}
	if update.Medications != nil {
		appointment.Medications = strings.TrimSpace(*update.Medications)
	}
	if update.Allergies != nil {
		appointment.Allergies = strings.TrimSpace(*update.Allergies)
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.NewEvent(events.EventAppointmentUpdated, appointment.ID, appointment.PatientID, doctorActor(session),
		events.AppointmentUpdatedPayload{Fields: fields}))
	return s.reload(ctx, appointment)
}

// reload fetches the joined read model; on failure the written row is returned as is.
func (s *AppointmentService) reload(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	stored, err := s.appointments.GetByID(ctx, appointment.ID)
	if err != nil {
		s.logger.Warn("reload appointment failed", zap.Int64("appointment_id", appointment.ID), zap.Error(err))
		return appointment, nil
	}
	return stored, nil
}

func (s *AppointmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func doctorActor(session *domain.Session) events.Actor {
	actor := events.Actor{AccountID: session.AccountID}
	if session.DoctorID != nil {
		actor.DoctorID = *session.DoctorID
	}
	return actor
}
