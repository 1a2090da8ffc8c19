package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/repository"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

// PatientService serves guarded reads over patients, their appointments and doctors.
type PatientService struct {
	patients     repository.PatientRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	guard        *auth.Guard
}

// PatientDependencies bundles collaborators for PatientService.
type PatientDependencies struct {
	Patients     repository.PatientRepository
	Doctors      repository.DoctorRepository
	Appointments repository.AppointmentRepository
	Guard        *auth.Guard
}

// NewPatientService constructs the service.
func NewPatientService(deps PatientDependencies) *PatientService {
	return &PatientService{
		patients:     deps.Patients,
		doctors:      deps.Doctors,
		appointments: deps.Appointments,
		guard:        deps.Guard,
	}
}

// Patient list paging bounds.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// PageRequest selects one page of a listing. Zero values mean the first page at
// DefaultPageSize.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) normalize() (PageRequest, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page < 1 {
		return p, apperrors.NewMalformedRequest("page must be a positive integer")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return p, apperrors.NewMalformedRequest(fmt.Sprintf("page_size must be between 1 and %d", MaxPageSize))
	}
	return p, nil
}

// PatientPage is one page of the patients visible to a session.
type PatientPage struct {
	Patients []domain.PatientProfile
	Page     int
	PageSize int
	HasMore  bool
}

// ListPatients returns one page of the patients visible to a doctor session.
func (s *PatientService) ListPatients(ctx context.Context, session *domain.Session, page PageRequest) (*PatientPage, error) {
	if err := s.guard.Authorize(session, auth.ActionListPatients, 0); err != nil {
		return nil, err
	}
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	// One extra row tells whether another page follows.
	patients, err := s.patients.List(ctx, repository.PatientFilter{
		DoctorID: s.guard.ListScope(session),
		Limit:    page.PageSize + 1,
		Offset:   (page.Page - 1) * page.PageSize,
	})
	if err != nil {
		return nil, err
	}

	result := &PatientPage{Page: page.Page, PageSize: page.PageSize}
	if len(patients) > page.PageSize {
		patients = patients[:page.PageSize]
		result.HasMore = true
	}
	result.Patients = patients
	return result, nil
}

// GetPatient returns the patient with their appointments, newest first.
func (s *PatientService) GetPatient(ctx context.Context, session *domain.Session, patientID int64) (*domain.PatientProfile, []domain.Appointment, error) {
	patient, err := loadAuthorizedPatient(ctx, s.guard, s.patients, session, auth.ActionReadPatient, patientID)
	if err != nil {
		return nil, nil, err
	}
	appointments, err := s.appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, nil, err
	}
	return patient, appointments, nil
}

// ListAppointments returns a patient's appointments, newest first.
func (s *PatientService) ListAppointments(ctx context.Context, session *domain.Session, patientID int64) ([]domain.Appointment, error) {
	_, appointments, err := s.GetPatient(ctx, session, patientID)
	return appointments, err
}

// ListDoctors returns every doctor profile.
func (s *PatientService) ListDoctors(ctx context.Context, session *domain.Session) ([]domain.DoctorProfile, error) {
	if err := s.guard.Authorize(session, auth.ActionListDoctors, 0); err != nil {
		return nil, err
	}
	return s.doctors.List(ctx)
}

// loadAuthorizedPatient checks identity before the lookup and scope after it, so a
// patient session never learns whether another patient id exists.
func loadAuthorizedPatient(ctx context.Context, guard *auth.Guard, patients repository.PatientRepository, session *domain.Session, action auth.Action, patientID int64) (*domain.PatientProfile, error) {
	if err := guard.Authorize(session, action, patientID); err != nil {
		return nil, err
	}
	patient, err := patients.GetByID(ctx, patientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("patient")
	}
	if err != nil {
		return nil, err
	}
	if err := guard.AuthorizePatient(session, action, patient); err != nil {
		return nil, err
	}
	return patient, nil
}
