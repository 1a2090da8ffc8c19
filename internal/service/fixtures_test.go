package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/repository"
)

// clinic is a seeded in-memory store: two doctors, each with one assigned patient, and
// one unassigned patient.
type clinic struct {
	repos      repository.Repositories
	doctorA    *domain.DoctorProfile
	doctorB    *domain.DoctorProfile
	patientA   *domain.PatientProfile
	patientB   *domain.PatientProfile
	unassigned *domain.PatientProfile
}

func newClinic(t *testing.T) *clinic {
	t.Helper()
	ctx := context.Background()
	c := &clinic{repos: repository.NewMemoryStore().Repositories()}

	c.doctorA = &domain.DoctorProfile{FullName: "Dr A", Specialization: "Cardiology"}
	require.NoError(t, c.repos.Accounts.CreateDoctor(ctx, &domain.Account{Email: "a@doc.test", Role: domain.RoleDoctor}, c.doctorA))
	c.doctorB = &domain.DoctorProfile{FullName: "Dr B", Specialization: "Dermatology"}
	require.NoError(t, c.repos.Accounts.CreateDoctor(ctx, &domain.Account{Email: "b@doc.test", Role: domain.RoleDoctor}, c.doctorB))

	c.patientA = &domain.PatientProfile{FullName: "Alice", DoctorID: &c.doctorA.ID, DOB: time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, c.repos.Accounts.CreatePatient(ctx, &domain.Account{Email: "alice@pat.test", Role: domain.RolePatient}, c.patientA))
	c.patientB = &domain.PatientProfile{FullName: "Bob", DoctorID: &c.doctorB.ID}
	require.NoError(t, c.repos.Accounts.CreatePatient(ctx, &domain.Account{Email: "bob@pat.test", Role: domain.RolePatient}, c.patientB))
	c.unassigned = &domain.PatientProfile{FullName: "Carol"}
	require.NoError(t, c.repos.Accounts.CreatePatient(ctx, &domain.Account{Email: "carol@pat.test", Role: domain.RolePatient}, c.unassigned))
	return c
}

func (c *clinic) doctorSession(d *domain.DoctorProfile) *domain.Session {
	return &domain.Session{AccountID: d.AccountID, Role: domain.RoleDoctor, DoctorID: int64Ptr(d.ID), Name: d.FullName}
}

func (c *clinic) patientSession(p *domain.PatientProfile) *domain.Session {
	return &domain.Session{AccountID: p.AccountID, Role: domain.RolePatient, PatientID: int64Ptr(p.ID), Name: p.FullName}
}

func (c *clinic) addAppointment(t *testing.T, patient *domain.PatientProfile, doctor *domain.DoctorProfile, date time.Time, notes string) *domain.Appointment {
	t.Helper()
	appt := &domain.Appointment{PatientID: patient.ID, DoctorID: doctor.ID, Date: date, Notes: notes}
	require.NoError(t, c.repos.Appointments.Create(context.Background(), appt))
	return appt
}
