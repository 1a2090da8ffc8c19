package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository the services depend on.
type Repositories struct {
	Accounts     AccountRepository
	Doctors      DoctorRepository
	Patients     PatientRepository
	Appointments AppointmentRepository
}

// NewRepositories returns Postgres-backed repositories, or in-memory ones when pool is nil.
func NewRepositories(pool *pgxpool.Pool) Repositories {
	if pool == nil {
		return NewMemoryStore().Repositories()
	}
	return Repositories{
		Accounts:     NewAccountRepository(pool),
		Doctors:      NewDoctorRepository(pool),
		Patients:     NewPatientRepository(pool),
		Appointments: NewAppointmentRepository(pool),
	}
}

// Repositories returns all views of the store.
func (m *MemoryStore) Repositories() Repositories {
	return Repositories{
		Accounts:     m.Accounts(),
		Doctors:      m.Doctors(),
		Patients:     m.Patients(),
		Appointments: m.Appointments(),
	}
}
