package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// memoryState backs every in-memory repository. Missing rows surface as pgx.ErrNoRows
// so callers map errors the same way for both backends.
type memoryState struct {
	mu sync.RWMutex

	accounts     map[int64]domain.Account
	doctors      map[int64]domain.DoctorProfile
	patients     map[int64]domain.PatientProfile
	appointments map[int64]domain.Appointment

	seq int64
}

func (s *memoryState) nextID() int64 {
	s.seq++
	return s.seq
}

// MemoryStore keeps all records in process memory. It is used when no database is
// configured and in tests.
type MemoryStore struct {
	state *memoryState
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memoryState{
		accounts:     map[int64]domain.Account{},
		doctors:      map[int64]domain.DoctorProfile{},
		patients:     map[int64]domain.PatientProfile{},
		appointments: map[int64]domain.Appointment{},
	}}
}

// Accounts returns the account repository view of the store.
func (m *MemoryStore) Accounts() AccountRepository { return &memoryAccounts{m.state} }

// Doctors returns the doctor repository view of the store.
func (m *MemoryStore) Doctors() DoctorRepository { return &memoryDoctors{m.state} }

// Patients returns the patient repository view of the store.
func (m *MemoryStore) Patients() PatientRepository { return &memoryPatients{m.state} }

// Appointments returns the appointment repository view of the store.
func (m *MemoryStore) Appointments() AppointmentRepository { return &memoryAppointments{m.state} }

type memoryAccounts struct{ s *memoryState }

func (r *memoryAccounts) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	account, ok := r.s.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (r *memoryAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, account := range r.s.accounts {
		if account.Email == email {
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryAccounts) insert(account *domain.Account) error {
	for _, existing := range r.s.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return ErrEmailTaken
		}
	}
	account.ID = r.s.nextID()
	account.CreatedAt = time.Now().UTC()
	r.s.accounts[account.ID] = *account
	return nil
}

func (r *memoryAccounts) CreateDoctor(_ context.Context, account *domain.Account, profile *domain.DoctorProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.insert(account); err != nil {
		return err
	}
	profile.ID = r.s.nextID()
	profile.AccountID = account.ID
	profile.CreatedAt = account.CreatedAt
	r.s.doctors[profile.ID] = *profile
	return nil
}

func (r *memoryAccounts) CreatePatient(_ context.Context, account *domain.Account, profile *domain.PatientProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if profile.DoctorID != nil {
		if _, ok := r.s.doctors[*profile.DoctorID]; !ok {
			return pgx.ErrNoRows
		}
	}
	if err := r.insert(account); err != nil {
		return err
	}
	profile.ID = r.s.nextID()
	profile.AccountID = account.ID
	profile.Email = account.Email
	profile.CreatedAt = account.CreatedAt
	r.s.patients[profile.ID] = *profile
	return nil
}

type memoryDoctors struct{ s *memoryState }

func (r *memoryDoctors) GetByID(_ context.Context, id int64) (*domain.DoctorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	doctor, ok := r.s.doctors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &doctor, nil
}

func (r *memoryDoctors) GetByAccountID(_ context.Context, accountID int64) (*domain.DoctorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, doctor := range r.s.doctors {
		if doctor.AccountID == accountID {
			return &doctor, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryDoctors) List(_ context.Context) ([]domain.DoctorProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]domain.DoctorProfile, 0, len(r.s.doctors))
	for _, doctor := range r.s.doctors {
		result = append(result, doctor)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

type memoryPatients struct{ s *memoryState }

func (r *memoryPatients) GetByID(_ context.Context, id int64) (*domain.PatientProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	patient, ok := r.s.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyPatient(patient), nil
}

func (r *memoryPatients) GetByAccountID(_ context.Context, accountID int64) (*domain.PatientProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, patient := range r.s.patients {
		if patient.AccountID == accountID {
			return copyPatient(patient), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryPatients) List(_ context.Context, filter PatientFilter) ([]domain.PatientProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.PatientProfile{}
	for _, patient := range r.s.patients {
		if filter.DoctorID != nil && !patient.AssignedTo(*filter.DoctorID) {
			continue
		}
		result = append(result, *copyPatient(patient))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].ID < result[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []domain.PatientProfile{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func copyPatient(p domain.PatientProfile) *domain.PatientProfile {
	if p.DoctorID != nil {
		id := *p.DoctorID
		p.DoctorID = &id
	}
	return &p
}

type memoryAppointments struct{ s *memoryState }

func (r *memoryAppointments) Create(_ context.Context, appointment *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[appointment.PatientID]; !ok {
		return pgx.ErrNoRows
	}
	if _, ok := r.s.doctors[appointment.DoctorID]; !ok {
		return pgx.ErrNoRows
	}
	now := time.Now().UTC()
	appointment.ID = r.s.nextID()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	stored := *appointment
	stored.DoctorName, stored.Specialization = "", ""
	r.s.appointments[appointment.ID] = stored
	return nil
}

func (r *memoryAppointments) Update(_ context.Context, appointment *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.appointments[appointment.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Date = appointment.Date
	stored.Notes = appointment.Notes
	stored.Medications = appointment.Medications
	stored.Allergies = appointment.Allergies
	stored.UpdatedAt = time.Now().UTC()
	r.s.appointments[stored.ID] = stored
	appointment.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memoryAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	appointment, ok := r.s.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.withDoctor(&appointment)
	return &appointment, nil
}

func (r *memoryAppointments) ListByPatient(_ context.Context, patientID int64) ([]domain.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := []domain.Appointment{}
	for _, appointment := range r.s.appointments {
		if appointment.PatientID != patientID {
			continue
		}
		r.withDoctor(&appointment)
		result = append(result, appointment)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *memoryAppointments) withDoctor(appointment *domain.Appointment) {
	if doctor, ok := r.s.doctors[appointment.DoctorID]; ok {
		appointment.DoctorName = doctor.FullName
		appointment.Specialization = doctor.Specialization
	}
}
