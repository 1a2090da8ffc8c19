package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	// Update rewrites the clinical fields only. Patient and author never change.
	Update(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// ListByPatient returns appointments newest first with the author's name attached.
	ListByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentSelect = `
        SELECT a.id, a.patient_id, a.doctor_id, a.date, a.notes, a.medications, a.allergies,
               a.created_at, a.updated_at, d.full_name, d.specialization
        FROM appointments a
        JOIN doctors d ON d.id = a.doctor_id`

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, doctor_id, date, notes, medications, allergies)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Notes,
		appointment.Medications,
		appointment.Allergies,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        UPDATE appointments SET date=$1, notes=$2, medications=$3, allergies=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		appointment.Date,
		appointment.Notes,
		appointment.Medications,
		appointment.Allergies,
		appointment.ID,
	).Scan(&appointment.UpdatedAt)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, appointmentSelect+` WHERE a.id=$1`, id))
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, appointmentSelect+` WHERE a.patient_id=$1 ORDER BY a.date DESC, a.id DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *appointment)
	}
	return result, rows.Err()
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	if err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.Date,
		&appointment.Notes,
		&appointment.Medications,
		&appointment.Allergies,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.DoctorName,
		&appointment.Specialization,
	); err != nil {
		return nil, err
	}
	return &appointment, nil
}
