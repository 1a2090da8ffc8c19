package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// PatientFilter narrows patient listings. A nil DoctorID lists every patient; a
// non-positive Limit returns every row after Offset.
type PatientFilter struct {
	DoctorID *int64
	Limit    int
	Offset   int
}

// PatientRepository handles persistence for patient profiles.
type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PatientProfile, error)
	GetByAccountID(ctx context.Context, accountID int64) (*domain.PatientProfile, error)
	List(ctx context.Context, filter PatientFilter) ([]domain.PatientProfile, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository instantiates the repository.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

const patientSelect = `
        SELECT p.id, p.account_id, p.full_name, p.dob, p.doctor_id, a.email, p.created_at
        FROM patients p
        JOIN accounts a ON a.id = p.account_id`

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*domain.PatientProfile, error) {
	return scanPatient(r.pool.QueryRow(ctx, patientSelect+` WHERE p.id=$1`, id))
}

func (r *patientRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.PatientProfile, error) {
	return scanPatient(r.pool.QueryRow(ctx, patientSelect+` WHERE p.account_id=$1`, accountID))
}

func (r *patientRepository) List(ctx context.Context, filter PatientFilter) ([]domain.PatientProfile, error) {
	query := patientSelect
	args := []any{}
	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		query += fmt.Sprintf(" WHERE p.doctor_id=$%d", len(args))
	}
	query += " ORDER BY p.full_name, p.id"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.PatientProfile{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *patient)
	}
	return result, rows.Err()
}

func scanPatient(row pgx.Row) (*domain.PatientProfile, error) {
	var (
		patient domain.PatientProfile
		dob     *time.Time
	)
	if err := row.Scan(
		&patient.ID,
		&patient.AccountID,
		&patient.FullName,
		&dob,
		&patient.DoctorID,
		&patient.Email,
		&patient.CreatedAt,
	); err != nil {
		return nil, err
	}
	if dob != nil {
		patient.DOB = *dob
	}
	return &patient, nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
