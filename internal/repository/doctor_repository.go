package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// DoctorRepository handles persistence for doctor profiles.
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error)
	GetByAccountID(ctx context.Context, accountID int64) (*domain.DoctorProfile, error)
	List(ctx context.Context) ([]domain.DoctorProfile, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository instantiates the repository.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

const doctorColumns = `id, account_id, full_name, specialization, created_at`

func (r *doctorRepository) GetByID(ctx context.Context, id int64) (*domain.DoctorProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE id=$1`, id)
}

func (r *doctorRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.DoctorProfile, error) {
	return r.fetchSingle(ctx, `SELECT `+doctorColumns+` FROM doctors WHERE account_id=$1`, accountID)
}

func (r *doctorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.DoctorProfile, error) {
	var doctor domain.DoctorProfile
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&doctor.ID,
		&doctor.AccountID,
		&doctor.FullName,
		&doctor.Specialization,
		&doctor.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]domain.DoctorProfile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY full_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.DoctorProfile{}
	for rows.Next() {
		var doctor domain.DoctorProfile
		if err := rows.Scan(
			&doctor.ID,
			&doctor.AccountID,
			&doctor.FullName,
			&doctor.Specialization,
			&doctor.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, doctor)
	}
	return result, rows.Err()
}
