package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// ErrEmailTaken is returned when an account with the same email already exists.
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

// AccountRepository defines persistence access for login identities. Creating an
// account always creates the matching profile in the same transaction.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	CreateDoctor(ctx context.Context, account *domain.Account, profile *domain.DoctorProfile) error
	CreatePatient(ctx context.Context, account *domain.Account, profile *domain.PatientProfile) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, role, name, created_at
        FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, role, name, created_at
        FROM accounts WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.Name,
		&account.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) CreateDoctor(ctx context.Context, account *domain.Account, profile *domain.DoctorProfile) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}
		const query = `
            INSERT INTO doctors (account_id, full_name, specialization)
            VALUES ($1,$2,$3)
            RETURNING id, created_at`
		profile.AccountID = account.ID
		return tx.QueryRow(ctx, query,
			profile.AccountID,
			profile.FullName,
			profile.Specialization,
		).Scan(&profile.ID, &profile.CreatedAt)
	})
}

func (r *accountRepository) CreatePatient(ctx context.Context, account *domain.Account, profile *domain.PatientProfile) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := insertAccount(ctx, tx, account); err != nil {
			return err
		}
		const query = `
            INSERT INTO patients (account_id, full_name, dob, doctor_id)
            VALUES ($1,$2,$3,$4)
            RETURNING id, created_at`
		profile.AccountID = account.ID
		profile.Email = account.Email
		return tx.QueryRow(ctx, query,
			profile.AccountID,
			profile.FullName,
			nullableDate(profile.DOB),
			profile.DoctorID,
		).Scan(&profile.ID, &profile.CreatedAt)
	})
}

func (r *accountRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return tx.Commit(ctx)
}

func insertAccount(ctx context.Context, tx pgx.Tx, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, password_hash, role, name)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.Name,
	).Scan(&account.ID, &account.CreatedAt)
}
