package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/config"
	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/repository"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

var (
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = apperrors.NewDomainError(apperrors.CodeMissingCredentials, "email and password are required", http.StatusBadRequest)
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperrors.NewDomainError(apperrors.CodeInvalidCredentials, "invalid credentials", http.StatusUnauthorized)

	errNoPatientProfile = apperrors.NewForbidden("account has no patient profile")
	errSessionStale     = apperrors.NewUnauthorized("unauthorized")
)

// Demo account credentials installed by SeedDemo.
const (
	DemoDoctorEmail  = "dr@demo.com"
	DemoPatientEmail = "pat@demo.com"
	DemoPassword     = "demo123"
)

// AuthService validates credentials, issues sessions and registers accounts.
type AuthService struct {
	accounts   repository.AccountRepository
	doctors    repository.DoctorRepository
	patients   repository.PatientRepository
	codec      auth.SessionCodec
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	Accounts repository.AccountRepository
	Doctors  repository.DoctorRepository
	Patients repository.PatientRepository
	Codec    auth.SessionCodec
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.Accounts,
		doctors:    deps.Doctors,
		patients:   deps.Patients,
		codec:      deps.Codec,
		bcryptCost: cfg.BcryptCost,
	}
}

// LoginResult is a freshly issued session and its encoded token.
type LoginResult struct {
	Session   domain.Session
	Token     string
	ExpiresAt time.Time
}

// Login checks the credentials and issues a session whose role and profile id are
// derived from the stored account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		auth.BurnComparison(password, s.bcryptCost)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.sessionFor(ctx, account)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.codec.Encode(*session)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: *session, Token: token, ExpiresAt: expiresAt}, nil
}

// Me re-reads the session's account. A session whose account is gone or whose role
// changed since login is treated as unauthenticated.
func (s *AuthService) Me(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil {
		return nil, errSessionStale
	}
	account, err := s.accounts.GetByID(ctx, session.AccountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errSessionStale
	}
	if err != nil {
		return nil, err
	}
	if account.Role != session.Role {
		return nil, errSessionStale
	}

	current := *session
	current.Email = account.Email
	if account.Name != "" {
		current.Name = account.Name
	}
	return &current, nil
}

// A doctor without a profile may still log in and read; the guard denies writes.
func (s *AuthService) sessionFor(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	session := &domain.Session{
		AccountID: account.ID,
		Role:      account.Role,
		Name:      account.Name,
		Email:     account.Email,
	}

	switch account.Role {
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByAccountID(ctx, account.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return session, nil
		}
		if err != nil {
			return nil, err
		}
		session.DoctorID = &doctor.ID
		if session.Name == "" {
			session.Name = doctor.FullName
		}
	case domain.RolePatient:
		patient, err := s.patients.GetByAccountID(ctx, account.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNoPatientProfile
		}
		if err != nil {
			return nil, err
		}
		session.PatientID = &patient.ID
		if session.Name == "" {
			session.Name = patient.FullName
		}
	default:
		return nil, fmt.Errorf("account %d has unknown role %q", account.ID, account.Role)
	}
	return session, nil
}

// RegisterInput describes a new account and its profile.
type RegisterInput struct {
	Role           domain.Role
	Email          string
	Password       string
	FullName       string
	Specialization string
	DOB            time.Time
	DoctorID       *int64
}

// Register creates an account together with the profile matching its role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.FullName)
	if email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewMalformedRequest("role must be doctor or patient")
	}
	if name == "" {
		return nil, apperrors.NewMalformedRequest("full name is required")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Name:         name,
	}

	switch input.Role {
	case domain.RoleDoctor:
		err = s.accounts.CreateDoctor(ctx, account, &domain.DoctorProfile{
			FullName:       name,
			Specialization: strings.TrimSpace(input.Specialization),
		})
	case domain.RolePatient:
		if input.DoctorID != nil {
			if _, lookupErr := s.doctors.GetByID(ctx, *input.DoctorID); lookupErr != nil {
				if errors.Is(lookupErr, pgx.ErrNoRows) {
					return nil, apperrors.NewNotFound("doctor")
				}
				return nil, lookupErr
			}
		}
		err = s.accounts.CreatePatient(ctx, account, &domain.PatientProfile{
			FullName: name,
			DOB:      input.DOB,
			DoctorID: input.DoctorID,
		})
	}
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, apperrors.NewConflict("email already registered")
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// SeedDemo installs the demo doctor and a patient assigned to them. Existing demo
// accounts are left untouched.
func (s *AuthService) SeedDemo(ctx context.Context) error {
	doctorAccount, err := s.Register(ctx, RegisterInput{
		Role:           domain.RoleDoctor,
		Email:          DemoDoctorEmail,
		Password:       DemoPassword,
		FullName:       "Dr. Demo",
		Specialization: "General Practice",
	})
	if err != nil && !isConflict(err) {
		return fmt.Errorf("seed demo doctor: %w", err)
	}
	if doctorAccount == nil {
		if doctorAccount, err = s.accounts.GetByEmail(ctx, DemoDoctorEmail); err != nil {
			return fmt.Errorf("load demo doctor: %w", err)
		}
	}
	doctor, err := s.doctors.GetByAccountID(ctx, doctorAccount.ID)
	if err != nil {
		return fmt.Errorf("load demo doctor profile: %w", err)
	}

	_, err = s.Register(ctx, RegisterInput{
		Role:     domain.RolePatient,
		Email:    DemoPatientEmail,
		Password: DemoPassword,
		FullName: "Pat Demo",
		DOB:      time.Date(1985, time.April, 12, 0, 0, 0, 0, time.UTC),
		DoctorID: &doctor.ID,
	})
	if err != nil && !isConflict(err) {
		return fmt.Errorf("seed demo patient: %w", err)
	}
	return nil
}

func isConflict(err error) bool {
	var domainErr *apperrors.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == apperrors.CodeConflict
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
