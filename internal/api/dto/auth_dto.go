package dto

import (
	"time"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// LoginRequest payload for login. Emptiness is reported as missing credentials by the
// auth service, so fields are not marked required here.
type LoginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=128"`
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	AccountID int64       `json:"account_id"`
	Role      domain.Role `json:"role"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	PatientID *int64      `json:"patient_id,omitempty"`
	DoctorID  *int64      `json:"doctor_id,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

// NewSessionResponse maps a session claim set.
func NewSessionResponse(session *domain.Session) SessionResponse {
	return SessionResponse{
		AccountID: session.AccountID,
		Role:      session.Role,
		Name:      session.Name,
		Email:     session.Email,
		PatientID: session.PatientID,
		DoctorID:  session.DoctorID,
	}
}
