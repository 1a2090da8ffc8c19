package domain

import "time"

// Role tags an account as a doctor or a patient.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// Account is a login identity. Every account owns exactly one profile matching its role.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	CreatedAt    time.Time
}
