package domain

import "time"

// DoctorProfile extends a doctor account.
type DoctorProfile struct {
	ID             int64
	AccountID      int64
	FullName       string
	Specialization string
	CreatedAt      time.Time
}
