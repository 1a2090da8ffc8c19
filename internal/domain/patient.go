package domain

import "time"

// PatientProfile extends a patient account. DoctorID is the assigned doctor, if any.
type PatientProfile struct {
	ID        int64
	AccountID int64
	FullName  string
	DOB       time.Time
	DoctorID  *int64
	Email     string
	CreatedAt time.Time
}

// AssignedTo reports whether the patient is assigned to the given doctor profile.
func (p *PatientProfile) AssignedTo(doctorID int64) bool {
	return p.DoctorID != nil && *p.DoctorID == doctorID
}
