package domain

import "time"

// Appointment is a visit record authored by a doctor for a patient.
// Clinical fields are free text.
type Appointment struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	Date        time.Time
	Notes       string
	Medications string
	Allergies   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by joins on read paths.
	DoctorName     string
	Specialization string
}
