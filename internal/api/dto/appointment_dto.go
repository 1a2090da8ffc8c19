package dto

import (
	"time"

	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

// CreateAppointmentRequest payload for new appointments. DoctorID is accepted for
// client compatibility and ignored: the author is always the session's doctor.
type CreateAppointmentRequest struct {
	PatientID   int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID    *int64 `json:"doctor_id,omitempty"`
	Date        string `json:"date" validate:"required"`
	Notes       string `json:"notes" validate:"max=10000"`
	Medications string `json:"medications" validate:"max=4000"`
	Allergies   string `json:"allergies" validate:"max=4000"`
}

// UpdateAppointmentRequest payload for partial updates. Absent fields are unchanged.
type UpdateAppointmentRequest struct {
	Date        *string `json:"date,omitempty"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=10000"`
	Medications *string `json:"medications,omitempty" validate:"omitempty,max=4000"`
	Allergies   *string `json:"allergies,omitempty" validate:"omitempty,max=4000"`
}

// ParseDate accepts RFC 3339 timestamps and plain dates.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewMalformedRequest("date must be YYYY-MM-DD or RFC 3339")
}
