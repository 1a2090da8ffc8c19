package dto

import (
	"time"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

const dateLayout = "2006-01-02"

// PatientResponse is the public view of a patient profile.
type PatientResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	DOB      string `json:"dob,omitempty"`
	Email    string `json:"email"`
	DoctorID *int64 `json:"doctor_id,omitempty"`
}

// DoctorResponse is the public view of a doctor profile.
type DoctorResponse struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
}

// AppointmentResponse is the public view of an appointment.
type AppointmentResponse struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patient_id"`
	DoctorID       int64     `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes"`
	Medications    string    `json:"medications"`
	Allergies      string    `json:"allergies"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PaginationResponse describes the page returned alongside a listing.
type PaginationResponse struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

// PatientDetailResponse is a patient with their appointments.
type PatientDetailResponse struct {
	Patient      PatientResponse       `json:"patient"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// NewPatientResponse maps a patient profile.
func NewPatientResponse(p *domain.PatientProfile) PatientResponse {
	resp := PatientResponse{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		DoctorID: p.DoctorID,
	}
	if !p.DOB.IsZero() {
		resp.DOB = p.DOB.Format(dateLayout)
	}
	return resp
}

// NewPatientList maps patient profiles.
func NewPatientList(patients []domain.PatientProfile) []PatientResponse {
	out := make([]PatientResponse, 0, len(patients))
	for i := range patients {
		out = append(out, NewPatientResponse(&patients[i]))
	}
	return out
}

// NewDoctorList maps doctor profiles.
func NewDoctorList(doctors []domain.DoctorProfile) []DoctorResponse {
	out := make([]DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, DoctorResponse{ID: d.ID, FullName: d.FullName, Specialization: d.Specialization})
	}
	return out
}

// NewAppointmentResponse maps an appointment.
func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		DoctorID:       a.DoctorID,
		DoctorName:     a.DoctorName,
		Specialization: a.Specialization,
		Date:           a.Date,
		Notes:          a.Notes,
		Medications:    a.Medications,
		Allergies:      a.Allergies,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// NewAppointmentList maps appointments preserving order.
func NewAppointmentList(appointments []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		out = append(out, NewAppointmentResponse(&appointments[i]))
	}
	return out
}
