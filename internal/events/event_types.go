package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentCreated EventType = "appointment_created"
	EventAppointmentUpdated EventType = "appointment_updated"
)

// Actor identifies the doctor account behind an event.
type Actor struct {
	AccountID int64 `json:"account_id"`
	DoctorID  int64 `json:"doctor_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	AppointmentID int64       `json:"appointment_id"`
	PatientID     int64       `json:"patient_id"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, appointmentID, patientID int64, actor Actor, payload interface{}) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		AppointmentID: appointmentID,
		PatientID:     patientID,
		Actor:         actor,
		Timestamp:     time.Now().UTC(),
		Payload:       payload,
	}
}

// AppointmentCreatedPayload payload.
type AppointmentCreatedPayload struct {
	Date time.Time `json:"date"`
}

// AppointmentUpdatedPayload lists which clinical fields changed.
type AppointmentUpdatedPayload struct {
	Fields []string `json:"fields"`
}
