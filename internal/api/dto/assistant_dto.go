package dto

import "time"

// ChatMessage is one prior turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role" validate:"omitempty,oneof=user assistant system"`
	Content string `json:"content" validate:"max=8000"`
}

// ChatRequest payload for the assistant.
type ChatRequest struct {
	Message   string        `json:"message" validate:"required,max=4000"`
	PatientID int64         `json:"patient_id,omitempty" validate:"gte=0"`
	History   []ChatMessage `json:"history,omitempty" validate:"max=50,dive"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

// SummaryResponse is a generated patient summary.
type SummaryResponse struct {
	Summary      string                `json:"summary"`
	Source       string                `json:"source"`
	Model        string                `json:"model"`
	Cached       bool                  `json:"cached"`
	GeneratedAt  time.Time             `json:"generated_at"`
	Patient      PatientResponse       `json:"patient"`
	Appointments []AppointmentResponse `json:"appointments"`
}
