package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/cache"
	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/llm"
	"github.com/spec-kit/doctor-portal/internal/repository"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

// Summary sources reported to clients.
const (
	SourceLLM      = "llm"
	SourceTemplate = "template"
)

const maxChatHistory = 20

// AssistantService produces patient summaries and chat replies. The LLM is only
// called after the guard has allowed reading the target patient.
type AssistantService struct {
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
	guard        *auth.Guard
	llm          llm.Client
	cache        *cache.SummaryCache
	timeout      time.Duration
	logger       *zap.Logger
}

// AssistantDependencies bundles collaborators for AssistantService.
type AssistantDependencies struct {
	Patients     repository.PatientRepository
	Appointments repository.AppointmentRepository
	Guard        *auth.Guard
	LLM          llm.Client
	Cache        *cache.SummaryCache
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewAssistantService constructs the service. A nil LLM selects the template client.
func NewAssistantService(deps AssistantDependencies) *AssistantService {
	client := deps.LLM
	if client == nil {
		client = llm.NewTemplateClient()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{
		patients:     deps.Patients,
		appointments: deps.Appointments,
		guard:        deps.Guard,
		llm:          client,
		cache:        deps.Cache,
		timeout:      deps.Timeout,
		logger:       logger,
	}
}

// SummaryResult is a generated summary with its provenance.
type SummaryResult struct {
	Summary      string
	Source       string
	Model        string
	Cached       bool
	Patient      *domain.PatientProfile
	Appointments []domain.Appointment
}

// Summarize builds a summary of the patient's record.
func (s *AssistantService) Summarize(ctx context.Context, session *domain.Session, patientID int64) (*SummaryResult, error) {
	patient, err := loadAuthorizedPatient(ctx, s.guard, s.patients, session, auth.ActionReadPatient, patientID)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	model := s.llm.Model()
	result := &SummaryResult{
		Source:       s.source(),
		Model:        model,
		Patient:      patient,
		Appointments: appointments,
	}

	prompt := BuildSummaryPrompt(patient, appointments)
	key := cache.Key(model, prompt)
	if cached, ok := s.cache.Get(ctx, key); ok {
		result.Summary = cached
		result.Cached = true
		return result, nil
	}

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	summary, err := s.llm.Summarize(callCtx, prompt)
	if err == nil && strings.TrimSpace(summary) == "" {
		err = llm.ErrEmptyCompletion
	}
	if err != nil {
		s.logger.Error("summary generation failed", zap.Int64("patient_id", patient.ID), zap.String("model", model), zap.Error(err))
		return nil, apperrors.NewUpstreamFailure("failed to generate summary", err)
	}

	s.cache.Set(ctx, key, summary)
	result.Summary = summary
	return result, nil
}

// ChatInput is a chat turn with optional patient context.
type ChatInput struct {
	Message   string
	PatientID int64
	History   []llm.Message
}

// ChatResult is the assistant's reply.
type ChatResult struct {
	Reply  string
	Source string
}

// Chat answers a message. When PatientID is set the patient's record is supplied as
// context, subject to the same read rules as the record itself.
func (s *AssistantService) Chat(ctx context.Context, session *domain.Session, input ChatInput) (*ChatResult, error) {
	if err := s.guard.Authorize(session, auth.ActionChat, input.PatientID); err != nil {
		return nil, err
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewMalformedRequest("message is required")
	}

	system := chatSystemPrompt
	if input.PatientID != 0 {
		patient, err := loadAuthorizedPatient(ctx, s.guard, s.patients, session, auth.ActionChat, input.PatientID)
		if err != nil {
			return nil, err
		}
		appointments, err := s.appointments.ListByPatient(ctx, patient.ID)
		if err != nil {
			return nil, err
		}
		system += "\n\n" + llm.RecordHeader + renderRecord(patient, appointments)
	}

	messages := []llm.Message{{Role: "system", Content: system}}
	messages = append(messages, sanitizeHistory(input.History)...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	reply, err := s.llm.Chat(callCtx, messages)
	if err != nil {
		s.logger.Error("chat failed", zap.Int64("account_id", session.AccountID), zap.Error(err))
		return nil, apperrors.NewUpstreamFailure("failed to get chat response", err)
	}
	return &ChatResult{Reply: reply, Source: s.source()}, nil
}

func (s *AssistantService) source() string {
	if s.llm.Model() == llm.TemplateModel {
		return SourceTemplate
	}
	return SourceLLM
}

func (s *AssistantService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

const chatSystemPrompt = "You are a medical assistant helping clinicians and patients understand health records. " +
	"Give general guidance, flag anything that needs a clinician, and never present output as a diagnosis."

// BuildSummaryPrompt renders the summary request for a patient record. The record
// section has no blank lines so it can be located by llm.RecordHeader.
func BuildSummaryPrompt(patient *domain.PatientProfile, appointments []domain.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please provide a comprehensive medical summary for %s.\n\n", patient.FullName)
	b.WriteString(llm.RecordHeader)
	b.WriteString(renderRecord(patient, appointments))
	b.WriteString("\n\nPlease summarize:\n")
	b.WriteString("1. Key medical conditions and concerns\n")
	b.WriteString("2. Current medications and their purposes\n")
	b.WriteString("3. Known allergies and sensitivities\n")
	b.WriteString("4. Recent trends or patterns in health\n")
	b.WriteString("5. Recommendations for ongoing care\n\n")
	b.WriteString("Keep the summary professional, concise, and easy to understand.")
	return b.String()
}

func renderRecord(patient *domain.PatientProfile, appointments []domain.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", oneLine(patient.FullName))
	if !patient.DOB.IsZero() {
		fmt.Fprintf(&b, "DOB: %s\n", patient.DOB.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Appointments: %d", len(appointments))
	for _, apt := range appointments {
		fmt.Fprintf(&b, "\n- %s | %s (%s) | Notes: %s | Medications: %s | Allergies: %s",
			apt.Date.Format("2006-01-02"),
			oneLine(apt.DoctorName),
			oneLine(apt.Specialization),
			orNone(apt.Notes),
			orNone(apt.Medications),
			orNone(apt.Allergies),
		)
	}
	return b.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orNone(s string) string {
	if s = oneLine(s); s == "" {
		return "none"
	}
	return s
}

// sanitizeHistory keeps the latest turns and drops anything that is not a plain
// user or assistant message, so clients cannot inject system prompts.
func sanitizeHistory(history []llm.Message) []llm.Message {
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		out = append(out, llm.Message{Role: role, Content: content})
	}
	return out
}
