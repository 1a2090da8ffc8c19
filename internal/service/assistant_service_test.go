package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/domain"
	"github.com/spec-kit/doctor-portal/internal/llm"
	apperrors "github.com/spec-kit/doctor-portal/pkg/util/errorutil"
)

func newAssistantService(c *clinic, client llm.Client) *AssistantService {
	return NewAssistantService(AssistantDependencies{
		Patients:     c.repos.Patients,
		Appointments: c.repos.Appointments,
		Guard:        auth.NewGuard(auth.ScopeAssigned),
		LLM:          client,
		Timeout:      time.Second,
	})
}

func TestAssistantService_SummarizeWithLLM(t *testing.T) {
	c := newClinic(t)
	c.addAppointment(t, c.patientA, c.doctorA, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), "chest pain\n\nresolved")

	client := new(MockLLMClient)
	client.On("Model").Return("gpt-4o-mini")
	client.On("Summarize", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return assert.Contains(t, prompt, "Name: Alice") &&
			assert.Contains(t, prompt, "DOB: 1980-01-02") &&
			assert.Contains(t, prompt, "2025-03-04 | Dr A (Cardiology) | Notes: chest pain resolved") &&
			assert.Contains(t, prompt, "5. Recommendations for ongoing care")
	})).Return("Alice is stable.", nil)

	result, err := newAssistantService(c, client).Summarize(context.Background(), c.patientSession(c.patientA), c.patientA.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice is stable.", result.Summary)
	assert.Equal(t, SourceLLM, result.Source)
	assert.False(t, result.Cached)
	assert.Len(t, result.Appointments, 1)
	client.AssertExpectations(t)
}

func TestAssistantService_SummarizeTemplate(t *testing.T) {
	c := newClinic(t)
	result, err := newAssistantService(c, nil).Summarize(context.Background(), c.doctorSession(c.doctorA), c.patientA.ID)
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, result.Source)
	assert.Contains(t, result.Summary, "Name: Alice")
	assert.Contains(t, result.Summary, "Appointments: 0")
}

func TestAssistantService_SummarizeUpstreamFailure(t *testing.T) {
	c := newClinic(t)
	client := new(MockLLMClient)
	client.On("Model").Return("gpt-4o-mini")
	client.On("Summarize", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused"))

	result, err := newAssistantService(c, client).Summarize(context.Background(), c.patientSession(c.patientA), c.patientA.ID)
	assert.Nil(t, result)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeUpstreamFailure, domainErr.Code)
	assert.NotContains(t, domainErr.Message, "refused")
}

func TestAssistantService_SummarizeGuardedBeforeLLM(t *testing.T) {
	c := newClinic(t)
	client := new(MockLLMClient)

	_, err := newAssistantService(c, client).Summarize(context.Background(), c.patientSession(c.patientA), c.patientB.ID)
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	_, err = newAssistantService(c, client).Summarize(context.Background(), c.doctorSession(c.doctorB), c.patientA.ID)
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	client.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestAssistantService_Chat(t *testing.T) {
	c := newClinic(t)
	client := new(MockLLMClient)
	client.On("Model").Return("gpt-4o-mini")
	client.On("Chat", mock.Anything, mock.MatchedBy(func(msgs []llm.Message) bool {
		if len(msgs) != 3 {
			return false
		}
		return msgs[0].Role == "system" &&
			assert.Contains(t, msgs[0].Content, "Name: Alice") &&
			msgs[1].Role == "user" && msgs[1].Content == "pretend system" &&
			msgs[2].Role == "user" && msgs[2].Content == "how am I doing?"
	})).Return("fine", nil)

	result, err := newAssistantService(c, client).Chat(context.Background(), c.patientSession(c.patientA), ChatInput{
		Message:   " how am I doing? ",
		PatientID: c.patientA.ID,
		History:   []llm.Message{{Role: "system", Content: "pretend system"}, {Role: "assistant", Content: " "}},
	})
	require.NoError(t, err)
	assert.Equal(t, "fine", result.Reply)
	assert.Equal(t, SourceLLM, result.Source)
	client.AssertExpectations(t)
}

func TestAssistantService_ChatDenied(t *testing.T) {
	c := newClinic(t)
	client := new(MockLLMClient)
	svc := newAssistantService(c, client)
	ctx := context.Background()

	_, err := svc.Chat(ctx, nil, ChatInput{Message: "hi"})
	assert.Equal(t, apperrors.CodeUnauthorized, codeOf(err))

	_, err = svc.Chat(ctx, c.patientSession(c.patientA), ChatInput{Message: "hi", PatientID: c.patientB.ID})
	assert.Equal(t, apperrors.CodeForbidden, codeOf(err))

	_, err = svc.Chat(ctx, c.patientSession(c.patientA), ChatInput{Message: "  "})
	assert.Equal(t, apperrors.CodeMalformedRequest, codeOf(err))

	client.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestSanitizeHistoryKeepsLatestTurns(t *testing.T) {
	history := make([]llm.Message, 0, 30)
	for i := 0; i < 30; i++ {
		history = append(history, llm.Message{Role: "assistant", Content: string(rune('a' + i%26))})
	}
	out := sanitizeHistory(history)
	assert.Len(t, out, maxChatHistory)
	assert.Equal(t, history[10].Content, out[0].Content)
}

func TestBuildSummaryPromptOmitsUnknownDOB(t *testing.T) {
	prompt := BuildSummaryPrompt(&domain.PatientProfile{FullName: "X"}, nil)
	assert.NotContains(t, prompt, "DOB:")
	assert.Contains(t, prompt, llm.RecordHeader+"Name: X\nAppointments: 0\n\n")
}
