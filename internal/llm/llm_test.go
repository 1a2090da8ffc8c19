package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/doctor-portal/internal/config"
)

type capturedRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

func newCompletionServer(t *testing.T, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		choices := []map[string]any{}
		if reply != "" {
			choices = append(choices, map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": reply},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "cmpl-1", "object": "chat.completion", "choices": choices})
	}))
}

func TestNewOpenAIClientWithoutKey(t *testing.T) {
	assert.Nil(t, NewOpenAIClient(config.LLMConfig{}))
}

func TestOpenAIClientSummarize(t *testing.T) {
	var captured capturedRequest
	srv := newCompletionServer(t, "  Stable patient.  ", &captured)
	defer srv.Close()

	client := NewOpenAIClient(config.LLMConfig{
		APIKey: "test-key", BaseURL: srv.URL + "/", ChatModel: "chat-m", SummaryModel: "sum-m", MaxTokens: 1000,
	})
	require.NotNil(t, client)
	assert.Equal(t, "sum-m", client.Model())

	out, err := client.Summarize(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "Stable patient.", out)
	assert.Equal(t, "sum-m", captured.Model)
	assert.Equal(t, 1000, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "the prompt", captured.Messages[1].Content)
}

func TestOpenAIClientChatCoercesRoles(t *testing.T) {
	var captured capturedRequest
	srv := newCompletionServer(t, "hello", &captured)
	defer srv.Close()

	client := NewOpenAIClient(config.LLMConfig{APIKey: "test-key", BaseURL: srv.URL, ChatModel: "chat-m"})
	out, err := client.Chat(context.Background(), []Message{
		{Role: "system", Content: "ctx"},
		{Role: "tool", Content: "odd"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, "chat-m", captured.Model)
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestOpenAIClientEmptyCompletion(t *testing.T) {
	var captured capturedRequest
	srv := newCompletionServer(t, "", &captured)
	defer srv.Close()

	client := NewOpenAIClient(config.LLMConfig{APIKey: "test-key", BaseURL: srv.URL, ChatModel: "m"})
	_, err := client.Summarize(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestTemplateClientChat(t *testing.T) {
	client := NewTemplateClient()
	tests := map[string]string{
		"What treatment do you suggest?": cannedReplies[1].text,
		"new SYMPTOM appeared":           cannedReplies[0].text,
		"hello there":                    defaultReply,
	}
	for msg, want := range tests {
		got, err := client.Chat(context.Background(), []Message{
			{Role: "assistant", Content: "earlier diagnosis talk"},
			{Role: "user", Content: msg},
		})
		require.NoError(t, err)
		assert.Equal(t, want, got, msg)
	}
}

func TestTemplateClientSummarize(t *testing.T) {
	prompt := "Intro line\n\n" + RecordHeader + "Name: Pat\nVisits: 2\n\nPlease provide:\n1. Overview"
	out, err := NewTemplateClient().Summarize(context.Background(), prompt)
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Pat\nVisits: 2")
	assert.NotContains(t, out, "Please provide")
	assert.Equal(t, TemplateModel, NewTemplateClient().Model())
}
