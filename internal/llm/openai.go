package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spec-kit/doctor-portal/internal/config"
)

// Message is a single chat turn. Role is one of "system", "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the text-generation collaborator used for summaries and chat.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Summarize(ctx context.Context, prompt string) (string, error)
	// Model names the backing model. It is part of the summary cache key.
	Model() string
}

// ErrEmptyCompletion is returned when the provider answers without any choices.
var ErrEmptyCompletion = errors.New("llm returned no completion")

const summarySystemPrompt = "You are a clinical documentation assistant. " +
	"Write concise, factual summaries for a treating physician. Do not invent findings."

// OpenAIClient calls an OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client       *openai.Client
	chatModel    string
	summaryModel string
	maxTokens    int
}

// NewOpenAIClient returns nil when no API key is configured so callers can fall back to
// the template responses.
func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	if cfg.APIKey == "" {
		return nil
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	summaryModel := cfg.SummaryModel
	if summaryModel == "" {
		summaryModel = cfg.ChatModel
	}
	return &OpenAIClient{
		client:       openai.NewClientWithConfig(clientCfg),
		chatModel:    cfg.ChatModel,
		summaryModel: summaryModel,
		maxTokens:    cfg.MaxTokens,
	}
}

// Model returns the summary model name.
func (c *OpenAIClient) Model() string {
	return c.summaryModel
}

// Chat sends the message history and returns the assistant's reply.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: normalizeRole(m.Role), Content: m.Content})
	}
	return c.complete(ctx, c.chatModel, oaMsgs)
}

// Summarize asks the summary model to answer prompt under a clinical system prompt.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, c.summaryModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

func (c *OpenAIClient) complete(ctx context.Context, model string, messages []openai.ChatCompletionMessage) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("openai client not initialized")
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// normalizeRole coerces unknown roles to user.
func normalizeRole(role string) string {
	switch role {
	case openai.ChatMessageRoleSystem, openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
		return role
	default:
		return openai.ChatMessageRoleUser
	}
}
