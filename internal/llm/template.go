package llm

import (
	"context"
	"strings"
)

// TemplateModel is the model name reported by TemplateClient.
const TemplateModel = "template"

// TemplateClient answers without a provider. Chat replies are keyword-matched canned
// guidance; Summarize echoes the facts section of the prompt.
type TemplateClient struct{}

// NewTemplateClient returns the offline client.
func NewTemplateClient() *TemplateClient {
	return &TemplateClient{}
}

// Model returns TemplateModel.
func (TemplateClient) Model() string {
	return TemplateModel
}

type cannedReply struct {
	keywords []string
	text     string
}

var cannedReplies = []cannedReply{
	{
		keywords: []string{"diagnosis", "symptom", "condition"},
		text: "Consider the differential based on age, risk factors and red-flag symptoms. " +
			"Review vital signs and examination findings, order the appropriate tests and schedule follow-up.",
	},
	{
		keywords: []string{"treatment", "medication", "therapy"},
		text: "Review current medications and allergies, check for interactions and start with " +
			"first-line treatment adjusted for age, weight and comorbidities.",
	},
	{
		keywords: []string{"lab", "test", "result"},
		text: "Interpret results against reference ranges and the clinical picture. " +
			"Repeat or extend testing when findings are borderline or unexpected.",
	},
	{
		keywords: []string{"follow", "appointment", "schedule"},
		text: "Schedule follow-up according to severity: urgent findings within days, stable chronic " +
			"conditions at routine intervals.",
	},
}

const defaultReply = "I can help with diagnoses, treatment options, lab results and follow-up planning. " +
	"This assistant is running without a language model; answers are general guidance only."

// Chat answers the latest user message.
func (TemplateClient) Chat(_ context.Context, messages []Message) (string, error) {
	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			last = strings.ToLower(messages[i].Content)
			break
		}
	}
	for _, reply := range cannedReplies {
		for _, kw := range reply.keywords {
			if strings.Contains(last, kw) {
				return reply.text, nil
			}
		}
	}
	return defaultReply, nil
}

// Summarize returns the prompt's record section, up to the first blank line after it.
func (TemplateClient) Summarize(_ context.Context, prompt string) (string, error) {
	idx := strings.Index(prompt, RecordHeader)
	if idx < 0 {
		return strings.TrimSpace(prompt), nil
	}
	record := prompt[idx+len(RecordHeader):]
	if end := strings.Index(record, "\n\n"); end >= 0 {
		record = record[:end]
	}
	return "Summary generated without a language model.\n" + strings.TrimSpace(record), nil
}

// RecordHeader introduces the patient record inside a summary prompt.
const RecordHeader = "Patient record:\n"
