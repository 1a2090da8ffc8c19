package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/api/dto"
	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/llm"
	"github.com/spec-kit/doctor-portal/internal/service"
)

// AssistantHandler serves AI summaries and chat.
type AssistantHandler struct {
	service *service.AssistantService
}

// NewAssistantHandler constructs handler.
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: assistantService}
}

// Summary GET|POST /api/patients/:id/ai-summary.
func (h *AssistantHandler) Summary(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.service.Summarize(c.UserContext(), auth.SessionFromContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SummaryResponse{
		Summary:      result.Summary,
		Source:       result.Source,
		Model:        result.Model,
		Cached:       result.Cached,
		GeneratedAt:  time.Now().UTC(),
		Patient:      dto.NewPatientResponse(result.Patient),
		Appointments: dto.NewAppointmentList(result.Appointments),
	}})
}

// Chat POST /api/chat.
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	history := make([]llm.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	result, err := h.service.Chat(c.UserContext(), auth.SessionFromContext(c), service.ChatInput{
		Message:   req.Message,
		PatientID: req.PatientID,
		History:   history,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ChatResponse{Reply: result.Reply, Source: result.Source}})
}
