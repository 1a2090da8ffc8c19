package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/api/dto"
	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/service"
)

// AppointmentsHandler serves appointment writes.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Create POST /api/appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return err
	}

	appointment, err := h.service.Create(c.UserContext(), auth.SessionFromContext(c), service.AppointmentInput{
		PatientID:   req.PatientID,
		Date:        date,
		Notes:       req.Notes,
		Medications: req.Medications,
		Allergies:   req.Allergies,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// Update PUT /api/appointments/:id.
func (h *AppointmentsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	update := service.AppointmentUpdate{
		Notes:       req.Notes,
		Medications: req.Medications,
		Allergies:   req.Allergies,
	}
	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			return err
		}
		update.Date = &date
	}

	appointment, err := h.service.Update(c.UserContext(), auth.SessionFromContext(c), id, update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}
