package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/doctor-portal/internal/api/dto"
	"github.com/spec-kit/doctor-portal/internal/auth"
	"github.com/spec-kit/doctor-portal/internal/service"
)

// PatientsHandler serves patient and doctor reads.
type PatientsHandler struct {
	service *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patientService *service.PatientService) *PatientsHandler {
	return &PatientsHandler{service: patientService}
}

// ListPatients GET /api/patients?page=&page_size=.
func (h *PatientsHandler) ListPatients(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return err
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return err
	}

	result, err := h.service.ListPatients(c.UserContext(), auth.SessionFromContext(c), service.PageRequest{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.NewPatientList(result.Patients),
		"pagination": dto.PaginationResponse{
			Page:     result.Page,
			PageSize: result.PageSize,
			HasMore:  result.HasMore,
		},
	})
}

// GetPatient GET /api/patients/:id.
func (h *PatientsHandler) GetPatient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	patient, appointments, err := h.service.GetPatient(c.UserContext(), auth.SessionFromContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PatientDetailResponse{
		Patient:      dto.NewPatientResponse(patient),
		Appointments: dto.NewAppointmentList(appointments),
	}})
}

// ListAppointments GET /api/patients/:id/appointments.
func (h *PatientsHandler) ListAppointments(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	appointments, err := h.service.ListAppointments(c.UserContext(), auth.SessionFromContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentList(appointments)})
}

// ListDoctors GET /api/doctors.
func (h *PatientsHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.ListDoctors(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDoctorList(doctors)})
}
