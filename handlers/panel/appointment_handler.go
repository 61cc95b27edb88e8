package handlers

import (
	"fmt"
	"strconv"

	"klinika.admin/models"
	"klinika.admin/pkg/flashmessages"
	"klinika.admin/pkg/renderer"
	"klinika.admin/services"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler serves the appointment pages. The forms list patients,
// doctors and services to choose from.
type AppointmentHandler struct {
	service  services.IAppointmentService
	patients services.IPatientService
	doctors  services.IDoctorService
	services services.IMedicalServiceService
}

// NewAppointmentHandler creates an AppointmentHandler.
func NewAppointmentHandler(
	service services.IAppointmentService,
	patients services.IPatientService,
	doctors services.IDoctorService,
	medicalServices services.IMedicalServiceService,
) *AppointmentHandler {
	return &AppointmentHandler{
		service:  service,
		patients: patients,
		doctors:  doctors,
		services: medicalServices,
	}
}

func formatID(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

func appointmentForm(a *models.Appointment) map[string]string {
	return map[string]string{
		"patient_id":       formatID(a.PatientID),
		"doctor_id":        formatID(a.DoctorID),
		"service_id":       formatID(a.ServiceID),
		"appointment_date": a.AppointmentDate,
	}
}

// ListAppointments renders the appointments list.
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	appointments, err := h.service.GetAllAppointments(c.UserContext())
	if err != nil {
		return unexpected(c, "ListAppointments", err)
	}
	return renderer.Render(c, "appointments/list", renderer.MainLayout, fiber.Map{
		"Title":        "Appointments",
		"Appointments": appointments,
	})
}

func (h *AppointmentHandler) renderForm(c *fiber.Ctx, title, action string, appointment *models.Appointment) error {
	ctx := c.UserContext()
	patients, err := h.patients.GetAllPatients(ctx)
	if err != nil {
		return unexpected(c, "AppointmentForm", err)
	}
	doctors, err := h.doctors.GetAllDoctors(ctx)
	if err != nil {
		return unexpected(c, "AppointmentForm", err)
	}
	medicalServices, err := h.services.GetAllServices(ctx)
	if err != nil {
		return unexpected(c, "AppointmentForm", err)
	}

	return renderer.Render(c, "appointments/form", renderer.MainLayout, fiber.Map{
		"Title":    title,
		"Action":   action,
		"Patients": patients,
		"Doctors":  doctors,
		"Services": medicalServices,
		"Form":     mergeForm(appointmentForm(appointment), flashmessages.GetFlashFormData(c)),
	})
}

// ShowCreateAppointment renders the empty appointment form.
func (h *AppointmentHandler) ShowCreateAppointment(c *fiber.Ctx) error {
	return h.renderForm(c, "Add Appointment", "/add_appointment", &models.Appointment{})
}

// CreateAppointment handles the add appointment form.
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrAppointmentInvalidInput, "/add_appointment")
	}

	if _, err := h.service.CreateAppointment(c.UserContext(), input); err != nil {
		if isAny(err, services.ErrAppointmentInvalidInput, services.ErrAppointmentInvalidReference, services.ErrAppointmentCreationFailed) {
			return formFailed(c, err, "/add_appointment")
		}
		return unexpected(c, "CreateAppointment", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Appointment added.", "/appointments", fiber.StatusFound)
}

// ShowUpdateAppointment renders the edit form of an existing appointment.
func (h *AppointmentHandler) ShowUpdateAppointment(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrAppointmentNotFound.Error())
	}

	appointment, err := h.service.GetAppointmentByID(c.UserContext(), id)
	if err != nil {
		if isAny(err, services.ErrAppointmentNotFound) {
			return renderer.RenderNotFound(c, err.Error())
		}
		return unexpected(c, "ShowUpdateAppointment", err)
	}
	return h.renderForm(c, "Edit Appointment", fmt.Sprintf("/edit_appointment/%d", id), appointment)
}

// UpdateAppointment applies the submitted appointment fields.
func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrAppointmentNotFound.Error())
	}
	back := fmt.Sprintf("/edit_appointment/%d", id)

	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrAppointmentInvalidInput, back)
	}

	if _, err := h.service.UpdateAppointment(c.UserContext(), id, input); err != nil {
		switch {
		case isAny(err, services.ErrAppointmentNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrAppointmentInvalidInput, services.ErrAppointmentInvalidReference, services.ErrAppointmentUpdateFailed):
			return formFailed(c, err, back)
		}
		return unexpected(c, "UpdateAppointment", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Appointment updated.", "/appointments", fiber.StatusFound)
}

// DeleteAppointment deletes an appointment and redirects to the list.
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrAppointmentNotFound.Error())
	}

	if err := h.service.DeleteAppointment(c.UserContext(), id); err != nil {
		switch {
		case isAny(err, services.ErrAppointmentNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrAppointmentDeletionFailed):
			return flashAndRedirect(c, flashmessages.FlashErrorKey, err.Error(), "/appointments", fiber.StatusSeeOther)
		}
		return unexpected(c, "DeleteAppointment", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Appointment deleted.", "/appointments", fiber.StatusFound)
}
