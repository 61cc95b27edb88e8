package handlers

import (
	"fmt"

	"klinika.admin/models"
	"klinika.admin/pkg/flashmessages"
	"klinika.admin/pkg/renderer"
	"klinika.admin/services"

	"github.com/gofiber/fiber/v2"
)

// PatientHandler serves the patient pages.
type PatientHandler struct {
	service services.IPatientService
}

// NewPatientHandler creates a PatientHandler.
func NewPatientHandler(service services.IPatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func patientForm(p *models.Patient) map[string]string {
	return map[string]string{
		"name":       p.Name,
		"birth_date": p.BirthDate,
		"phone":      p.Phone,
	}
}

// ListPatients renders the patients list.
func (h *PatientHandler) ListPatients(c *fiber.Ctx) error {
	patients, err := h.service.GetAllPatients(c.UserContext())
	if err != nil {
		return unexpected(c, "ListPatients", err)
	}
	return renderer.Render(c, "patients/list", renderer.MainLayout, fiber.Map{
		"Title":    "Patients",
		"Patients": patients,
	})
}

// ShowCreatePatient renders the empty patient form.
func (h *PatientHandler) ShowCreatePatient(c *fiber.Ctx) error {
	return renderer.Render(c, "patients/form", renderer.MainLayout, fiber.Map{
		"Title":  "Add Patient",
		"Action": "/add_patient",
		"Form":   mergeForm(patientForm(&models.Patient{}), flashmessages.GetFlashFormData(c)),
	})
}

// CreatePatient handles the add patient form.
func (h *PatientHandler) CreatePatient(c *fiber.Ctx) error {
	var input services.PatientInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrPatientInvalidInput, "/add_patient")
	}

	patient, err := h.service.CreatePatient(c.UserContext(), input)
	if err != nil {
		if isAny(err, services.ErrPatientInvalidInput, services.ErrPatientCreationFailed) {
			return formFailed(c, err, "/add_patient")
		}
		return unexpected(c, "CreatePatient", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Patient %q added.", patient.Name), "/patients", fiber.StatusFound)
}

// ShowUpdatePatient renders the edit form of an existing patient.
func (h *PatientHandler) ShowUpdatePatient(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrPatientNotFound.Error())
	}

	patient, err := h.service.GetPatientByID(c.UserContext(), id)
	if err != nil {
		if isAny(err, services.ErrPatientNotFound) {
			return renderer.RenderNotFound(c, err.Error())
		}
		return unexpected(c, "ShowUpdatePatient", err)
	}

	return renderer.Render(c, "patients/form", renderer.MainLayout, fiber.Map{
		"Title":  "Edit Patient",
		"Action": fmt.Sprintf("/edit_patient/%d", id),
		"Form":   mergeForm(patientForm(patient), flashmessages.GetFlashFormData(c)),
	})
}

// UpdatePatient applies the submitted patient fields.
func (h *PatientHandler) UpdatePatient(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrPatientNotFound.Error())
	}
	back := fmt.Sprintf("/edit_patient/%d", id)

	var input services.PatientInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrPatientInvalidInput, back)
	}

	patient, err := h.service.UpdatePatient(c.UserContext(), id, input)
	if err != nil {
		switch {
		case isAny(err, services.ErrPatientNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrPatientInvalidInput, services.ErrPatientUpdateFailed):
			return formFailed(c, err, back)
		}
		return unexpected(c, "UpdatePatient", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Patient %q updated.", patient.Name), "/patients", fiber.StatusFound)
}

// DeletePatient deletes a patient and redirects to the list.
func (h *PatientHandler) DeletePatient(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrPatientNotFound.Error())
	}

	if err := h.service.DeletePatient(c.UserContext(), id); err != nil {
		switch {
		case isAny(err, services.ErrPatientNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrPatientInUse, services.ErrPatientDeletionFailed):
			return flashAndRedirect(c, flashmessages.FlashErrorKey, err.Error(), "/patients", fiber.StatusSeeOther)
		}
		return unexpected(c, "DeletePatient", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Patient deleted.", "/patients", fiber.StatusFound)
}
