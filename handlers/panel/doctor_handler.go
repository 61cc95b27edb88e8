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

// DoctorHandler serves the doctor pages.
type DoctorHandler struct {
	service    services.IDoctorService
	facilities services.IFacilityService
}

// NewDoctorHandler creates a DoctorHandler.
func NewDoctorHandler(service services.IDoctorService, facilities services.IFacilityService) *DoctorHandler {
	return &DoctorHandler{service: service, facilities: facilities}
}

func doctorForm(d *models.Doctor) map[string]string {
	form := map[string]string{
		"name":           d.Name,
		"specialization": d.Specialization,
		"facility_id":    "",
	}
	if d.FacilityID != 0 {
		form["facility_id"] = strconv.FormatUint(uint64(d.FacilityID), 10)
	}
	return form
}

// ListDoctors renders the doctors list.
func (h *DoctorHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.GetAllDoctors(c.UserContext())
	if err != nil {
		return unexpected(c, "ListDoctors", err)
	}
	return renderer.Render(c, "doctors/list", renderer.MainLayout, fiber.Map{
		"Title":   "Doctors",
		"Doctors": doctors,
	})
}

func (h *DoctorHandler) renderForm(c *fiber.Ctx, title, action string, doctor *models.Doctor) error {
	facilities, err := h.facilities.GetAllFacilities(c.UserContext())
	if err != nil {
		return unexpected(c, "DoctorForm", err)
	}
	return renderer.Render(c, "doctors/form", renderer.MainLayout, fiber.Map{
		"Title":      title,
		"Action":     action,
		"Facilities": facilities,
		"Form":       mergeForm(doctorForm(doctor), flashmessages.GetFlashFormData(c)),
	})
}

// ShowCreateDoctor renders the empty doctor form.
func (h *DoctorHandler) ShowCreateDoctor(c *fiber.Ctx) error {
	return h.renderForm(c, "Add Doctor", "/add_doctor", &models.Doctor{})
}

// CreateDoctor handles the add doctor form.
func (h *DoctorHandler) CreateDoctor(c *fiber.Ctx) error {
	var input services.DoctorInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrDoctorInvalidInput, "/add_doctor")
	}

	doctor, err := h.service.CreateDoctor(c.UserContext(), input)
	if err != nil {
		if isAny(err, services.ErrDoctorInvalidInput, services.ErrDoctorInvalidFacility, services.ErrDoctorCreationFailed) {
			return formFailed(c, err, "/add_doctor")
		}
		return unexpected(c, "CreateDoctor", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Doctor %q added.", doctor.Name), "/doctors", fiber.StatusFound)
}

// ShowUpdateDoctor renders the edit form of an existing doctor.
func (h *DoctorHandler) ShowUpdateDoctor(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrDoctorNotFound.Error())
	}

	doctor, err := h.service.GetDoctorByID(c.UserContext(), id)
	if err != nil {
		if isAny(err, services.ErrDoctorNotFound) {
			return renderer.RenderNotFound(c, err.Error())
		}
		return unexpected(c, "ShowUpdateDoctor", err)
	}
	return h.renderForm(c, "Edit Doctor", fmt.Sprintf("/edit_doctor/%d", id), doctor)
}

// UpdateDoctor applies the submitted doctor fields.
func (h *DoctorHandler) UpdateDoctor(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrDoctorNotFound.Error())
	}
	back := fmt.Sprintf("/edit_doctor/%d", id)

	var input services.DoctorInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrDoctorInvalidInput, back)
	}

	doctor, err := h.service.UpdateDoctor(c.UserContext(), id, input)
	if err != nil {
		switch {
		case isAny(err, services.ErrDoctorNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrDoctorInvalidInput, services.ErrDoctorInvalidFacility, services.ErrDoctorUpdateFailed):
			return formFailed(c, err, back)
		}
		return unexpected(c, "UpdateDoctor", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Doctor %q updated.", doctor.Name), "/doctors", fiber.StatusFound)
}

// DeleteDoctor deletes a doctor and redirects to the list.
func (h *DoctorHandler) DeleteDoctor(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrDoctorNotFound.Error())
	}

	if err := h.service.DeleteDoctor(c.UserContext(), id); err != nil {
		switch {
		case isAny(err, services.ErrDoctorNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrDoctorInUse, services.ErrDoctorDeletionFailed):
			return flashAndRedirect(c, flashmessages.FlashErrorKey, err.Error(), "/doctors", fiber.StatusSeeOther)
		}
		return unexpected(c, "DeleteDoctor", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Doctor deleted.", "/doctors", fiber.StatusFound)
}
