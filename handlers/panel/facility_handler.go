package handlers

import (
	"fmt"
	"html/template"
	"strings"

	"klinika.admin/models"
	"klinika.admin/pkg/flashmessages"
	"klinika.admin/pkg/renderer"
	"klinika.admin/services"

	"github.com/gofiber/fiber/v2"
)

// FacilityHandler serves the medical facility pages.
type FacilityHandler struct {
	service services.IFacilityService
}

// NewFacilityHandler creates a FacilityHandler.
func NewFacilityHandler(service services.IFacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

func facilityForm(f *models.MedicalFacility) map[string]string {
	return map[string]string{
		"name":    f.Name,
		"address": f.Address,
		"phone":   f.Phone,
	}
}

// ListFacilities renders every facility. It also serves the index page.
func (h *FacilityHandler) ListFacilities(c *fiber.Ctx) error {
	facilities, err := h.service.GetAllFacilities(c.UserContext())
	if err != nil {
		return unexpected(c, "ListFacilities", err)
	}
	return renderer.Render(c, "facilities/list", renderer.MainLayout, fiber.Map{
		"Title":      "Medical Facilities",
		"Facilities": facilities,
	})
}

// ShowCreateFacility renders the empty facility form.
func (h *FacilityHandler) ShowCreateFacility(c *fiber.Ctx) error {
	return renderer.Render(c, "facilities/form", renderer.MainLayout, fiber.Map{
		"Title":  "Add Facility",
		"Action": "/add_facility",
		"Form":   mergeForm(facilityForm(&models.MedicalFacility{}), flashmessages.GetFlashFormData(c)),
	})
}

// CreateFacility handles the add facility form.
func (h *FacilityHandler) CreateFacility(c *fiber.Ctx) error {
	var input services.FacilityInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrFacilityInvalidInput, "/add_facility")
	}

	facility, err := h.service.CreateFacility(c.UserContext(), input)
	if err != nil {
		if isAny(err, services.ErrFacilityInvalidInput, services.ErrFacilityCreationFailed) {
			return formFailed(c, err, "/add_facility")
		}
		return unexpected(c, "CreateFacility", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Facility %q added.", facility.Name), "/facilities", fiber.StatusFound)
}

// ShowUpdateFacility renders the edit form of an existing facility.
func (h *FacilityHandler) ShowUpdateFacility(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrFacilityNotFound.Error())
	}

	facility, err := h.service.GetFacilityByID(c.UserContext(), id)
	if err != nil {
		if isAny(err, services.ErrFacilityNotFound) {
			return renderer.RenderNotFound(c, err.Error())
		}
		return unexpected(c, "ShowUpdateFacility", err)
	}

	return renderer.Render(c, "facilities/form", renderer.MainLayout, fiber.Map{
		"Title":    "Edit Facility",
		"Action":   fmt.Sprintf("/edit_facility/%d", id),
		"Facility": facility,
		"Form":     mergeForm(facilityForm(facility), flashmessages.GetFlashFormData(c)),
	})
}

// UpdateFacility applies the submitted facility fields.
func (h *FacilityHandler) UpdateFacility(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrFacilityNotFound.Error())
	}
	back := fmt.Sprintf("/edit_facility/%d", id)

	var input services.FacilityInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrFacilityInvalidInput, back)
	}

	facility, err := h.service.UpdateFacility(c.UserContext(), id, input)
	if err != nil {
		switch {
		case isAny(err, services.ErrFacilityNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrFacilityInvalidInput, services.ErrFacilityUpdateFailed):
			return formFailed(c, err, back)
		}
		return unexpected(c, "UpdateFacility", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Facility %q updated.", facility.Name), "/facilities", fiber.StatusFound)
}

// DeleteFacility serves /delete_facility/:id and the legacy /delete/:id.
func (h *FacilityHandler) DeleteFacility(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrFacilityNotFound.Error())
	}

	if err := h.service.DeleteFacility(c.UserContext(), id); err != nil {
		switch {
		case isAny(err, services.ErrFacilityNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrFacilityInUse, services.ErrFacilityDeletionFailed):
			return flashAndRedirect(c, flashmessages.FlashErrorKey, err.Error(), "/facilities", fiber.StatusSeeOther)
		}
		return unexpected(c, "DeleteFacility", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Facility deleted.", "/facilities", fiber.StatusFound)
}

// DebugFacilities dumps all facilities as plain lines, one per row.
func (h *FacilityHandler) DebugFacilities(c *fiber.Ctx) error {
	facilities, err := h.service.GetAllFacilities(c.UserContext())
	if err != nil {
		return unexpected(c, "DebugFacilities", err)
	}

	lines := make([]string, 0, len(facilities))
	for _, f := range facilities {
		lines = append(lines, fmt.Sprintf("%d. %s - %s (%s)", f.ID,
			template.HTMLEscapeString(f.Name),
			template.HTMLEscapeString(f.Address),
			template.HTMLEscapeString(f.Phone)))
	}
	c.Type("html", "utf-8")
	return c.SendString(strings.Join(lines, "<br>"))
}
