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

// ServiceHandler serves the priced medical service pages.
type ServiceHandler struct {
	service    services.IMedicalServiceService
	facilities services.IFacilityService
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(service services.IMedicalServiceService, facilities services.IFacilityService) *ServiceHandler {
	return &ServiceHandler{service: service, facilities: facilities}
}

func serviceForm(s *models.Service) map[string]string {
	form := map[string]string{
		"name":        s.Name,
		"price":       "",
		"facility_id": "",
	}
	if s.ID != 0 {
		form["price"] = s.Price.StringFixed(2)
	}
	if s.FacilityID != 0 {
		form["facility_id"] = strconv.FormatUint(uint64(s.FacilityID), 10)
	}
	return form
}

// ListServices renders the services list.
func (h *ServiceHandler) ListServices(c *fiber.Ctx) error {
	list, err := h.service.GetAllServices(c.UserContext())
	if err != nil {
		return unexpected(c, "ListServices", err)
	}
	return renderer.Render(c, "services/list", renderer.MainLayout, fiber.Map{
		"Title":    "Services",
		"Services": list,
	})
}

func (h *ServiceHandler) renderForm(c *fiber.Ctx, title, action string, service *models.Service) error {
	facilities, err := h.facilities.GetAllFacilities(c.UserContext())
	if err != nil {
		return unexpected(c, "ServiceForm", err)
	}
	return renderer.Render(c, "services/form", renderer.MainLayout, fiber.Map{
		"Title":      title,
		"Action":     action,
		"Facilities": facilities,
		"Form":       mergeForm(serviceForm(service), flashmessages.GetFlashFormData(c)),
	})
}

// ShowCreateService renders the empty service form.
func (h *ServiceHandler) ShowCreateService(c *fiber.Ctx) error {
	return h.renderForm(c, "Add Service", "/add_service", &models.Service{})
}

// CreateService handles the add service form.
func (h *ServiceHandler) CreateService(c *fiber.Ctx) error {
	var input services.ServiceInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrServiceInvalidInput, "/add_service")
	}

	service, err := h.service.CreateService(c.UserContext(), input)
	if err != nil {
		if isAny(err, services.ErrServiceInvalidInput, services.ErrServiceInvalidFacility, services.ErrServiceCreationFailed) {
			return formFailed(c, err, "/add_service")
		}
		return unexpected(c, "CreateService", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Service %q added.", service.Name), "/services", fiber.StatusFound)
}

// ShowUpdateService renders the edit form of an existing service.
func (h *ServiceHandler) ShowUpdateService(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrServiceNotFound.Error())
	}

	service, err := h.service.GetServiceByID(c.UserContext(), id)
	if err != nil {
		if isAny(err, services.ErrServiceNotFound) {
			return renderer.RenderNotFound(c, err.Error())
		}
		return unexpected(c, "ShowUpdateService", err)
	}
	return h.renderForm(c, "Edit Service", fmt.Sprintf("/edit_service/%d", id), service)
}

// UpdateService applies the submitted service fields.
func (h *ServiceHandler) UpdateService(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrServiceNotFound.Error())
	}
	back := fmt.Sprintf("/edit_service/%d", id)

	var input services.ServiceInput
	if err := c.BodyParser(&input); err != nil {
		return formFailed(c, services.ErrServiceInvalidInput, back)
	}

	service, err := h.service.UpdateService(c.UserContext(), id, input)
	if err != nil {
		switch {
		case isAny(err, services.ErrServiceNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrServiceInvalidInput, services.ErrServiceInvalidFacility, services.ErrServiceUpdateFailed):
			return formFailed(c, err, back)
		}
		return unexpected(c, "UpdateService", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Service %q updated.", service.Name), "/services", fiber.StatusFound)
}

// DeleteService deletes a service and redirects to the list.
func (h *ServiceHandler) DeleteService(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return renderer.RenderNotFound(c, services.ErrServiceNotFound.Error())
	}

	if err := h.service.DeleteService(c.UserContext(), id); err != nil {
		switch {
		case isAny(err, services.ErrServiceNotFound):
			return renderer.RenderNotFound(c, err.Error())
		case isAny(err, services.ErrServiceInUse, services.ErrServiceDeletionFailed):
			return flashAndRedirect(c, flashmessages.FlashErrorKey, err.Error(), "/services", fiber.StatusSeeOther)
		}
		return unexpected(c, "DeleteService", err)
	}

	return flashAndRedirect(c, flashmessages.FlashSuccessKey, "Service deleted.", "/services", fiber.StatusFound)
}
