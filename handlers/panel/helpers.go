package handlers

import (
	"errors"
	"fmt"

	"klinika.admin/configs/configslog"
	"klinika.admin/pkg/flashmessages"
	"klinika.admin/pkg/renderer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// paramID reads the :id route parameter. Non-numeric or non-positive values
// are treated as unknown rows.
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// postedForm copies the submitted fields so the form can be refilled.
func postedForm(c *fiber.Ctx) map[string]string {
	data := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		data[string(key)] = string(value)
	})
	return data
}

// mergeForm lays flashed values over the stored ones.
func mergeForm(stored, flashed map[string]string) map[string]string {
	for k, v := range flashed {
		stored[k] = v
	}
	return stored
}

func flashAndRedirect(c *fiber.Ctx, key, message, location string, status int) error {
	if err := flashmessages.SetFlashMessage(c, key, message); err != nil {
		configslog.Log.Warn("flash message could not be stored", zap.Error(err))
	}
	return c.Redirect(location, status)
}

// formFailed sends staff back to the form with the error and their input.
func formFailed(c *fiber.Ctx, err error, location string) error {
	if ferr := flashmessages.SetFlashFormData(c, postedForm(c)); ferr != nil {
		configslog.Log.Warn("form data could not be stored", zap.Error(ferr))
	}
	return flashAndRedirect(c, flashmessages.FlashErrorKey, err.Error(), location, fiber.StatusSeeOther)
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// unexpected logs err and renders the 500 page.
func unexpected(c *fiber.Ctx, op string, err error) error {
	configslog.Log.Error(fmt.Sprintf("Panel - %s Error", op),
		zap.String("path", c.Path()),
		zap.Any("requestid", c.Locals("requestid")),
		zap.Error(err))
	return renderer.RenderError(c)
}
