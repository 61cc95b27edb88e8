package renderer

import (
	"net/http"

	"klinika.admin/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"

	MainLayout  = "layouts/main"
	ErrorLayout = "layouts/error_layout"
)

// Render renders view inside layout. Pending flash messages are added to
// data unless the caller already set them.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, statusCode ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	_, hasSuccess := data[FlashSuccessKeyView]
	_, hasError := data[FlashErrorKeyView]
	if !hasSuccess && !hasError {
		SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	}
	data["CurrentPath"] = c.Path()

	status := http.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}
	return c.Status(status).Render(view, data, layout)
}

// SetFlashMessages copies non-empty messages into data.
func SetFlashMessages(data fiber.Map, msgs flashmessages.FlashMessages) {
	if msgs.Success != "" {
		data[FlashSuccessKeyView] = msgs.Success
	}
	if msgs.Error != "" {
		data[FlashErrorKeyView] = msgs.Error
	}
}

// RenderNotFound renders the 404 page with an optional message.
func RenderNotFound(c *fiber.Ctx, message string) error {
	return Render(c, "errors/404", ErrorLayout, fiber.Map{
		"Title":   "Not Found",
		"Message": message,
	}, http.StatusNotFound)
}

// RenderError renders the generic 500 page.
func RenderError(c *fiber.Ctx) error {
	return Render(c, "errors/500", ErrorLayout, fiber.Map{
		"Title": "Server Error",
	}, http.StatusInternalServerError)
}
