package flashmessages

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlashApp() *fiber.App {
	store := session.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(SessionStoreKey, store)
		return c.Next()
	})
	app.Get("/set", func(c *fiber.Ctx) error {
		if err := SetFlashMessage(c, FlashErrorKey, "boom"); err != nil {
			return err
		}
		if err := SetFlashFormData(c, map[string]string{"name": "Kept"}); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		msgs := GetFlashMessages(c)
		form := GetFlashFormData(c)
		return c.SendString(msgs.Error + "|" + msgs.Success + "|" + form["name"])
	})
	return app
}

func TestFlashMessagesAreReadOnce(t *testing.T) {
	app := newFlashApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	read := func() string {
		req := httptest.NewRequest(http.MethodGet, "/get", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	assert.Equal(t, "boom||Kept", read())
	assert.Equal(t, "||", read())
}

func TestWithoutSessionStore(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.ErrorIs(t, SetFlashMessage(c, FlashSuccessKey, "x"), ErrNoSessionStore)
		assert.Empty(t, GetFlashMessages(c))
		assert.Nil(t, GetFlashFormData(c))
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
