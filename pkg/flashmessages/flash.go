package flashmessages

import (
	"encoding/gob"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	flashFormDataKey = "flash_form_data"

	// SessionStoreKey is the fiber Locals key the session store is kept under.
	SessionStoreKey = "session_store"
)

// ErrNoSessionStore is returned when no session middleware ran for the request.
var ErrNoSessionStore = errors.New("flashmessages: session store not found in context")

func init() {
	gob.Register(map[string]string{})
}

// FlashMessages holds the messages consumed by a single render.
type FlashMessages struct {
	Success string
	Error   string
}

func getSession(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(SessionStoreKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrNoSessionStore
	}
	return store.Get(c)
}

// SetFlashMessage stores a message for the next request.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages reads and clears pending messages.
func GetFlashMessages(c *fiber.Ctx) FlashMessages {
	var msgs FlashMessages
	sess, err := getSession(c)
	if err != nil {
		return msgs
	}

	found := false
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		msgs.Success = v
		sess.Delete(FlashSuccessKey)
		found = true
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		msgs.Error = v
		sess.Delete(FlashErrorKey)
		found = true
	}
	if found {
		_ = sess.Save()
	}
	return msgs
}

// SetFlashFormData keeps submitted values so a form can be refilled after a
// redirect.
func SetFlashFormData(c *fiber.Ctx, data map[string]string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormDataKey, data)
	return sess.Save()
}

// GetFlashFormData reads and clears the stored form values.
func GetFlashFormData(c *fiber.Ctx) map[string]string {
	sess, err := getSession(c)
	if err != nil {
		return nil
	}
	data, ok := sess.Get(flashFormDataKey).(map[string]string)
	if !ok {
		return nil
	}
	sess.Delete(flashFormDataKey)
	_ = sess.Save()
	return data
}
