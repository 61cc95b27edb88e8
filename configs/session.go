package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionCookieName is the cookie that carries the session id.
const SessionCookieName = "klinika_session"

// SetupSession creates the session store used for flash messages.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     2 * time.Hour,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}
