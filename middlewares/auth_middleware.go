package middlewares

import (
	"crypto/subtle"

	"klinika.admin/configs"
	"klinika.admin/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth protects the panel with HTTP basic auth when an admin user and
// bcrypt password hash are configured. Otherwise it lets every request pass.
func AdminAuth(cfg *configs.Config) fiber.Handler {
	if cfg == nil || !cfg.AuthEnabled() {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	hash := []byte(cfg.AdminPasswordHash)
	return basicauth.New(basicauth.Config{
		Realm: "Clinic Admin",
		Authorizer: func(user, pass string) bool {
			if subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUser)) != 1 {
				return false
			}
			if err := bcrypt.CompareHashAndPassword(hash, []byte(pass)); err != nil {
				configslog.Log.Warn("admin login rejected", zap.String("user", user))
				return false
			}
			return true
		},
	})
}
