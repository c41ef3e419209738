package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the configured origins. Credentials are only allowed for an
// explicit origin list, never for "*".
func CORS(cfg *config.Config) fiber.Handler {
	origins := make([]string, 0)
	for _, o := range strings.Split(cfg.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	allow := strings.Join(origins, ",")
	if allow == "" {
		allow = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allow != "*",
		MaxAge:           600,
	})
}

// SecureHeaders sets the response headers every API response carries.
func SecureHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer")
		return c.Next()
	}
}
