package middleware

import (
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/config"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Actor turns the verified token into an access.Actor. The role claim is
// trusted as issued; ADMIN_EMAILS and ADMIN_USER_IDS can additionally
// elevate a caller to admin. Must run after JWTProtected.
func Actor(cfg *config.Config) fiber.Handler {
	adminEmails := normalize(cfg.AdminEmails, true)
	adminUserIDs := normalize(cfg.AdminUserIDs, false)

	return func(c *fiber.Ctx) error {
		token, _ := c.Locals("user").(*jwt.Token)
		claims, err := session.ClaimsFromToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		role := claims.Role
		if slices.Contains(adminEmails, strings.ToLower(claims.Email)) ||
			slices.Contains(adminUserIDs, claims.UserID.String()) {
			role = models.RoleAdmin
		}

		session.SetActor(c, access.Actor{UserID: claims.UserID, Role: role})
		return c.Next()
	}
}

func normalize(list []string, lower bool) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		trimmed := strings.TrimSpace(item)
		if lower {
			trimmed = strings.ToLower(trimmed)
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
