// Package session carries the authenticated caller through a Fiber request.
package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorKey = "actor"

var ErrNoActor = errors.New("no authenticated caller in context")

// Claims is the subset of the access token the core relies on.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// ClaimsFromToken reads sub, email and role from a verified token.
func ClaimsFromToken(token *jwt.Token) (Claims, error) {
	if token == nil {
		return Claims{}, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Claims{}, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, errors.New("invalid sub claim")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role != models.RoleAdmin {
		role = models.RoleVolunteer
	}
	return Claims{UserID: userID, Email: email, Role: role}, nil
}

func SetActor(c *fiber.Ctx, actor access.Actor) {
	c.Locals(actorKey, actor)
}

// GetActor returns the caller stored by the actor middleware.
func GetActor(c *fiber.Ctx) (access.Actor, error) {
	actor, ok := c.Locals(actorKey).(access.Actor)
	if !ok || actor.UserID == uuid.Nil {
		return access.Actor{}, ErrNoActor
	}
	return actor, nil
}
