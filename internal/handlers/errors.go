package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/session"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps the error taxonomy onto HTTP statuses. Anything outside the
// taxonomy is a 500 whose detail stays in the logs.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		status = fiber.StatusConflict
	}

	message := "Internal server error"
	var appErr *apperrors.Error
	if status != fiber.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Error()
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

// parseBody decodes the JSON body into req and runs its validate tags.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	return dto.Validate(req)
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("invalid " + field)
	}
	return id, nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return parseUUID(c.Params(name), name)
}

func queryUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, apperrors.InvalidInput(name + " is required")
	}
	return parseUUID(raw, name)
}

func currentActor(c *fiber.Ctx) (access.Actor, bool) {
	actor, err := session.GetActor(c)
	return actor, err == nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
