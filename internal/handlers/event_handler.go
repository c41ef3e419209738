package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EventHandler serves the event lifecycle, registrations and channel views.
type EventHandler struct {
	events   *services.EventService
	channels *services.ChannelService
}

func NewEventHandler(events *services.EventService, channels *services.ChannelService) *EventHandler {
	return &EventHandler{events: events, channels: channels}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.CreateEventRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	event, err := h.events.CreateEvent(c.UserContext(), actor, services.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	event, err := h.events.GetEvent(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) Approve(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, channel, err := h.events.ApproveEvent(c.UserContext(), actor, eventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"event": event, "channel": channel})
}

func (h *EventHandler) Reject(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, err := h.events.RejectEvent(c.UserContext(), actor, eventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) Cancel(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	event, err := h.events.CancelEvent(c.UserContext(), actor, eventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(event)
}

// Channel serves GET /channel/:eventId.
func (h *EventHandler) Channel(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	eventID, err := paramUUID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	view, err := h.channels.GetChannel(c.UserContext(), actor, eventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *EventHandler) Register(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	registration, err := h.events.Register(c.UserContext(), actor, eventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(registration)
}

// Registrations serves GET /event/:id/registrations?status=.
func (h *EventHandler) Registrations(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	eventID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	registrations, err := h.events.ListRegistrations(c.UserContext(), actor, eventID, models.RegistrationStatus(c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(registrations)
}

func (h *EventHandler) AcceptRegistration(c *fiber.Ctx) error {
	return h.moveRegistration(c, h.events.AcceptRegistration)
}

func (h *EventHandler) CancelRegistration(c *fiber.Ctx) error {
	return h.moveRegistration(c, h.events.CancelRegistration)
}

func (h *EventHandler) RejectRegistration(c *fiber.Ctx) error {
	return h.moveRegistration(c, h.events.RejectRegistration)
}

type registrationTransition func(ctx context.Context, actor access.Actor, registrationID uuid.UUID) (*models.Registration, error)

func (h *EventHandler) moveRegistration(c *fiber.Ctx, move registrationTransition) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	registrationID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	registration, err := move(c.UserContext(), actor, registrationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(registration)
}
