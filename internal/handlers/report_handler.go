package handlers

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.CreateReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	report, err := h.reports.CreateReport(c.UserContext(), actor, services.CreateReportInput{
		PostID:    req.Post,
		CommentID: req.Comment,
		ChannelID: req.Channel,
		Reason:    req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// List serves GET /report?channel=&status=&limit=&offset=.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	channelID, err := queryUUID(c, "channel")
	if err != nil {
		return respondError(c, err)
	}

	filter := services.ReportFilter{
		ChannelID: channelID,
		Status:    models.ReportStatus(c.Query("status")),
		Limit:     c.QueryInt("limit", 20),
		Offset:    c.QueryInt("offset", 0),
	}
	reports, total, err := h.reports.ListReports(c.UserContext(), actor, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ListResponse[models.Report]{
		Data:   reports,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Handle serves PUT /report/:id.
func (h *ReportHandler) Handle(c *fiber.Ctx) error {
	actor, ok := currentActor(c)
	if !ok {
		return unauthorized(c)
	}
	reportID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.HandleReportRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	report, err := h.reports.HandleReport(c.UserContext(), actor, reportID, services.HandleReportInput{
		Status:    models.ReportStatus(req.Status),
		Action:    req.Action,
		AdminNote: req.AdminNote,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
