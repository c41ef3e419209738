package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReportInput struct {
	PostID    *uuid.UUID
	CommentID *uuid.UUID
	ChannelID *uuid.UUID
	Reason    string
}

type HandleReportInput struct {
	Status    models.ReportStatus
	Action    string
	AdminNote string
}

type ReportFilter struct {
	ChannelID uuid.UUID
	Status    models.ReportStatus
	Limit     int
	Offset    int
}

// ReportService stores moderation escalations. Anyone who can see the content
// may report it; only the routed channel's creator or an admin may handle a report.
type ReportService struct {
	db       *gorm.DB
	resolver *access.Resolver
}

func NewReportService(db *gorm.DB, resolver *access.Resolver) *ReportService {
	return &ReportService{db: db, resolver: resolver}
}

func (s *ReportService) CreateReport(ctx context.Context, reporter access.Actor, in CreateReportInput) (*models.Report, error) {
	if (in.PostID == nil) == (in.CommentID == nil) {
		return nil, apperrors.InvalidInput(models.ErrReportTarget.Error())
	}
	reason, err := cleanText("reason", in.Reason, maxReasonLength)
	if err != nil {
		return nil, err
	}

	target := access.Target{}
	if in.PostID != nil {
		target = access.PostTarget(*in.PostID)
	} else {
		target = access.CommentTarget(*in.CommentID)
	}
	acc, err := s.resolver.Resolve(ctx, reporter, target)
	if err != nil {
		return nil, err
	}
	if err := acc.RequireRead(); err != nil {
		return nil, err
	}
	if _, err := loadVisiblePost(ctx, s.db, reporter, acc); err != nil {
		return nil, err
	}
	ref := acc.Ref
	if in.ChannelID != nil && *in.ChannelID != ref.ChannelID {
		return nil, apperrors.InvalidInput("channel does not match the reported content")
	}

	report := models.Report{
		ReporterID: reporter.UserID,
		PostID:     in.PostID,
		CommentID:  in.CommentID,
		ChannelID:  ref.ChannelID,
		Reason:     reason,
		Status:     models.ReportPending,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	slog.Info("report created", "report_id", report.ID, "event_id", ref.EventID, "user_id", reporter.UserID)
	return &report, nil
}

func (s *ReportService) ListReports(ctx context.Context, moderator access.Actor, f ReportFilter) ([]models.Report, int64, error) {
	if f.ChannelID == uuid.Nil {
		return nil, 0, apperrors.InvalidInput("channel is required")
	}
	acc, err := s.resolver.Resolve(ctx, moderator, access.ChannelTarget(f.ChannelID))
	if err != nil {
		return nil, 0, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	reports := []models.Report{}
	var total int64

	filtered := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Report{}).Where("channel_id = ?", f.ChannelID)
		if f.Status != "" {
			query = query.Where("status = ?", f.Status)
		}
		return query
	}
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := filtered().Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// HandleReport moves a pending report to resolved or rejected. With the
// delete_content action the reported post is soft-deleted, or the reported
// comment removed, in the same transaction.
func (s *ReportService) HandleReport(ctx context.Context, moderator access.Actor, reportID uuid.UUID, in HandleReportInput) (*models.Report, error) {
	if in.Status != models.ReportResolved && in.Status != models.ReportRejected {
		return nil, apperrors.InvalidInput("status must be resolved or rejected")
	}
	switch in.Action {
	case "":
		in.Action = models.ReportActionNone
	case models.ReportActionNone, models.ReportActionDeleteContent:
	default:
		return nil, apperrors.InvalidInput("action must be none or delete_content")
	}
	if in.Action == models.ReportActionDeleteContent && in.Status != models.ReportResolved {
		return nil, apperrors.InvalidInput("content can only be deleted when resolving a report")
	}

	db := s.db.WithContext(ctx)
	var report models.Report
	if err := db.Where("id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("report")
		}
		return nil, err
	}

	acc, err := s.resolver.Resolve(ctx, moderator, access.ChannelTarget(report.ChannelID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.ReportPending).
			Updates(map[string]interface{}{
				"status":     in.Status,
				"handled_by": moderator.UserID,
				"action":     in.Action,
				"admin_note": in.AdminNote,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.Conflict("report has already been handled")
		}

		if in.Action != models.ReportActionDeleteContent {
			return nil
		}
		if report.PostID != nil {
			err := softDeletePost(tx, *report.PostID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return err
		}
		return deleteCommentTree(tx, *report.CommentID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("report handled", "report_id", reportID, "event_id", acc.Ref.EventID, "user_id", moderator.UserID, "status", in.Status, "action", in.Action)

	var handled models.Report
	if err := db.Where("id = ?", reportID).First(&handled).Error; err != nil {
		return nil, err
	}
	return &handled, nil
}
