package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InitialPostStatus is the moderation policy for new posts keyed by the
// author's classification. Classifications missing from the table cannot post.
var InitialPostStatus = map[access.Classification]models.PostStatus{
	access.Creator:     models.PostApproved,
	access.Admin:       models.PostApproved,
	access.Participant: models.PostPending,
}

type SubmitPostInput struct {
	ChannelID uuid.UUID
	Content   string
	Image     string
}

// ModerationGate owns the pending -> approved state machine of posts.
type ModerationGate struct {
	db       *gorm.DB
	resolver *access.Resolver
}

func NewModerationGate(db *gorm.DB, resolver *access.Resolver) *ModerationGate {
	return &ModerationGate{db: db, resolver: resolver}
}

func (g *ModerationGate) Submit(ctx context.Context, author access.Actor, in SubmitPostInput) (*models.Post, error) {
	if in.ChannelID == uuid.Nil {
		return nil, apperrors.InvalidInput("channel is required")
	}
	content, err := cleanText("content", in.Content, maxPostLength)
	if err != nil {
		return nil, err
	}
	image, err := cleanImage(in.Image)
	if err != nil {
		return nil, err
	}

	acc, err := g.resolver.Resolve(ctx, author, access.ChannelTarget(in.ChannelID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireWrite(); err != nil {
		return nil, err
	}
	status, ok := InitialPostStatus[acc.Classification]
	if !ok {
		return nil, apperrors.Forbidden("not authorized to write to this channel")
	}

	post := models.Post{
		ChannelID: in.ChannelID,
		AuthorID:  author.UserID,
		Content:   content,
		Image:     image,
		Status:    status,
	}
	if status == models.PostApproved {
		now := time.Now()
		post.ApprovedBy = &author.UserID
		post.ApprovedAt = &now
	}

	if err := g.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	slog.Info("post submitted", "post_id", post.ID, "event_id", acc.Ref.EventID, "user_id", author.UserID, "status", post.Status)
	return &post, nil
}

// Approve moves a pending post to approved. Approving an approved post is a
// no-op that returns the post unchanged.
func (g *ModerationGate) Approve(ctx context.Context, moderator access.Actor, postID uuid.UUID) (*models.Post, error) {
	acc, err := g.resolver.Resolve(ctx, moderator, access.PostTarget(postID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, err
	}

	db := g.db.WithContext(ctx)
	result := db.Model(&models.Post{}).
		Where("id = ? AND status = ? AND is_deleted = ?", postID, models.PostPending, false).
		Updates(map[string]interface{}{
			"status":      models.PostApproved,
			"approved_by": moderator.UserID,
			"approved_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	var post models.Post
	if err := db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	if post.IsDeleted {
		return nil, apperrors.NotFound("post")
	}
	if result.RowsAffected > 0 {
		slog.Info("post approved", "post_id", postID, "event_id", acc.Ref.EventID, "user_id", moderator.UserID)
	}
	return &post, nil
}

// Reject removes a pending post outright together with anything attached to
// it. Rejected content was never visible, so nothing is kept. Rejecting a post
// that is already approved is refused and leaves it untouched.
func (g *ModerationGate) Reject(ctx context.Context, moderator access.Actor, postID uuid.UUID) error {
	acc, err := g.resolver.Resolve(ctx, moderator, access.PostTarget(postID))
	if err != nil {
		return err
	}
	if err := acc.RequireModerator(); err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND status = ?", postID, models.PostPending).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var post models.Post
			if err := tx.Select("id", "status").Where("id = ?", postID).Take(&post).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("post")
				}
				return err
			}
			return apperrors.Conflict("post has already been approved")
		}
		return deletePostChildren(tx, postID)
	})
	if err != nil {
		return err
	}

	slog.Info("post rejected", "post_id", postID, "event_id", acc.Ref.EventID, "user_id", moderator.UserID)
	return nil
}
