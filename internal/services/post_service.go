package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdatePostInput struct {
	Content *string
	Image   *string
}

// PostService handles author edits and removal of posts. Creation and status
// changes belong to the ModerationGate.
type PostService struct {
	db       *gorm.DB
	resolver *access.Resolver
	gate     *ModerationGate
}

func NewPostService(db *gorm.DB, resolver *access.Resolver, gate *ModerationGate) *PostService {
	return &PostService{db: db, resolver: resolver, gate: gate}
}

func (s *PostService) Create(ctx context.Context, author access.Actor, in SubmitPostInput) (*models.Post, error) {
	return s.gate.Submit(ctx, author, in)
}

// Update edits content or image. Only the author may edit, and an edit never
// sends an approved post back to moderation.
func (s *PostService) Update(ctx context.Context, author access.Actor, postID uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	updates := map[string]interface{}{}
	if in.Content != nil {
		content, err := cleanText("content", *in.Content, maxPostLength)
		if err != nil {
			return nil, err
		}
		updates["content"] = content
	}
	if in.Image != nil {
		image, err := cleanImage(*in.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = image
	}
	if len(updates) == 0 {
		return nil, apperrors.InvalidInput("nothing to update")
	}

	acc, err := s.resolver.Resolve(ctx, author, access.PostTarget(postID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireWrite(); err != nil {
		return nil, err
	}
	post, err := loadVisiblePost(ctx, s.db, author, acc)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != author.UserID {
		return nil, apperrors.Forbidden("only the author can edit this post")
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	var updated models.Post
	if err := db.Where("id = ?", post.ID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete soft-deletes a post. The author, the event creator and admins may do so.
func (s *PostService) Delete(ctx context.Context, actor access.Actor, postID uuid.UUID) (*models.Post, error) {
	acc, err := s.resolver.Resolve(ctx, actor, access.PostTarget(postID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireWrite(); err != nil {
		return nil, err
	}
	post, err := loadVisiblePost(ctx, s.db, actor, acc)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID && !acc.Classification.Privileged() {
		return nil, apperrors.Forbidden("not authorized to delete this post")
	}

	if err := softDeletePost(s.db.WithContext(ctx), postID); err != nil {
		return nil, err
	}
	slog.Info("post deleted", "post_id", postID, "event_id", acc.Ref.EventID, "user_id", actor.UserID)

	var deleted models.Post
	if err := s.db.WithContext(ctx).Where("id = ?", postID).First(&deleted).Error; err != nil {
		return nil, err
	}
	return &deleted, nil
}

// ListPending returns the moderation queue of a channel, oldest first.
func (s *PostService) ListPending(ctx context.Context, moderator access.Actor, channelID uuid.UUID) ([]models.Post, error) {
	acc, err := s.resolver.Resolve(ctx, moderator, access.ChannelTarget(channelID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, err
	}

	posts := []models.Post{}
	err = s.db.WithContext(ctx).
		Where("channel_id = ? AND status = ? AND is_deleted = ?", channelID, models.PostPending, false).
		Order("created_at ASC").
		Find(&posts).Error
	return posts, err
}

// softDeletePost flags a live post as deleted. A post that is already deleted
// or gone is reported as missing.
func softDeletePost(db *gorm.DB, postID uuid.UUID) error {
	result := db.Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", postID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

