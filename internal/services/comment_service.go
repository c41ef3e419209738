package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCommentInput struct {
	PostID   uuid.UUID
	ParentID *uuid.UUID
	Content  string
	Image    string
}

type UpdateCommentInput struct {
	Content *string
	Image   *string
}

// CommentService writes comments under the same rule as the parent post's
// channel: the caller needs write access and must be able to see the post.
type CommentService struct {
	db       *gorm.DB
	resolver *access.Resolver
}

func NewCommentService(db *gorm.DB, resolver *access.Resolver) *CommentService {
	return &CommentService{db: db, resolver: resolver}
}

func (s *CommentService) Create(ctx context.Context, author access.Actor, in CreateCommentInput) (*models.Comment, error) {
	if in.PostID == uuid.Nil {
		return nil, apperrors.InvalidInput("post is required")
	}
	content, err := cleanText("content", in.Content, maxCommentLength)
	if err != nil {
		return nil, err
	}
	image, err := cleanImage(in.Image)
	if err != nil {
		return nil, err
	}

	acc, err := s.resolver.Resolve(ctx, author, access.PostTarget(in.PostID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireWrite(); err != nil {
		return nil, err
	}
	if _, err := loadVisiblePost(ctx, s.db, author, acc); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := loadComment(ctx, s.db, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, apperrors.InvalidInput("parent comment belongs to another post")
		}
	}

	comment := models.Comment{
		PostID:   in.PostID,
		ParentID: in.ParentID,
		AuthorID: author.UserID,
		Content:  content,
		Image:    image,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	slog.Info("comment created", "comment_id", comment.ID, "post_id", in.PostID, "event_id", acc.Ref.EventID, "user_id", author.UserID)
	return &comment, nil
}

// Update edits a comment. Only its author may do so.
func (s *CommentService) Update(ctx context.Context, author access.Actor, commentID uuid.UUID, in UpdateCommentInput) (*models.Comment, error) {
	updates := map[string]interface{}{}
	if in.Content != nil {
		content, err := cleanText("content", *in.Content, maxCommentLength)
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

	_, comment, err := s.authorize(ctx, author, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != author.UserID {
		return nil, apperrors.Forbidden("only the author can edit this comment")
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Comment{}).Where("id = ?", commentID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return loadComment(ctx, s.db, commentID)
}

// Delete removes a comment and its replies. The author, the event creator and
// admins may do so.
func (s *CommentService) Delete(ctx context.Context, actor access.Actor, commentID uuid.UUID) error {
	acc, comment, err := s.authorize(ctx, actor, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actor.UserID && !acc.Classification.Privileged() {
		return apperrors.Forbidden("not authorized to delete this comment")
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCommentTree(tx, commentID)
	}); err != nil {
		return err
	}
	slog.Info("comment deleted", "comment_id", commentID, "event_id", acc.Ref.EventID, "user_id", actor.UserID)
	return nil
}

func (s *CommentService) authorize(ctx context.Context, actor access.Actor, commentID uuid.UUID) (access.Access, *models.Comment, error) {
	acc, err := s.resolver.Resolve(ctx, actor, access.CommentTarget(commentID))
	if err != nil {
		return acc, nil, err
	}
	if err := acc.RequireWrite(); err != nil {
		return acc, nil, err
	}
	if _, err := loadVisiblePost(ctx, s.db, actor, acc); err != nil {
		return acc, nil, err
	}
	comment, err := loadComment(ctx, s.db, commentID)
	if err != nil {
		return acc, nil, err
	}
	return acc, comment, nil
}
