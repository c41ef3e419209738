package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postVisible applies the channel visibility rule: soft-deleted posts are never
// returned, privileged viewers see every status, everyone else sees approved
// posts plus their own pending ones.
func postVisible(p *models.Post, viewer access.Actor, c access.Classification) bool {
	if p.IsDeleted {
		return false
	}
	if c.Privileged() || p.Status == models.PostApproved {
		return true
	}
	return p.AuthorID == viewer.UserID
}

// loadVisiblePost loads a post the viewer can see. Posts the viewer cannot see
// are reported as missing so their existence does not leak.
func loadVisiblePost(ctx context.Context, db *gorm.DB, viewer access.Actor, acc access.Access) (*models.Post, error) {
	var post models.Post
	if err := db.WithContext(ctx).Where("id = ?", acc.Ref.PostID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	if !postVisible(&post, viewer, acc.Classification) {
		return nil, apperrors.NotFound("post")
	}
	return &post, nil
}

func loadComment(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment")
		}
		return nil, err
	}
	return &comment, nil
}
