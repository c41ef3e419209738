package services

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deleteCommentTree removes a comment, every reply below it and the reactions
// on all of them. It must run inside tx.
func deleteCommentTree(tx *gorm.DB, rootID uuid.UUID) error {
	ids := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}
	for len(frontier) > 0 {
		var children []uuid.UUID
		if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return err
		}
		ids = append(ids, children...)
		frontier = children
	}

	if err := tx.Where("target_type = ? AND target_id IN ?", models.TargetComment, ids).Delete(&models.Reaction{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
}

// deletePostChildren removes the comments of a post and all reactions on the
// post and its comments. It must run inside tx.
func deletePostChildren(tx *gorm.DB, postID uuid.UUID) error {
	var commentIDs []uuid.UUID
	if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("target_type = ? AND target_id IN ?", models.TargetComment, commentIDs).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("target_type = ? AND target_id = ?", models.TargetPost, postID).Delete(&models.Reaction{}).Error
}
