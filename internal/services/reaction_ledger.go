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
	"gorm.io/gorm/clause"
)

// ReactionKey identifies one ledger row.
type ReactionKey struct {
	TargetType models.TargetType
	TargetID   uuid.UUID
	Type       string
}

func validateTarget(targetType models.TargetType, targetID uuid.UUID) error {
	if targetType != models.TargetPost && targetType != models.TargetComment {
		return apperrors.InvalidInput("reaction target must be a post or a comment")
	}
	if targetID == uuid.Nil {
		return apperrors.InvalidInput("reaction target is required")
	}
	return nil
}

func (k ReactionKey) validate() error {
	if err := validateTarget(k.TargetType, k.TargetID); err != nil {
		return err
	}
	if !models.IsReactionType(k.Type) {
		return apperrors.InvalidInput("unknown reaction type")
	}
	return nil
}

// ReactionLedger keeps at most one reaction per (user, target, type). The
// guarantee comes from the unique index; writes go through an upsert so two
// concurrent reacts for the same key still leave one row.
type ReactionLedger struct {
	db       *gorm.DB
	resolver *access.Resolver
}

func NewReactionLedger(db *gorm.DB, resolver *access.Resolver) *ReactionLedger {
	return &ReactionLedger{db: db, resolver: resolver}
}

// React records the reaction, or refreshes it if the key already exists.
func (l *ReactionLedger) React(ctx context.Context, user access.Actor, key ReactionKey) (*models.Reaction, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	acc, err := l.authorizeTarget(ctx, user, key)
	if err != nil {
		return nil, err
	}

	reaction, err := l.upsert(ctx, user.UserID, key)
	if err != nil {
		return nil, err
	}
	slog.Info("reaction recorded", "reaction_id", reaction.ID, "event_id", acc.Ref.EventID, "user_id", user.UserID, "type", key.Type)
	return reaction, nil
}

// Toggle removes the reaction if it exists and records it otherwise. The
// returned bool reports whether the reaction is present afterwards.
func (l *ReactionLedger) Toggle(ctx context.Context, user access.Actor, key ReactionKey) (*models.Reaction, bool, error) {
	if err := key.validate(); err != nil {
		return nil, false, err
	}
	if _, err := l.authorizeTarget(ctx, user, key); err != nil {
		return nil, false, err
	}

	result := l.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ? AND type = ?", user.UserID, key.TargetType, key.TargetID, key.Type).
		Delete(&models.Reaction{})
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return nil, false, nil
	}

	reaction, err := l.upsert(ctx, user.UserID, key)
	if err != nil {
		return nil, false, err
	}
	return reaction, true, nil
}

// Unreact removes the caller's own reaction for key. Removing a reaction that
// does not exist succeeds.
func (l *ReactionLedger) Unreact(ctx context.Context, user access.Actor, key ReactionKey) error {
	if err := key.validate(); err != nil {
		return err
	}
	acc, err := l.resolver.Resolve(ctx, user, access.ContentTarget(key.TargetType, key.TargetID))
	if err != nil {
		return err
	}
	if err := acc.RequireWrite(); err != nil {
		return err
	}

	return l.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ? AND type = ?", user.UserID, key.TargetType, key.TargetID, key.Type).
		Delete(&models.Reaction{}).Error
}

// UnreactByID deletes a reaction row. Only its owner, the event creator or an
// admin may do so.
func (l *ReactionLedger) UnreactByID(ctx context.Context, user access.Actor, reactionID uuid.UUID) error {
	acc, err := l.resolver.Resolve(ctx, user, access.ReactionTarget(reactionID))
	if err != nil {
		return err
	}
	if err := acc.RequireWrite(); err != nil {
		return err
	}

	db := l.db.WithContext(ctx)
	var reaction models.Reaction
	if err := db.Where("id = ?", reactionID).First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("reaction")
		}
		return err
	}
	if reaction.UserID != user.UserID && !acc.Classification.Privileged() {
		return apperrors.Forbidden("not authorized to remove this reaction")
	}

	result := db.Where("id = ?", reactionID).Delete(&models.Reaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("reaction")
	}
	return nil
}

// Counts groups the reactions on one target by type.
func (l *ReactionLedger) Counts(ctx context.Context, viewer access.Actor, targetType models.TargetType, targetID uuid.UUID) ([]ReactionCount, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return nil, err
	}
	acc, err := l.resolver.Resolve(ctx, viewer, access.ContentTarget(targetType, targetID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireRead(); err != nil {
		return nil, err
	}
	if _, err := loadVisiblePost(ctx, l.db, viewer, acc); err != nil {
		return nil, err
	}

	counts, err := reactionCounts(ctx, l.db, targetType, []uuid.UUID{targetID})
	if err != nil {
		return nil, err
	}
	if counts[targetID] == nil {
		return []ReactionCount{}, nil
	}
	return counts[targetID], nil
}

// authorizeTarget requires write access and that the target is visible to user.
func (l *ReactionLedger) authorizeTarget(ctx context.Context, user access.Actor, key ReactionKey) (access.Access, error) {
	acc, err := l.resolver.Resolve(ctx, user, access.ContentTarget(key.TargetType, key.TargetID))
	if err != nil {
		return acc, err
	}
	if err := acc.RequireWrite(); err != nil {
		return acc, err
	}
	if _, err := loadVisiblePost(ctx, l.db, user, acc); err != nil {
		return acc, err
	}
	return acc, nil
}

func (l *ReactionLedger) upsert(ctx context.Context, userID uuid.UUID, key ReactionKey) (*models.Reaction, error) {
	db := l.db.WithContext(ctx)
	reaction := models.Reaction{
		UserID:     userID,
		TargetType: key.TargetType,
		TargetID:   key.TargetID,
		Type:       key.Type,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(&reaction).Error
	if err != nil {
		return nil, err
	}

	var stored models.Reaction
	if err := db.Where("user_id = ? AND target_type = ? AND target_id = ? AND type = ?", userID, key.TargetType, key.TargetID, key.Type).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
