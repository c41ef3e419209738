package access

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLookup implements Lookup with single-column reads on indexed keys.
type GormLookup struct {
	db *gorm.DB
}

func NewGormLookup(db *gorm.DB) *GormLookup {
	return &GormLookup{db: db}
}

func (l *GormLookup) ReactionTarget(ctx context.Context, reactionID uuid.UUID) (models.TargetType, uuid.UUID, error) {
	var r models.Reaction
	err := l.db.WithContext(ctx).Select("id", "target_type", "target_id").Where("id = ?", reactionID).Take(&r).Error
	if err != nil {
		return "", uuid.Nil, notFound(err)
	}
	return r.TargetType, r.TargetID, nil
}

func (l *GormLookup) CommentPost(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	var c models.Comment
	if err := l.db.WithContext(ctx).Select("id", "post_id").Where("id = ?", commentID).Take(&c).Error; err != nil {
		return uuid.Nil, notFound(err)
	}
	return c.PostID, nil
}

func (l *GormLookup) PostChannel(ctx context.Context, postID uuid.UUID) (uuid.UUID, error) {
	var p models.Post
	if err := l.db.WithContext(ctx).Select("id", "channel_id").Where("id = ?", postID).Take(&p).Error; err != nil {
		return uuid.Nil, notFound(err)
	}
	return p.ChannelID, nil
}

func (l *GormLookup) ChannelEvent(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error) {
	var c models.Channel
	if err := l.db.WithContext(ctx).Select("id", "event_id").Where("id = ?", channelID).Take(&c).Error; err != nil {
		return uuid.Nil, notFound(err)
	}
	return c.EventID, nil
}

func (l *GormLookup) EventOwner(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error) {
	var e models.Event
	if err := l.db.WithContext(ctx).Select("id", "created_by").Where("id = ?", eventID).Take(&e).Error; err != nil {
		return uuid.Nil, notFound(err)
	}
	return e.CreatedBy, nil
}

func (l *GormLookup) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
