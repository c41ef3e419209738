package services

import (
	"context"
	"errors"
	"sort"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type CommentView struct {
	models.Comment
	Reactions []ReactionCount `json:"reactions"`
}

type PostView struct {
	models.Post
	Comments  []CommentView   `json:"comments"`
	Reactions []ReactionCount `json:"reactions"`
}

// ModerationStats is only filled in for creators and admins. Soft-deleted posts
// are counted here even though they are never part of the post list.
type ModerationStats struct {
	Pending int64 `json:"pending"`
	Deleted int64 `json:"deleted"`
}

type ChannelView struct {
	Channel    models.Channel   `json:"channel"`
	ViewerRole string           `json:"viewer_role"`
	Posts      []PostView       `json:"posts"`
	Moderation *ModerationStats `json:"moderation,omitempty"`
}

// ChannelService is the read path for channel content. It never mutates state.
type ChannelService struct {
	db       *gorm.DB
	resolver *access.Resolver
}

func NewChannelService(db *gorm.DB, resolver *access.Resolver) *ChannelService {
	return &ChannelService{db: db, resolver: resolver}
}

func (s *ChannelService) GetChannel(ctx context.Context, viewer access.Actor, eventID uuid.UUID) (*ChannelView, error) {
	acc, err := s.resolver.Resolve(ctx, viewer, access.EventTarget(eventID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireRead(); err != nil {
		return nil, err
	}

	var channel models.Channel
	if err := s.db.WithContext(ctx).Where("event_id = ?", eventID).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("channel")
		}
		return nil, err
	}

	posts, err := s.posts(ctx, viewer, acc.Classification, channel.ID)
	if err != nil {
		return nil, err
	}

	view := &ChannelView{
		Channel:    channel,
		ViewerRole: acc.Classification.String(),
		Posts:      posts,
	}
	if acc.Classification.Privileged() {
		stats, err := s.moderationStats(ctx, channel.ID)
		if err != nil {
			return nil, err
		}
		view.Moderation = stats
	}
	return view, nil
}

func (s *ChannelService) GetPostsForChannel(ctx context.Context, viewer access.Actor, channelID uuid.UUID) ([]PostView, error) {
	acc, err := s.resolver.Resolve(ctx, viewer, access.ChannelTarget(channelID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireRead(); err != nil {
		return nil, err
	}
	return s.posts(ctx, viewer, acc.Classification, channelID)
}

func (s *ChannelService) GetPost(ctx context.Context, viewer access.Actor, postID uuid.UUID) (*PostView, error) {
	acc, err := s.resolver.Resolve(ctx, viewer, access.PostTarget(postID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireRead(); err != nil {
		return nil, err
	}
	post, err := loadVisiblePost(ctx, s.db, viewer, acc)
	if err != nil {
		return nil, err
	}
	views, err := s.assemble(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetComments returns a post's comments oldest-first with their reaction counts.
func (s *ChannelService) GetComments(ctx context.Context, viewer access.Actor, postID uuid.UUID) ([]CommentView, error) {
	acc, err := s.resolver.Resolve(ctx, viewer, access.PostTarget(postID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireRead(); err != nil {
		return nil, err
	}
	if _, err := loadVisiblePost(ctx, s.db, viewer, acc); err != nil {
		return nil, err
	}

	byPost, err := s.comments(ctx, []uuid.UUID{postID})
	if err != nil {
		return nil, err
	}
	return byPost[postID], nil
}

// posts lists what viewer may see, newest first.
func (s *ChannelService) posts(ctx context.Context, viewer access.Actor, c access.Classification, channelID uuid.UUID) ([]PostView, error) {
	query := s.db.WithContext(ctx).Where("channel_id = ? AND is_deleted = ?", channelID, false)
	if !c.Privileged() {
		query = query.Where("(status = ? OR author_id = ?)", models.PostApproved, viewer.UserID)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts)
}

func (s *ChannelService) assemble(ctx context.Context, posts []models.Post) ([]PostView, error) {
	views := make([]PostView, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	comments, err := s.comments(ctx, ids)
	if err != nil {
		return nil, err
	}
	counts, err := reactionCounts(ctx, s.db, models.TargetPost, ids)
	if err != nil {
		return nil, err
	}

	for i, p := range posts {
		views[i] = PostView{
			Post:      p,
			Comments:  comments[p.ID],
			Reactions: counts[p.ID],
		}
		if views[i].Comments == nil {
			views[i].Comments = []CommentView{}
		}
		if views[i].Reactions == nil {
			views[i].Reactions = []ReactionCount{}
		}
	}
	return views, nil
}

// comments groups the comments of postIDs by post, oldest first, so threads
// read in conversational order.
func (s *ChannelService) comments(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]CommentView, error) {
	var rows []models.Comment
	if err := s.db.WithContext(ctx).Where("post_id IN ?", postIDs).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]CommentView, len(postIDs))
	for _, id := range postIDs {
		result[id] = []CommentView{}
	}
	if len(rows) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, c := range rows {
		ids[i] = c.ID
	}
	counts, err := reactionCounts(ctx, s.db, models.TargetComment, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range rows {
		reactions := counts[c.ID]
		if reactions == nil {
			reactions = []ReactionCount{}
		}
		result[c.PostID] = append(result[c.PostID], CommentView{Comment: c, Reactions: reactions})
	}
	return result, nil
}

func (s *ChannelService) moderationStats(ctx context.Context, channelID uuid.UUID) (*ModerationStats, error) {
	var stats ModerationStats
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Post{}).
		Where("channel_id = ? AND status = ? AND is_deleted = ?", channelID, models.PostPending, false).
		Count(&stats.Pending).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Post{}).
		Where("channel_id = ? AND is_deleted = ?", channelID, true).
		Count(&stats.Deleted).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// reactionCounts groups the ledger per target at read time.
func reactionCounts(ctx context.Context, db *gorm.DB, targetType models.TargetType, ids []uuid.UUID) (map[uuid.UUID][]ReactionCount, error) {
	var rows []struct {
		TargetID uuid.UUID
		Type     string
		Count    int64
	}
	err := db.WithContext(ctx).Model(&models.Reaction{}).
		Select("target_id, type, count(*) as count").
		Where("target_type = ? AND target_id IN ?", targetType, ids).
		Group("target_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]ReactionCount)
	for _, r := range rows {
		result[r.TargetID] = append(result[r.TargetID], ReactionCount{Type: r.Type, Count: r.Count})
	}
	for id := range result {
		counts := result[id]
		sort.Slice(counts, func(i, j int) bool { return counts[i].Type < counts[j].Type })
	}
	return result, nil
}
