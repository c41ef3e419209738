package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
)

// Lookup provides the indexed foreign-key reads the resolver walks. A missing
// row must be reported with an error matching apperrors.ErrNotFound.
type Lookup interface {
	ReactionTarget(ctx context.Context, reactionID uuid.UUID) (models.TargetType, uuid.UUID, error)
	CommentPost(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error)
	PostChannel(ctx context.Context, postID uuid.UUID) (uuid.UUID, error)
	ChannelEvent(ctx context.Context, channelID uuid.UUID) (uuid.UUID, error)
	EventOwner(ctx context.Context, eventID uuid.UUID) (uuid.UUID, error)
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

// Resolver classifies callers. It keeps no state between calls, so roster
// changes are visible on the very next request.
type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// ResolveEventFor walks target -> post -> channel -> event and returns the chain.
func (r *Resolver) ResolveEventFor(ctx context.Context, t Target) (EventRef, error) {
	var ref EventRef
	kind, id := t.Kind, t.ID

	if kind == KindReaction {
		targetType, targetID, err := r.lookup.ReactionTarget(ctx, id)
		if err != nil {
			return ref, missing(err, "reaction")
		}
		kind, id = KindPost, targetID
		if targetType == models.TargetComment {
			kind = KindComment
		}
	}

	if kind == KindComment {
		postID, err := r.lookup.CommentPost(ctx, id)
		if err != nil {
			return ref, missing(err, "comment")
		}
		ref.CommentID = id
		kind, id = KindPost, postID
	}

	if kind == KindPost {
		channelID, err := r.lookup.PostChannel(ctx, id)
		if err != nil {
			return ref, missing(err, "post")
		}
		ref.PostID = id
		kind, id = KindChannel, channelID
	}

	if kind == KindChannel {
		eventID, err := r.lookup.ChannelEvent(ctx, id)
		if err != nil {
			return ref, missing(err, "channel")
		}
		ref.ChannelID = id
		kind, id = KindEvent, eventID
	}

	if kind != KindEvent {
		return ref, apperrors.InvalidInput(fmt.Sprintf("unknown target kind %q", t.Kind))
	}

	owner, err := r.lookup.EventOwner(ctx, id)
	if err != nil {
		return ref, missing(err, "event")
	}
	ref.EventID = id
	ref.CreatedBy = owner
	return ref, nil
}

// Resolve classifies actor for target and returns the resolved chain with it.
func (r *Resolver) Resolve(ctx context.Context, actor Actor, t Target) (Access, error) {
	ref, err := r.ResolveEventFor(ctx, t)
	if err != nil {
		return Access{}, err
	}

	acc := Access{Classification: Outsider, Ref: ref}
	switch {
	case actor.UserID != uuid.Nil && ref.CreatedBy == actor.UserID:
		acc.Classification = Creator
	case actor.IsAdmin():
		acc.Classification = Admin
	case actor.UserID != uuid.Nil:
		ok, err := r.lookup.IsParticipant(ctx, ref.EventID, actor.UserID)
		if err != nil {
			return Access{}, fmt.Errorf("participant lookup: %w", err)
		}
		if ok {
			acc.Classification = Participant
		}
	}
	return acc, nil
}

// Classify is Resolve without the chain.
func (r *Resolver) Classify(ctx context.Context, actor Actor, t Target) (Classification, error) {
	acc, err := r.Resolve(ctx, actor, t)
	if err != nil {
		return Outsider, err
	}
	return acc.Classification, nil
}

func missing(err error, entity string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFound(entity)
	}
	return fmt.Errorf("resolve %s: %w", entity, err)
}
