// Package access classifies a caller against the event that owns a piece of
// channel content. Every read or write on posts, comments and reactions goes
// through a Resolver before touching the store.
package access

import (
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
)

type Classification int

const (
	Outsider Classification = iota
	Participant
	Admin
	Creator
)

func (c Classification) String() string {
	switch c {
	case Participant:
		return "participant"
	case Admin:
		return "admin"
	case Creator:
		return "creator"
	default:
		return "outsider"
	}
}

// Privileged reports whether c may read everything and moderate.
func (c Classification) Privileged() bool {
	return c == Creator || c == Admin
}

// CanWrite reports whether c may write to the event's channel.
func (c Classification) CanWrite() bool {
	return c != Outsider
}

// Actor is the authenticated caller as supplied by the identity provider.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

type TargetKind string

const (
	KindEvent    TargetKind = "event"
	KindChannel  TargetKind = "channel"
	KindPost     TargetKind = "post"
	KindComment  TargetKind = "comment"
	KindReaction TargetKind = "reaction"
)

type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func EventTarget(id uuid.UUID) Target    { return Target{Kind: KindEvent, ID: id} }
func ChannelTarget(id uuid.UUID) Target  { return Target{Kind: KindChannel, ID: id} }
func PostTarget(id uuid.UUID) Target     { return Target{Kind: KindPost, ID: id} }
func CommentTarget(id uuid.UUID) Target  { return Target{Kind: KindComment, ID: id} }
func ReactionTarget(id uuid.UUID) Target { return Target{Kind: KindReaction, ID: id} }

// ContentTarget maps a reaction/report target type onto a resolver target.
func ContentTarget(t models.TargetType, id uuid.UUID) Target {
	if t == models.TargetComment {
		return CommentTarget(id)
	}
	return PostTarget(id)
}

// EventRef is the resolved chain for a target. Fields below the target's own
// level are zero (an event target has no channel or post).
type EventRef struct {
	EventID   uuid.UUID
	CreatedBy uuid.UUID
	ChannelID uuid.UUID
	PostID    uuid.UUID
	CommentID uuid.UUID
}

// Access is a caller's classification together with the chain it was computed on.
type Access struct {
	Classification Classification
	Ref            EventRef
}

func (a Access) RequireRead() error {
	if a.Classification == Outsider {
		return apperrors.Forbidden("not authorized to access this channel")
	}
	return nil
}

func (a Access) RequireWrite() error {
	if !a.Classification.CanWrite() {
		return apperrors.Forbidden("not authorized to write to this channel")
	}
	return nil
}

func (a Access) RequireModerator() error {
	if !a.Classification.Privileged() {
		return apperrors.Forbidden("only the event creator or an admin can do this")
	}
	return nil
}
