package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/testutil"
	"github.com/google/uuid"
)

func countReactions(t *testing.T, e *env, userID, targetID uuid.UUID) int64 {
	t.Helper()
	var n int64
	mustNoErr(t, e.db.Model(&models.Reaction{}).Where("user_id = ? AND target_id = ?", userID, targetID).Count(&n).Error)
	return n
}

func TestReactTwiceKeepsOneRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())
	key := ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: "like"}

	first, err := e.ledger.React(ctx, e.f.P, key)
	mustNoErr(t, err)
	second, err := e.ledger.React(ctx, e.f.P, key)
	mustNoErr(t, err)

	if first.ID != second.ID {
		t.Fatalf("second react created a new row: %s != %s", first.ID, second.ID)
	}
	if n := countReactions(t, e, e.f.P.UserID, post.ID); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestConcurrentReactsLeaveOneRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())
	key := ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: "love"}

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.ledger.React(ctx, e.f.P, key); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent react: %v", err)
	}

	if got := countReactions(t, e, e.f.P.UserID, post.ID); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}
}

func TestDistinctReactionTypesCoexist(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())

	for _, typ := range []string{"like", "love"} {
		_, err := e.ledger.React(ctx, e.f.P, ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: typ})
		mustNoErr(t, err)
	}
	_, err := e.ledger.React(ctx, e.f.Q, ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: "like"})
	mustNoErr(t, err)

	counts, err := e.ledger.Counts(ctx, e.f.Creator, models.TargetPost, post.ID)
	mustNoErr(t, err)
	want := []ReactionCount{{Type: "like", Count: 2}, {Type: "love", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %+v, want %+v", counts, want)
		}
	}
}

func TestToggle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())
	key := ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: "thanks"}

	reaction, active, err := e.ledger.Toggle(ctx, e.f.P, key)
	mustNoErr(t, err)
	if !active || reaction == nil {
		t.Fatalf("first toggle: active=%v reaction=%v", active, reaction)
	}

	reaction, active, err = e.ledger.Toggle(ctx, e.f.P, key)
	mustNoErr(t, err)
	if active || reaction != nil {
		t.Fatalf("second toggle: active=%v reaction=%v", active, reaction)
	}
	if n := countReactions(t, e, e.f.P.UserID, post.ID); n != 0 {
		t.Fatalf("rows = %d after toggling off", n)
	}
}

func TestReactRequiresWriteAccessAndVisibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	approved := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())
	pending := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostPending, time.Now())

	_, err := e.ledger.React(ctx, e.f.Outsider, ReactionKey{TargetType: models.TargetPost, TargetID: approved.ID, Type: "like"})
	expectErr(t, err, apperrors.ErrForbidden)

	_, err = e.ledger.React(ctx, e.f.Q, ReactionKey{TargetType: models.TargetPost, TargetID: pending.ID, Type: "like"})
	expectErr(t, err, apperrors.ErrNotFound)

	_, err = e.ledger.React(ctx, e.f.P, ReactionKey{TargetType: models.TargetPost, TargetID: approved.ID, Type: "angry"})
	expectErr(t, err, apperrors.ErrInvalidInput)

	_, err = e.ledger.React(ctx, e.f.P, ReactionKey{TargetType: "event", TargetID: approved.ID, Type: "like"})
	expectErr(t, err, apperrors.ErrInvalidInput)

	_, err = e.ledger.React(ctx, e.f.P, ReactionKey{TargetType: models.TargetComment, TargetID: uuid.New(), Type: "like"})
	expectErr(t, err, apperrors.ErrNotFound)
}

func TestReactOnComment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())
	comment := testutil.CreateComment(t, e.db, post.ID, e.f.Q.UserID, nil, time.Now())

	reaction, err := e.ledger.React(ctx, e.f.P, ReactionKey{TargetType: models.TargetComment, TargetID: comment.ID, Type: "haha"})
	mustNoErr(t, err)
	if reaction.TargetType != models.TargetComment || reaction.TargetID != comment.ID {
		t.Fatalf("reaction = %+v", reaction)
	}

	view, err := e.channels.GetPost(ctx, e.f.Q, post.ID)
	mustNoErr(t, err)
	if len(view.Comments) != 1 || len(view.Comments[0].Reactions) != 1 || view.Comments[0].Reactions[0].Count != 1 {
		t.Fatalf("comment reactions = %+v", view.Comments)
	}
}

func TestUnreact(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())
	key := ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: "like"}

	_, err := e.ledger.React(ctx, e.f.P, key)
	mustNoErr(t, err)

	mustNoErr(t, e.ledger.Unreact(ctx, e.f.P, key))
	mustNoErr(t, e.ledger.Unreact(ctx, e.f.P, key))
	if n := countReactions(t, e, e.f.P.UserID, post.ID); n != 0 {
		t.Fatalf("rows = %d after unreact", n)
	}
}

func TestUnreactByIDPermissions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.Creator.UserID, models.PostApproved, time.Now())

	react := func() *models.Reaction {
		r, err := e.ledger.React(ctx, e.f.P, ReactionKey{TargetType: models.TargetPost, TargetID: post.ID, Type: "wow"})
		mustNoErr(t, err)
		return r
	}

	r := react()
	expectErr(t, e.ledger.UnreactByID(ctx, e.f.Q, r.ID), apperrors.ErrForbidden)
	expectErr(t, e.ledger.UnreactByID(ctx, e.f.Outsider, r.ID), apperrors.ErrForbidden)
	mustNoErr(t, e.ledger.UnreactByID(ctx, e.f.P, r.ID))
	expectErr(t, e.ledger.UnreactByID(ctx, e.f.P, r.ID), apperrors.ErrNotFound)

	r = react()
	mustNoErr(t, e.ledger.UnreactByID(ctx, e.f.Creator, r.ID))

	r = react()
	mustNoErr(t, e.ledger.UnreactByID(ctx, e.f.Admin, r.ID))
}
