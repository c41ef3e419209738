package services

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/testutil"
	"gorm.io/gorm"
)

type env struct {
	db       *gorm.DB
	f        *testutil.Fixture
	gate     *ModerationGate
	posts    *PostService
	comments *CommentService
	channels *ChannelService
	ledger   *ReactionLedger
	reports  *ReportService
	events   *EventService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	resolver := testutil.NewResolver(db)
	gate := NewModerationGate(db, resolver)
	return &env{
		db:       db,
		f:        testutil.Seed(t, db),
		gate:     gate,
		posts:    NewPostService(db, resolver, gate),
		comments: NewCommentService(db, resolver),
		channels: NewChannelService(db, resolver),
		ledger:   NewReactionLedger(db, resolver),
		reports:  NewReportService(db, resolver),
		events:   NewEventService(db, resolver),
	}
}

func expectErr(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want %v", err, kind)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
