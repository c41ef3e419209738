package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/testutil"
	"github.com/google/uuid"
)

func TestCreateReportTargetsExactlyOne(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostApproved, time.Now())
	comment := testutil.CreateComment(t, e.db, post.ID, e.f.Q.UserID, nil, time.Now())

	report, err := e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{PostID: &post.ID, Reason: "spam"})
	mustNoErr(t, err)
	if report.ChannelID != e.f.Channel.ID || report.Status != models.ReportPending {
		t.Fatalf("report = %+v", report)
	}

	_, err = e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{PostID: &post.ID, CommentID: &comment.ID, Reason: "spam"})
	expectErr(t, err, apperrors.ErrInvalidInput)

	_, err = e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{Reason: "spam"})
	expectErr(t, err, apperrors.ErrInvalidInput)

	var n int64
	e.db.Model(&models.Report{}).Count(&n)
	if n != 1 {
		t.Fatalf("reports stored = %d, want 1", n)
	}
}

func TestCreateReportRouting(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostApproved, time.Now())
	comment := testutil.CreateComment(t, e.db, post.ID, e.f.Q.UserID, nil, time.Now())

	report, err := e.reports.CreateReport(ctx, e.f.P, CreateReportInput{CommentID: &comment.ID, ChannelID: &e.f.Channel.ID, Reason: "rude"})
	mustNoErr(t, err)
	if report.ChannelID != e.f.Channel.ID {
		t.Fatalf("channel = %s", report.ChannelID)
	}

	wrong := uuid.New()
	_, err = e.reports.CreateReport(ctx, e.f.P, CreateReportInput{PostID: &post.ID, ChannelID: &wrong, Reason: "rude"})
	expectErr(t, err, apperrors.ErrInvalidInput)

	missing := uuid.New()
	_, err = e.reports.CreateReport(ctx, e.f.P, CreateReportInput{PostID: &missing, Reason: "rude"})
	expectErr(t, err, apperrors.ErrNotFound)
}

func TestCreateReportRequiresVisibleContent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pending := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostPending, time.Now())
	removed := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostApproved, time.Now())
	mustNoErr(t, e.db.Model(&models.Post{}).Where("id = ?", removed.ID).Update("is_deleted", true).Error)
	onPending := testutil.CreateComment(t, e.db, pending.ID, e.f.P.UserID, nil, time.Now())

	_, err := e.reports.CreateReport(ctx, e.f.Outsider, CreateReportInput{PostID: &pending.ID, Reason: "spam"})
	expectErr(t, err, apperrors.ErrForbidden)

	_, err = e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{PostID: &pending.ID, Reason: "spam"})
	expectErr(t, err, apperrors.ErrNotFound)

	_, err = e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{CommentID: &onPending.ID, Reason: "spam"})
	expectErr(t, err, apperrors.ErrNotFound)

	_, err = e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{PostID: &removed.ID, Reason: "spam"})
	expectErr(t, err, apperrors.ErrNotFound)

	var n int64
	e.db.Model(&models.Report{}).Count(&n)
	if n != 0 {
		t.Fatalf("reports stored = %d, want 0", n)
	}

	// The moderator can still report what only they can see.
	_, err = e.reports.CreateReport(ctx, e.f.Creator, CreateReportInput{PostID: &pending.ID, Reason: "spam"})
	mustNoErr(t, err)
}

func TestListReports(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostApproved, time.Now())

	for i := 0; i < 3; i++ {
		_, err := e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{PostID: &post.ID, Reason: "spam"})
		mustNoErr(t, err)
	}

	reports, total, err := e.reports.ListReports(ctx, e.f.Creator, ReportFilter{ChannelID: e.f.Channel.ID, Limit: 2})
	mustNoErr(t, err)
	if total != 3 || len(reports) != 2 {
		t.Fatalf("total = %d, page = %d", total, len(reports))
	}

	_, total, err = e.reports.ListReports(ctx, e.f.Admin, ReportFilter{ChannelID: e.f.Channel.ID, Status: models.ReportResolved})
	mustNoErr(t, err)
	if total != 0 {
		t.Fatalf("resolved total = %d", total)
	}

	_, _, err = e.reports.ListReports(ctx, e.f.P, ReportFilter{ChannelID: e.f.Channel.ID})
	expectErr(t, err, apperrors.ErrForbidden)
}

func TestHandleReport(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostApproved, time.Now())

	report, err := e.reports.CreateReport(ctx, e.f.Q, CreateReportInput{PostID: &post.ID, Reason: "spam"})
	mustNoErr(t, err)

	_, err = e.reports.HandleReport(ctx, e.f.Q, report.ID, HandleReportInput{Status: models.ReportResolved})
	expectErr(t, err, apperrors.ErrForbidden)

	_, err = e.reports.HandleReport(ctx, e.f.Creator, report.ID, HandleReportInput{Status: models.ReportPending})
	expectErr(t, err, apperrors.ErrInvalidInput)

	_, err = e.reports.HandleReport(ctx, e.f.Creator, report.ID, HandleReportInput{Status: models.ReportRejected, Action: models.ReportActionDeleteContent})
	expectErr(t, err, apperrors.ErrInvalidInput)

	handled, err := e.reports.HandleReport(ctx, e.f.Creator, report.ID, HandleReportInput{
		Status:    models.ReportResolved,
		Action:    models.ReportActionDeleteContent,
		AdminNote: "removed",
	})
	mustNoErr(t, err)
	if handled.Status != models.ReportResolved || handled.HandledBy == nil || *handled.HandledBy != e.f.Creator.UserID {
		t.Fatalf("handled = %+v", handled)
	}

	var stored models.Post
	mustNoErr(t, e.db.Where("id = ?", post.ID).First(&stored).Error)
	if !stored.IsDeleted {
		t.Fatal("delete_content did not soft-delete the post")
	}

	_, err = e.reports.HandleReport(ctx, e.f.Admin, report.ID, HandleReportInput{Status: models.ReportRejected})
	expectErr(t, err, apperrors.ErrConflict)

	_, err = e.reports.HandleReport(ctx, e.f.Admin, uuid.New(), HandleReportInput{Status: models.ReportRejected})
	expectErr(t, err, apperrors.ErrNotFound)
}

func TestHandleReportDeletesComment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	post := testutil.CreatePost(t, e.db, e.f.Channel.ID, e.f.P.UserID, models.PostApproved, time.Now())
	comment := testutil.CreateComment(t, e.db, post.ID, e.f.Q.UserID, nil, time.Now())

	report, err := e.reports.CreateReport(ctx, e.f.P, CreateReportInput{CommentID: &comment.ID, Reason: "rude"})
	mustNoErr(t, err)

	_, err = e.reports.HandleReport(ctx, e.f.Admin, report.ID, HandleReportInput{Status: models.ReportResolved, Action: models.ReportActionDeleteContent})
	mustNoErr(t, err)

	var n int64
	e.db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&n)
	if n != 0 {
		t.Fatal("delete_content left the comment in place")
	}
}
