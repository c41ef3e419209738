package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/testutil"
)

func TestApproveEventCreatesChannelOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	event, err := e.events.CreateEvent(ctx, e.f.Creator, CreateEventInput{Title: "Tree planting", StartsAt: time.Now().Add(24 * time.Hour)})
	mustNoErr(t, err)
	if event.Status != models.EventPending {
		t.Fatalf("status = %s", event.Status)
	}

	_, _, err = e.events.ApproveEvent(ctx, e.f.Creator, event.ID)
	expectErr(t, err, apperrors.ErrForbidden)

	approved, channel, err := e.events.ApproveEvent(ctx, e.f.Admin, event.ID)
	mustNoErr(t, err)
	if approved.Status != models.EventApproved || approved.ApprovedAt == nil {
		t.Fatalf("event = %+v", approved)
	}

	_, again, err := e.events.ApproveEvent(ctx, e.f.Admin, event.ID)
	mustNoErr(t, err)
	if again.ID != channel.ID {
		t.Fatalf("second approve returned channel %s, want %s", again.ID, channel.ID)
	}

	var n int64
	e.db.Model(&models.Channel{}).Where("event_id = ?", event.ID).Count(&n)
	if n != 1 {
		t.Fatalf("channels = %d, want 1", n)
	}
}

func TestEventTransitions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	event, err := e.events.CreateEvent(ctx, e.f.Creator, CreateEventInput{Title: "Food drive", StartsAt: time.Now()})
	mustNoErr(t, err)

	rejected, err := e.events.RejectEvent(ctx, e.f.Admin, event.ID)
	mustNoErr(t, err)
	if rejected.Status != models.EventRejected {
		t.Fatalf("status = %s", rejected.Status)
	}
	_, _, err = e.events.ApproveEvent(ctx, e.f.Admin, event.ID)
	expectErr(t, err, apperrors.ErrConflict)

	_, err = e.events.CancelEvent(ctx, e.f.P, e.f.Event.ID)
	expectErr(t, err, apperrors.ErrForbidden)
	cancelled, err := e.events.CancelEvent(ctx, e.f.Creator, e.f.Event.ID)
	mustNoErr(t, err)
	if cancelled.Status != models.EventCancelled {
		t.Fatalf("status = %s", cancelled.Status)
	}

	_, err = e.events.CreateEvent(ctx, e.f.Creator, CreateEventInput{Title: " "})
	expectErr(t, err, apperrors.ErrInvalidInput)
}

func TestRegistrationLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	volunteer := testutil.CreateUser(t, e.db, "new@example.com", models.RoleVolunteer)
	target := access.EventTarget(e.f.Event.ID)
	resolver := testutil.NewResolver(e.db)

	reg, err := e.events.Register(ctx, volunteer, e.f.Event.ID)
	mustNoErr(t, err)
	if reg.Status != models.RegistrationPending {
		t.Fatalf("status = %s", reg.Status)
	}
	_, err = e.events.Register(ctx, volunteer, e.f.Event.ID)
	expectErr(t, err, apperrors.ErrConflict)

	c, err := resolver.Classify(ctx, volunteer, target)
	mustNoErr(t, err)
	if c != access.Outsider {
		t.Fatalf("pending registrant classified as %s", c)
	}

	_, err = e.events.AcceptRegistration(ctx, e.f.P, reg.ID)
	expectErr(t, err, apperrors.ErrForbidden)

	accepted, err := e.events.AcceptRegistration(ctx, e.f.Creator, reg.ID)
	mustNoErr(t, err)
	if accepted.Status != models.RegistrationAccepted {
		t.Fatalf("status = %s", accepted.Status)
	}
	c, err = resolver.Classify(ctx, volunteer, target)
	mustNoErr(t, err)
	if c != access.Participant {
		t.Fatalf("accepted registrant classified as %s", c)
	}

	_, err = e.events.CancelRegistration(ctx, volunteer, reg.ID)
	mustNoErr(t, err)
	c, err = resolver.Classify(ctx, volunteer, target)
	mustNoErr(t, err)
	if c != access.Outsider {
		t.Fatalf("cancelled registrant classified as %s", c)
	}

	reopened, err := e.events.Register(ctx, volunteer, e.f.Event.ID)
	mustNoErr(t, err)
	if reopened.ID != reg.ID || reopened.Status != models.RegistrationPending {
		t.Fatalf("reopened = %+v", reopened)
	}

	rejected, err := e.events.RejectRegistration(ctx, e.f.Admin, reg.ID)
	mustNoErr(t, err)
	if rejected.Status != models.RegistrationRejected {
		t.Fatalf("status = %s", rejected.Status)
	}
	_, err = e.events.AcceptRegistration(ctx, e.f.Admin, reg.ID)
	expectErr(t, err, apperrors.ErrConflict)

	list, err := e.events.ListRegistrations(ctx, e.f.Creator, e.f.Event.ID, "")
	mustNoErr(t, err)
	if len(list) != 3 {
		t.Fatalf("registrations = %d, want 3", len(list))
	}
	_, err = e.events.ListRegistrations(ctx, e.f.Q, e.f.Event.ID, "")
	expectErr(t, err, apperrors.ErrForbidden)
}

func TestRegisterRequiresApprovedEvent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	pending, err := e.events.CreateEvent(ctx, e.f.Creator, CreateEventInput{Title: "Later", StartsAt: time.Now()})
	mustNoErr(t, err)
	_, err = e.events.Register(ctx, e.f.Q, pending.ID)
	expectErr(t, err, apperrors.ErrConflict)

	_, err = e.events.Register(ctx, e.f.Creator, e.f.Event.ID)
	expectErr(t, err, apperrors.ErrInvalidInput)
}
