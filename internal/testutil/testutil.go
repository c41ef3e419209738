// Package testutil opens throwaway SQLite stores and seeds the event/channel
// fixtures the service and handler tests share.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/database"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database in t.TempDir(). The pool is capped
// at one connection so SQLite never reports a locked database; callers must
// not issue queries outside a transaction while holding it open.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func NewResolver(db *gorm.DB) *access.Resolver {
	return access.NewResolver(access.NewGormLookup(db))
}

// Fixture is an approved event with its channel. P and Q hold accepted
// registrations, Outsider has none, Admin holds the platform admin role.
type Fixture struct {
	Creator  access.Actor
	Admin    access.Actor
	P        access.Actor
	Q        access.Actor
	Outsider access.Actor

	Event   models.Event
	Channel models.Channel
}

func Seed(t testing.TB, db *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{
		Creator:  CreateUser(t, db, "creator@example.com", models.RoleVolunteer),
		Admin:    CreateUser(t, db, "admin@example.com", models.RoleAdmin),
		P:        CreateUser(t, db, "p@example.com", models.RoleVolunteer),
		Q:        CreateUser(t, db, "q@example.com", models.RoleVolunteer),
		Outsider: CreateUser(t, db, "outsider@example.com", models.RoleVolunteer),
	}

	f.Event, f.Channel = CreateApprovedEvent(t, db, f.Creator.UserID, "Beach cleanup")
	AddParticipant(t, db, f.Event.ID, f.P.UserID)
	AddParticipant(t, db, f.Event.ID, f.Q.UserID)
	return f
}

func CreateUser(t testing.TB, db *gorm.DB, email, role string) access.Actor {
	t.Helper()
	user := models.User{Email: email, Name: email, Password: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return access.Actor{UserID: user.ID, Role: role}
}

func CreateApprovedEvent(t testing.TB, db *gorm.DB, creatorID uuid.UUID, title string) (models.Event, models.Channel) {
	t.Helper()
	now := time.Now()
	event := models.Event{
		Title:      title,
		StartsAt:   now.Add(48 * time.Hour),
		CreatedBy:  creatorID,
		Status:     models.EventApproved,
		ApprovedAt: &now,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	channel := models.Channel{EventID: event.ID, Name: title}
	if err := db.Create(&channel).Error; err != nil {
		t.Fatalf("create channel: %v", err)
	}
	return event, channel
}

// AddParticipant records an accepted registration and the roster row.
func AddParticipant(t testing.TB, db *gorm.DB, eventID, userID uuid.UUID) models.Registration {
	t.Helper()
	reg := models.Registration{EventID: eventID, UserID: userID, Status: models.RegistrationAccepted}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("create registration: %v", err)
	}
	if err := db.Create(&models.EventParticipant{EventID: eventID, UserID: userID}).Error; err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return reg
}

// CreatePost inserts a post directly, bypassing moderation.
func CreatePost(t testing.TB, db *gorm.DB, channelID, authorID uuid.UUID, status models.PostStatus, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{
		ChannelID: channelID,
		AuthorID:  authorID,
		Content:   "post " + uuid.NewString()[:8],
		Status:    status,
		CreatedAt: createdAt,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func CreateComment(t testing.TB, db *gorm.DB, postID, authorID uuid.UUID, parentID *uuid.UUID, createdAt time.Time) models.Comment {
	t.Helper()
	comment := models.Comment{
		PostID:    postID,
		ParentID:  parentID,
		AuthorID:  authorID,
		Content:   "comment " + uuid.NewString()[:8],
		CreatedAt: createdAt,
	}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}
