package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/access"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/volunteer-hub/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
}

// EventService drives the event lifecycle and the registration roster that
// feeds participant classification.
type EventService struct {
	db       *gorm.DB
	resolver *access.Resolver
}

func NewEventService(db *gorm.DB, resolver *access.Resolver) *EventService {
	return &EventService{db: db, resolver: resolver}
}

func (s *EventService) CreateEvent(ctx context.Context, organizer access.Actor, in CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}

	event := models.Event{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		StartsAt:    in.StartsAt,
		CreatedBy:   organizer.UserID,
		Status:      models.EventPending,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, err
	}
	slog.Info("event created", "event_id", event.ID, "user_id", organizer.UserID)
	return &event, nil
}

// GetEvent returns an event's public metadata.
func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	return s.loadEvent(s.db.WithContext(ctx), eventID)
}

// ApproveEvent publishes a pending event and opens its channel. The channel is
// created at most once; approving an approved event returns the existing one.
func (s *EventService) ApproveEvent(ctx context.Context, admin access.Actor, eventID uuid.UUID) (*models.Event, *models.Channel, error) {
	if !admin.IsAdmin() {
		return nil, nil, apperrors.Forbidden("only an admin can approve events")
	}

	var event *models.Event
	var channel models.Channel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Event{}).
			Where("id = ? AND status = ?", eventID, models.EventPending).
			Updates(map[string]interface{}{
				"status":      models.EventApproved,
				"approved_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		var err error
		event, err = s.loadEvent(tx, eventID)
		if err != nil {
			return err
		}
		if event.Status != models.EventApproved {
			return apperrors.Conflict("event is " + string(event.Status))
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).Create(&models.Channel{EventID: eventID, Name: event.Title}).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ?", eventID).First(&channel).Error
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("event approved", "event_id", eventID, "channel_id", channel.ID, "user_id", admin.UserID)
	return event, &channel, nil
}

func (s *EventService) RejectEvent(ctx context.Context, admin access.Actor, eventID uuid.UUID) (*models.Event, error) {
	if !admin.IsAdmin() {
		return nil, apperrors.Forbidden("only an admin can reject events")
	}
	return s.transition(ctx, eventID, []models.EventStatus{models.EventPending}, models.EventRejected)
}

// CancelEvent is available to the creator and admins. The channel stays in
// place for the record.
func (s *EventService) CancelEvent(ctx context.Context, actor access.Actor, eventID uuid.UUID) (*models.Event, error) {
	acc, err := s.resolver.Resolve(ctx, actor, access.EventTarget(eventID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, err
	}
	event, err := s.transition(ctx, eventID, []models.EventStatus{models.EventPending, models.EventApproved}, models.EventCancelled)
	if err != nil {
		return nil, err
	}
	slog.Info("event cancelled", "event_id", eventID, "user_id", actor.UserID)
	return event, nil
}

// transition applies from -> to as a conditional update. Repeating a
// transition that already happened is a no-op; any other state is a conflict.
func (s *EventService) transition(ctx context.Context, eventID uuid.UUID, from []models.EventStatus, to models.EventStatus) (*models.Event, error) {
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Event{}).
		Where("id = ? AND status IN ?", eventID, from).
		Update("status", to).Error; err != nil {
		return nil, err
	}
	event, err := s.loadEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != to {
		return nil, apperrors.Conflict("event is " + string(event.Status))
	}
	return event, nil
}

// Register opens a pending registration for an approved event. A cancelled
// or rejected registration is reopened instead of duplicated.
func (s *EventService) Register(ctx context.Context, user access.Actor, eventID uuid.UUID) (*models.Registration, error) {
	db := s.db.WithContext(ctx)
	event, err := s.loadEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventApproved {
		return nil, apperrors.Conflict("event is not open for registration")
	}
	if event.CreatedBy == user.UserID {
		return nil, apperrors.InvalidInput("organizers cannot register for their own event")
	}

	registration := models.Registration{
		EventID: eventID,
		UserID:  user.UserID,
		Status:  models.RegistrationPending,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&registration)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		reopened := db.Model(&models.Registration{}).
			Where("event_id = ? AND user_id = ? AND status IN ?", eventID, user.UserID,
				[]models.RegistrationStatus{models.RegistrationCancelled, models.RegistrationRejected}).
			Update("status", models.RegistrationPending)
		if reopened.Error != nil {
			return nil, reopened.Error
		}
		if reopened.RowsAffected == 0 {
			return nil, apperrors.Conflict("already registered for this event")
		}
	}

	var stored models.Registration
	if err := db.Where("event_id = ? AND user_id = ?", eventID, user.UserID).First(&stored).Error; err != nil {
		return nil, err
	}
	slog.Info("registration opened", "registration_id", stored.ID, "event_id", eventID, "user_id", user.UserID)
	return &stored, nil
}

func (s *EventService) ListRegistrations(ctx context.Context, moderator access.Actor, eventID uuid.UUID, status models.RegistrationStatus) ([]models.Registration, error) {
	acc, err := s.resolver.Resolve(ctx, moderator, access.EventTarget(eventID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, err
	}

	registrations := []models.Registration{}
	query := s.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err = query.Order("created_at ASC").Find(&registrations).Error
	return registrations, err
}

// AcceptRegistration adds the registrant to the participant roster.
func (s *EventService) AcceptRegistration(ctx context.Context, moderator access.Actor, registrationID uuid.UUID) (*models.Registration, error) {
	reg, err := s.authorizeRegistration(ctx, moderator, registrationID, false)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.moveRegistration(tx, reg, []models.RegistrationStatus{models.RegistrationPending}, models.RegistrationAccepted); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&models.EventParticipant{EventID: reg.EventID, UserID: reg.UserID}).Error
	})
	if err != nil {
		return nil, err
	}
	slog.Info("registration accepted", "registration_id", reg.ID, "event_id", reg.EventID, "user_id", moderator.UserID)
	return s.loadRegistration(s.db.WithContext(ctx), registrationID)
}

// CancelRegistration removes the registrant from the roster. The registrant,
// the event creator and admins may cancel; access is lost on the next request.
func (s *EventService) CancelRegistration(ctx context.Context, actor access.Actor, registrationID uuid.UUID) (*models.Registration, error) {
	reg, err := s.authorizeRegistration(ctx, actor, registrationID, true)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		from := []models.RegistrationStatus{models.RegistrationPending, models.RegistrationAccepted}
		if err := s.moveRegistration(tx, reg, from, models.RegistrationCancelled); err != nil {
			return err
		}
		return tx.Where("event_id = ? AND user_id = ?", reg.EventID, reg.UserID).Delete(&models.EventParticipant{}).Error
	})
	if err != nil {
		return nil, err
	}
	slog.Info("registration cancelled", "registration_id", reg.ID, "event_id", reg.EventID, "user_id", actor.UserID)
	return s.loadRegistration(s.db.WithContext(ctx), registrationID)
}

func (s *EventService) RejectRegistration(ctx context.Context, moderator access.Actor, registrationID uuid.UUID) (*models.Registration, error) {
	reg, err := s.authorizeRegistration(ctx, moderator, registrationID, false)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.moveRegistration(tx, reg, []models.RegistrationStatus{models.RegistrationPending}, models.RegistrationRejected)
	})
	if err != nil {
		return nil, err
	}
	return s.loadRegistration(s.db.WithContext(ctx), registrationID)
}

func (s *EventService) authorizeRegistration(ctx context.Context, actor access.Actor, registrationID uuid.UUID, allowSelf bool) (*models.Registration, error) {
	reg, err := s.loadRegistration(s.db.WithContext(ctx), registrationID)
	if err != nil {
		return nil, err
	}
	if allowSelf && reg.UserID == actor.UserID {
		return reg, nil
	}
	acc, err := s.resolver.Resolve(ctx, actor, access.EventTarget(reg.EventID))
	if err != nil {
		return nil, err
	}
	if err := acc.RequireModerator(); err != nil {
		return nil, err
	}
	return reg, nil
}

// moveRegistration is a conditional status update; reaching the target state
// twice is a no-op.
func (s *EventService) moveRegistration(tx *gorm.DB, reg *models.Registration, from []models.RegistrationStatus, to models.RegistrationStatus) error {
	result := tx.Model(&models.Registration{}).
		Where("id = ? AND status IN ?", reg.ID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	current, err := s.loadRegistration(tx, reg.ID)
	if err != nil {
		return err
	}
	if current.Status != to {
		return apperrors.Conflict("registration is " + string(current.Status))
	}
	return nil
}

func (s *EventService) loadEvent(db *gorm.DB, eventID uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := db.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event")
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) loadRegistration(db *gorm.DB, registrationID uuid.UUID) (*models.Registration, error) {
	var reg models.Registration
	if err := db.Where("id = ?", registrationID).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("registration")
		}
		return nil, err
	}
	return &reg, nil
}
