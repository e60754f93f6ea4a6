package verification

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velvetdir/internal/domain"
)

// Service runs the application lifecycle: a self-service submission
// creates a pending application, an admin decision moves it to
// approved or rejected exactly once. Both decision paths write the
// review stamp with a conditional update so a second reviewer gets a
// clean rejection instead of silently overwriting the first.
type Service struct {
	apps     ApplicationRepository
	profiles ProfileRepository
	audit    AuditRecorder
}

func NewService(apps ApplicationRepository, profiles ProfileRepository, audit AuditRecorder) *Service {
	return &Service{apps: apps, profiles: profiles, audit: audit}
}

// Submit files a new application for the caller's own profile.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, profileID int64, photoURL, documentURL, notes string) (*domain.VerificationApplication, error) {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if p.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotOwner
	}

	pending, err := s.apps.HasPendingForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	now := time.Now()
	app := &domain.VerificationApplication{
		ID:             uuid.New().String(),
		ProfileID:      profileID,
		UserID:         actor.ID,
		Status:         domain.VerificationPending,
		PhotoURL:       photoURL,
		DocumentURL:    documentURL,
		SubmitterNotes: notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	// Submitting counts as owner activity for the risk engine.
	if err := s.profiles.TouchLastActive(ctx, profileID, now); err != nil {
		log.Printf("touch_last_active_failed profile_id=%d error=%q", profileID, err)
	}

	return app, nil
}

// Approve moves a pending application to approved and marks the
// linked profile verified.
func (s *Service) Approve(ctx context.Context, actor domain.Actor, applicationID string) (*domain.VerificationApplication, error) {
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	decided, err := s.apps.Decide(ctx, applicationID, map[string]any{
		"status":      domain.VerificationApproved,
		"reviewed_by": actor.ID,
		"reviewed_at": now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	if !decided {
		return nil, ErrNotPending
	}

	if err := s.profiles.UpdateFields(ctx, app.ProfileID, map[string]any{
		"is_verified": true,
		"updated_at":  now,
	}); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "verification.approve", app, domain.VerificationApproved)

	app.Status = domain.VerificationApproved
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now
	return app, nil
}

// Reject moves a pending application to rejected. Reviewer notes are
// mandatory; the profile's verified flag stays untouched.
func (s *Service) Reject(ctx context.Context, actor domain.Actor, applicationID, notes string) (*domain.VerificationApplication, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, ErrNotesRequired
	}

	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	decided, err := s.apps.Decide(ctx, applicationID, map[string]any{
		"status":      domain.VerificationRejected,
		"admin_notes": notes,
		"reviewed_by": actor.ID,
		"reviewed_at": now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	if !decided {
		return nil, ErrNotPending
	}

	s.record(ctx, actor, "verification.reject", app, domain.VerificationRejected)

	app.Status = domain.VerificationRejected
	app.AdminNotes = notes
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now
	return app, nil
}

// List returns the review queue, oldest first.
func (s *Service) List(ctx context.Context, status domain.VerificationStatus, page, limit int) ([]domain.VerificationApplication, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.apps.ListByStatus(ctx, status, page, limit)
}

func (s *Service) getApplication(ctx context.Context, id string) (*domain.VerificationApplication, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, app *domain.VerificationApplication, newStatus domain.VerificationStatus) {
	log.Printf("audit action=%s actor_id=%d actor_role=%s subject=verification/%s profile_id=%d",
		action, actor.ID, actor.Role, app.ID, app.ProfileID)

	if s.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:          uuid.New().String(),
		ActorID:     actor.ID,
		ActorRole:   string(actor.Role),
		Action:      action,
		SubjectType: "verification_application",
		SubjectID:   app.ProfileID,
		OldValue:    string(domain.VerificationPending),
		NewValue:    string(newStatus),
		CreatedAt:   time.Now(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		log.Printf("audit_write_failed action=%s subject=verification/%s error=%q", action, app.ID, err)
	}
}
