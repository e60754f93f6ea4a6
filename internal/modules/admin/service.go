package admin

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velvetdir/internal/domain"
	"velvetdir/internal/modules/fraud"
	"velvetdir/internal/repository"
)

var ErrProfileNotFound = errors.New("profile not found")

// expiringWindow is how far ahead the dashboard looks for
// subscriptions about to lapse.
const expiringWindow = 7 * 24 * time.Hour

// Service backs the operator console: profile listing with fraud
// analysis, visibility toggles and the dashboard aggregate. Tier,
// boost and verification decisions live in their own modules; the
// admin handler only routes to them.
type Service struct {
	profiles      *repository.ProfileRepository
	agencies      *repository.AgencyRepository
	verifications *repository.VerificationRepository
	subscriptions *repository.SubscriptionRepository
	audit         *repository.AuditRepository
}

func NewService(
	profiles *repository.ProfileRepository,
	agencies *repository.AgencyRepository,
	verifications *repository.VerificationRepository,
	subscriptions *repository.SubscriptionRepository,
	audit *repository.AuditRepository,
) *Service {
	return &Service{
		profiles:      profiles,
		agencies:      agencies,
		verifications: verifications,
		subscriptions: subscriptions,
		audit:         audit,
	}
}

// ListProfiles returns one console page with fraud analysis computed
// per row. flaggedOnly keeps rows at or above the medium level;
// sortByScore reorders the page by descending risk.
func (s *Service) ListProfiles(ctx context.Context, district string, flaggedOnly, sortByScore bool, page, limit int) (*ProfileListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	profiles, total, err := s.profiles.ListAdmin(ctx, district, page, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]ProfileRow, 0, len(profiles))
	for i := range profiles {
		analysis := fraud.Score(&profiles[i], now)
		if flaggedOnly && !analysis.Level.Flagged() {
			continue
		}
		rows = append(rows, ProfileRow{Profile: profiles[i], Fraud: analysis})
	}

	if sortByScore {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Fraud.Score > rows[j].Fraud.Score
		})
	}

	return &ProfileListResponse{Profiles: rows, Total: total, Page: page, Limit: limit}, nil
}

// AnalyzeProfile computes the full fraud analysis for one profile.
func (s *Service) AnalyzeProfile(ctx context.Context, id int64) (*fraud.Analysis, error) {
	p, err := s.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	analysis := fraud.Score(p, time.Now())
	return &analysis, nil
}

// SetProfileDisabled toggles listing visibility. Idempotent: setting
// the current state again is a no-op, not an error.
func (s *Service) SetProfileDisabled(ctx context.Context, actor domain.Actor, id int64, disabled bool) (*domain.Profile, error) {
	p, err := s.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDisabled == disabled {
		return p, nil
	}

	now := time.Now()
	if err := s.profiles.UpdateFields(ctx, id, map[string]any{
		"is_disabled": disabled,
		"updated_at":  now,
	}); err != nil {
		return nil, err
	}

	action := "profile.enable"
	if disabled {
		action = "profile.disable"
	}
	s.record(ctx, actor, action, id, boolWord(!disabled), boolWord(disabled))

	p.IsDisabled = disabled
	p.UpdatedAt = now
	return p, nil
}

// AuditTrail returns the most recent audit entries for one profile.
func (s *Service) AuditTrail(ctx context.Context, id int64, limit int) ([]domain.AuditEntry, error) {
	if _, err := s.getProfile(ctx, id); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.audit.ListBySubject(ctx, "profile", id, limit)
}

// Dashboard assembles the operator statistics in one pass.
func (s *Service) Dashboard(ctx context.Context) (*Statistics, error) {
	now := time.Now()
	stats := &Statistics{}

	var err error
	if stats.Profiles, err = s.profiles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveProfiles, err = s.profiles.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.Agencies, err = s.agencies.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingVerifications, err = s.verifications.CountByStatus(ctx, domain.VerificationPending); err != nil {
		return nil, err
	}
	if stats.ActiveBoosts, err = s.profiles.CountBoosted(ctx, now); err != nil {
		return nil, err
	}
	if stats.ExpiringSubscriptions, err = s.subscriptions.CountExpiringWithin(ctx, now, expiringWindow); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) getProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, subjectID int64, oldValue, newValue string) {
	log.Printf("audit action=%s actor_id=%d actor_role=%s subject=profile/%d old=%q new=%q",
		action, actor.ID, actor.Role, subjectID, oldValue, newValue)

	if s.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:          uuid.New().String(),
		ActorID:     actor.ID,
		ActorRole:   string(actor.Role),
		Action:      action,
		SubjectType: "profile",
		SubjectID:   subjectID,
		OldValue:    oldValue,
		NewValue:    newValue,
		CreatedAt:   time.Now(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		log.Printf("audit_write_failed action=%s subject=profile/%d error=%q", action, subjectID, err)
	}
}

func boolWord(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "enabled"
}

func parseBoolParam(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}
