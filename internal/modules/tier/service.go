package tier

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velvetdir/internal/domain"
)

// Service owns tier state for profiles and agencies. Every change is
// one conditional row write plus an audit record; audit failures are
// logged and never roll back the change.
type Service struct {
	profiles ProfileRepository
	agencies AgencyRepository
	audit    AuditRecorder
}

func NewService(profiles ProfileRepository, agencies AgencyRepository, audit AuditRecorder) *Service {
	return &Service{profiles: profiles, agencies: agencies, audit: audit}
}

// SetProfileTier moves a profile to a new tier. The row write carries
// the tier, the legacy is_premium flag, the allowance reset and the
// optional expiry together, so no partial state is ever visible.
func (s *Service) SetProfileTier(ctx context.Context, actor domain.Actor, profileID int64, newTier string, expiresAt *time.Time) (*domain.Profile, error) {
	t, err := ParseProfileTier(newTier)
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	oldTier := p.Tier
	if oldTier == t {
		return nil, ErrTierUnchanged
	}

	plan := ProfilePlanFor(t)
	now := time.Now()
	fields := map[string]any{
		"tier":             t,
		"is_premium":       t != domain.TierFree,
		"boosts_remaining": plan.Boosts.Sentinel(),
		"updated_at":       now,
	}
	if expiresAt != nil {
		fields["subscription_expires_at"] = *expiresAt
	}

	if err := s.profiles.UpdateFields(ctx, profileID, fields); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "profile.tier.change", "profile", profileID, string(oldTier), string(t))

	p.Tier = t
	p.IsPremium = t != domain.TierFree
	p.BoostsRemaining = plan.Boosts.Sentinel()
	if expiresAt != nil {
		p.SubscriptionExpiresAt = expiresAt
	}
	p.UpdatedAt = now
	return p, nil
}

// SetAgencyTier moves an agency to a new subscription tier. The model
// limit defaults from the catalog and can be overridden with any
// non-negative value.
func (s *Service) SetAgencyTier(ctx context.Context, actor domain.Actor, agencyID int64, newTier string, modelLimit *int, expiresAt *time.Time) (*domain.Agency, error) {
	t, err := ParseAgencyTier(newTier)
	if err != nil {
		return nil, err
	}
	if modelLimit != nil && *modelLimit < 0 {
		return nil, ErrInvalidModelLimit
	}

	a, err := s.agencies.GetByID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}

	oldTier := a.SubscriptionTier
	if oldTier == t {
		return nil, ErrTierUnchanged
	}

	limit := AgencyPlanFor(t).ModelLimit
	if modelLimit != nil {
		limit = *modelLimit
	}

	now := time.Now()
	fields := map[string]any{
		"subscription_tier": t,
		"model_limit":       limit,
		"updated_at":        now,
	}
	if expiresAt != nil {
		fields["subscription_expires_at"] = *expiresAt
	}

	if err := s.agencies.UpdateFields(ctx, agencyID, fields); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "agency.tier.change", "agency", agencyID, string(oldTier), string(t))

	a.SubscriptionTier = t
	a.ModelLimit = limit
	if expiresAt != nil {
		a.SubscriptionExpiresAt = expiresAt
	}
	a.UpdatedAt = now
	return a, nil
}

// SlotUsage reports occupied model slots vs the agency's limit.
// Over-limit is flagged for the operator, never hard-blocked.
type SlotUsage struct {
	AgencyID  int64 `json:"agency_id"`
	Occupied  int   `json:"occupied"`
	Limit     int   `json:"limit"`
	OverLimit bool  `json:"over_limit"`
}

func (s *Service) AgencySlotUsage(ctx context.Context, agencyID int64) (*SlotUsage, error) {
	a, err := s.agencies.GetByID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}

	occupied, err := s.profiles.CountByAgencyID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	return &SlotUsage{
		AgencyID:  agencyID,
		Occupied:  int(occupied),
		Limit:     a.ModelLimit,
		OverLimit: int(occupied) > a.ModelLimit,
	}, nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action, subjectType string, subjectID int64, oldValue, newValue string) {
	entry := &domain.AuditEntry{
		ID:          uuid.New().String(),
		ActorID:     actor.ID,
		ActorRole:   string(actor.Role),
		Action:      action,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		OldValue:    oldValue,
		NewValue:    newValue,
		CreatedAt:   time.Now(),
	}

	log.Printf("audit action=%s actor_id=%d actor_role=%s subject=%s/%d old=%q new=%q",
		action, actor.ID, actor.Role, subjectType, subjectID, oldValue, newValue)

	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		log.Printf("audit_write_failed action=%s subject=%s/%d error=%q", action, subjectType, subjectID, err)
	}
}
