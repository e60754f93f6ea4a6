package boost

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"velvetdir/internal/domain"
	"velvetdir/internal/modules/tier"
)

// BoostDuration is the fixed promotion window.
const BoostDuration = 24 * time.Hour

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	DB() *gorm.DB
}

type AuditRecorder interface {
	Create(ctx context.Context, e *domain.AuditEntry) error
}

// Service schedules boost windows. Self-service activation is a
// single conditional UPDATE carrying every eligibility predicate in
// its WHERE clause; that statement is the serialization point, so two
// concurrent activations for one profile can never both succeed and
// at most one decrement is ever observed. A read-then-write version
// of this is racy and deliberately not implemented.
type Service struct {
	profiles ProfileRepository
	audit    AuditRecorder
}

func NewService(profiles ProfileRepository, audit AuditRecorder) *Service {
	return &Service{profiles: profiles, audit: audit}
}

func boostableTiers() []domain.ProfileTier {
	var tiers []domain.ProfileTier
	for _, plan := range tier.ProfilePlans() {
		if plan.CanBoost {
			tiers = append(tiers, plan.Tier)
		}
	}
	return tiers
}

func unlimitedTiers() []domain.ProfileTier {
	var tiers []domain.ProfileTier
	for _, plan := range tier.ProfilePlans() {
		if plan.Boosts.IsUnlimited() {
			tiers = append(tiers, plan.Tier)
		}
	}
	return tiers
}

// Activate starts a 24h boost for the profile if it is eligible right
// now. Unlimited tiers keep their counter; finite tiers decrement by
// exactly one.
func (s *Service) Activate(ctx context.Context, profileID int64, now time.Time) (*Status, error) {
	until := now.Add(BoostDuration)
	unlimited := unlimitedTiers()

	res := s.profiles.DB().WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", profileID).
		Where("tier IN ?", boostableTiers()).
		Where("(boosted_until IS NULL OR boosted_until <= ?)", now).
		Where("(tier IN ? OR boosts_remaining > 0)", unlimited).
		Updates(map[string]any{
			"boosted_until": until,
			"boosts_remaining": gorm.Expr(
				"CASE WHEN tier IN ? THEN boosts_remaining ELSE boosts_remaining - 1 END",
				unlimited,
			),
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.classifyActivationFailure(ctx, profileID, now)
	}

	return s.CurrentStatus(ctx, profileID, now)
}

// classifyActivationFailure re-reads the profile after the guarded
// UPDATE matched nothing and maps the state to the precise rejection.
// Checked in contract order: already boosted, tier, allowance.
func (s *Service) classifyActivationFailure(ctx context.Context, profileID int64, now time.Time) error {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	switch {
	case p.BoostActive(now):
		return ErrAlreadyBoosted
	case !tier.ProfilePlanFor(p.Tier).CanBoost:
		return ErrTierNotAllowed
	default:
		return ErrNoBoostsRemaining
	}
}

// CurrentStatus reports tier, structural permission, live window and
// remaining allowance for one profile.
func (s *Service) CurrentStatus(ctx context.Context, profileID int64, now time.Time) (*Status, error) {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	plan := tier.ProfilePlanFor(p.Tier)
	st := &Status{
		ProfileID: p.ID,
		Tier:      string(p.Tier),
		CanBoost:  plan.CanBoost,
		Active:    p.BoostActive(now),
		Allowance: allowanceLabel(plan, p.BoostsRemaining),
	}
	if st.Active {
		st.BoostedUntil = p.BoostedUntil
		st.RemainingSec = int64(p.BoostedUntil.Sub(now).Seconds())
	}
	return st, nil
}

func allowanceLabel(plan tier.ProfilePlan, remaining int) string {
	if plan.Boosts.IsUnlimited() {
		return "unlimited"
	}
	return tier.Finite(remaining).String()
}

// ApplyAdminAction executes an operator override. These bypass the
// eligibility checks on purpose but stay single-row atomic writes,
// and each one is audited.
func (s *Service) ApplyAdminAction(ctx context.Context, actor domain.Actor, profileID int64, action AdminAction, now time.Time) (*Status, error) {
	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	db := s.profiles.DB().WithContext(ctx).Model(&domain.Profile{}).Where("id = ?", profileID)

	switch action {
	case ActionReset:
		allowance := tier.ProfilePlanFor(p.Tier).Boosts.Sentinel()
		err = db.Updates(map[string]any{"boosts_remaining": allowance, "updated_at": now}).Error
	case ActionGrant:
		err = db.Updates(map[string]any{
			"boosts_remaining": gorm.Expr("boosts_remaining + 1"),
			"updated_at":       now,
		}).Error
	case ActionActivate:
		err = db.Updates(map[string]any{"boosted_until": now.Add(BoostDuration), "updated_at": now}).Error
	case ActionDeactivate:
		err = db.Updates(map[string]any{"boosted_until": nil, "updated_at": now}).Error
	default:
		return nil, ErrUnknownAction
	}
	if err != nil {
		return nil, err
	}

	s.recordAdminAction(ctx, actor, profileID, action)
	return s.CurrentStatus(ctx, profileID, now)
}

func (s *Service) recordAdminAction(ctx context.Context, actor domain.Actor, profileID int64, action AdminAction) {
	log.Printf("audit action=profile.boost.%s actor_id=%d actor_role=%s subject=profile/%d",
		action, actor.ID, actor.Role, profileID)

	if s.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:          uuid.New().String(),
		ActorID:     actor.ID,
		ActorRole:   string(actor.Role),
		Action:      "profile.boost." + string(action),
		SubjectType: "profile",
		SubjectID:   profileID,
		CreatedAt:   time.Now(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		log.Printf("audit_write_failed action=profile.boost.%s subject=profile/%d error=%q", action, profileID, err)
	}
}
