package sweep

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"velvetdir/internal/domain"
	"velvetdir/internal/modules/tier"
)

// Mode selects which reconciliation passes a sweep run executes.
type Mode string

const (
	ModeCheckSubscriptions Mode = "check-subscriptions"
	ModeResetBoosts        Mode = "reset-boosts"
	ModeAll                Mode = "all"
)

var ErrUnknownMode = errors.New("unknown sweep mode")

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCheckSubscriptions, ModeResetBoosts, ModeAll:
		return Mode(s), nil
	}
	return "", ErrUnknownMode
}

// Failure is one record the sweep could not process. The batch as a
// whole still succeeds.
type Failure struct {
	SubscriptionID string `json:"subscription_id"`
	Reason         string `json:"reason"`
}

// Report summarizes one sweep run.
type Report struct {
	Mode          Mode      `json:"mode"`
	Expired       int       `json:"expired"`
	Downgraded    int       `json:"downgraded"`
	PremiumResets int64     `json:"premium_resets"`
	EliteResets   int64     `json:"elite_resets"`
	Failures      []Failure `json:"failures"`
	RanAt         time.Time `json:"ran_at"`
}

type SubscriptionRepository interface {
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Subscription, error)
	MarkExpired(ctx context.Context, id string, now time.Time) (bool, error)
}

type ProfileRepository interface {
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	DB() *gorm.DB
}

const defaultBatchSize = 200

// Service is the periodic reconciliation job. Scheduling lives
// outside (cmd/sweep or the guarded HTTP trigger); every pass here is
// safe to re-run.
type Service struct {
	subs      SubscriptionRepository
	profiles  ProfileRepository
	batchSize int
}

func NewService(subs SubscriptionRepository, profiles ProfileRepository) *Service {
	return &Service{subs: subs, profiles: profiles, batchSize: defaultBatchSize}
}

// Run executes the requested passes. ModeAll runs the subscription
// check every time and the blind boost reset only on the first day of
// the month; requesting ModeResetBoosts explicitly forces the reset.
func (s *Service) Run(ctx context.Context, mode Mode, now time.Time) (*Report, error) {
	report := &Report{Mode: mode, Failures: []Failure{}, RanAt: now}

	if mode == ModeCheckSubscriptions || mode == ModeAll {
		if err := s.checkSubscriptions(ctx, now, report); err != nil {
			return nil, err
		}
	}

	if mode == ModeResetBoosts || (mode == ModeAll && now.Day() == 1) {
		if err := s.resetBoosts(ctx, now, report); err != nil {
			return nil, err
		}
	}

	log.Printf("sweep_done mode=%s expired=%d downgraded=%d premium_resets=%d elite_resets=%d failures=%d",
		mode, report.Expired, report.Downgraded, report.PremiumResets, report.EliteResets, len(report.Failures))

	return report, nil
}

// checkSubscriptions expires overdue subscriptions and downgrades
// their profiles to free, in bounded batches. Each record is handled
// independently; failures are collected and reported, never fatal.
func (s *Service) checkSubscriptions(ctx context.Context, now time.Time, report *Report) error {
	for {
		batch, err := s.subs.ListExpired(ctx, now, s.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		progressed := 0
		for _, sub := range batch {
			flipped, err := s.subs.MarkExpired(ctx, sub.ID, now)
			if err != nil {
				report.Failures = append(report.Failures, Failure{SubscriptionID: sub.ID, Reason: err.Error()})
				continue
			}
			if !flipped {
				// Another sweep got here first.
				progressed++
				continue
			}
			report.Expired++
			progressed++

			err = s.profiles.UpdateFields(ctx, sub.ProfileID, map[string]any{
				"tier":             domain.TierFree,
				"is_premium":       false,
				"boosts_remaining": 0,
				"updated_at":       now,
			})
			if err != nil {
				report.Failures = append(report.Failures, Failure{SubscriptionID: sub.ID, Reason: err.Error()})
				continue
			}
			report.Downgraded++
		}

		// Every row in this batch failed; fetching again would return
		// the same rows forever.
		if progressed == 0 {
			return nil
		}
		if len(batch) < s.batchSize {
			return nil
		}
	}
}

// resetBoosts is the blind monthly allowance reset: every premium
// profile back to the premium allowance, every elite profile back to
// the unlimited sentinel, regardless of usage.
func (s *Service) resetBoosts(ctx context.Context, now time.Time, report *Report) error {
	db := s.profiles.DB().WithContext(ctx)

	premium := db.Model(&domain.Profile{}).
		Where("tier = ?", domain.TierPremium).
		Updates(map[string]any{
			"boosts_remaining": tier.ProfilePlanFor(domain.TierPremium).Boosts.Sentinel(),
			"updated_at":       now,
		})
	if premium.Error != nil {
		return premium.Error
	}
	report.PremiumResets = premium.RowsAffected

	elite := s.profiles.DB().WithContext(ctx).Model(&domain.Profile{}).
		Where("tier = ?", domain.TierElite).
		Updates(map[string]any{
			"boosts_remaining": tier.ProfilePlanFor(domain.TierElite).Boosts.Sentinel(),
			"updated_at":       now,
		})
	if elite.Error != nil {
		return elite.Error
	}
	report.EliteResets = elite.RowsAffected

	return nil
}
