package repository

import (
	"context"
	"time"

	"velvetdir/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) DB() *gorm.DB { return r.db }

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	var s domain.Subscription
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) GetActiveByProfileID(ctx context.Context, profileID int64) (*domain.Subscription, error) {
	var s domain.Subscription
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND status = ?", profileID, domain.SubscriptionActive).
		Order("created_at DESC").
		First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListExpired returns active subscriptions whose end_date has passed,
// oldest first, capped at limit so a sweep never holds an unbounded
// result set.
func (r *SubscriptionRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", domain.SubscriptionActive, now).
		Order("end_date ASC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}

// CountExpiringWithin counts active subscriptions that will lapse
// inside the given window.
func (r *SubscriptionRepository) CountExpiringWithin(ctx context.Context, now time.Time, window time.Duration) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date >= ? AND end_date < ?",
			domain.SubscriptionActive, now, now.Add(window)).
		Count(&count).Error
	return count, err
}

// MarkExpired flips status only when still active, so a re-run of the
// sweep is a no-op for rows already processed.
func (r *SubscriptionRepository) MarkExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("id = ? AND status = ?", id, domain.SubscriptionActive).
		Updates(map[string]any{
			"status":     domain.SubscriptionExpired,
			"updated_at": now,
		})
	return res.RowsAffected > 0, res.Error
}
