package domain

import "time"

// SubscriptionStatus of a paid tier subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription records a paid period for a profile's tier. The
// sweeper marks it expired once end_date passes and downgrades the
// linked profile.
type Subscription struct {
	ID        string             `gorm:"column:id;primaryKey" json:"id"`
	ProfileID int64              `gorm:"column:profile_id;index" json:"profile_id"`
	Tier      ProfileTier        `gorm:"column:tier" json:"tier"`
	Status    SubscriptionStatus `gorm:"column:status;index" json:"status"`
	StartedAt time.Time          `gorm:"column:started_at" json:"started_at"`
	EndDate   *time.Time         `gorm:"column:end_date" json:"end_date,omitempty"`
	CreatedAt time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) ExpiredAt(now time.Time) bool {
	return s.EndDate != nil && s.EndDate.Before(now)
}
