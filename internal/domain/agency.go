package domain

import "time"

// AgencyTier is the subscription level of an agency account.
type AgencyTier string

const (
	AgencyTierNone    AgencyTier = "none"
	AgencyTierStarter AgencyTier = "starter"
	AgencyTierPro     AgencyTier = "pro"
)

func (t AgencyTier) Valid() bool {
	switch t {
	case AgencyTierNone, AgencyTierStarter, AgencyTierPro:
		return true
	}
	return false
}

type Agency struct {
	ID          int64  `gorm:"column:id;primaryKey" json:"id"`
	UserID      int64  `gorm:"column:user_id;index" json:"user_id"`
	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	District    string `gorm:"column:district" json:"district"`
	Phone       string `gorm:"column:phone" json:"phone,omitempty"`
	LogoURL     string `gorm:"column:logo_url" json:"logo_url,omitempty"`
	BannerURL   string `gorm:"column:banner_url" json:"banner_url,omitempty"`

	SubscriptionTier      AgencyTier `gorm:"column:subscription_tier;default:none" json:"subscription_tier"`
	ModelLimit            int        `gorm:"column:model_limit" json:"model_limit"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at" json:"subscription_expires_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Agency) TableName() string { return "agencies" }
