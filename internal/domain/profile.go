package domain

import "time"

// ProfileTier is the entitlement level of a single listing.
type ProfileTier string

const (
	TierFree    ProfileTier = "free"
	TierPremium ProfileTier = "premium"
	TierElite   ProfileTier = "elite"
)

func (t ProfileTier) Valid() bool {
	switch t {
	case TierFree, TierPremium, TierElite:
		return true
	}
	return false
}

// Districts of the city a profile can be listed in. Fixed set.
var Districts = []string{
	"center", "north", "south", "east",
	"west", "riverside", "oldtown", "hillside",
}

func ValidDistrict(d string) bool {
	for _, known := range Districts {
		if d == known {
			return true
		}
	}
	return false
}

// Profile is a service-provider listing. Image/service/language lists
// are stored as JSON strings (see pkg/utils) so the same schema works
// on both postgres and sqlite.
type Profile struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	UserID   int64  `gorm:"column:user_id;index" json:"user_id"`
	AgencyID *int64 `gorm:"column:agency_id;index" json:"agency_id,omitempty"`

	Name        string `gorm:"column:name" json:"name"`
	Age         int    `gorm:"column:age" json:"age"`
	District    string `gorm:"column:district;index" json:"district"`
	PriceStart  int    `gorm:"column:price_start" json:"price_start"`
	Description string `gorm:"column:description" json:"description"`
	Images      string `gorm:"column:images" json:"-"`
	Services    string `gorm:"column:services" json:"-"`
	Languages   string `gorm:"column:languages" json:"-"`

	Phone    string `gorm:"column:phone" json:"phone,omitempty"`
	Telegram string `gorm:"column:telegram" json:"telegram,omitempty"`
	WhatsApp string `gorm:"column:whatsapp" json:"whatsapp,omitempty"`
	Viber    string `gorm:"column:viber" json:"viber,omitempty"`

	IsVerified     bool       `gorm:"column:is_verified" json:"is_verified"`
	IsDisabled     bool       `gorm:"column:is_disabled" json:"is_disabled"`
	IsVelvetChoice bool       `gorm:"column:is_velvet_choice" json:"is_velvet_choice"`
	LastActiveAt   *time.Time `gorm:"column:last_active_at" json:"last_active_at,omitempty"`

	Clicks            int64 `gorm:"column:clicks" json:"clicks"`
	ContactClicks     int64 `gorm:"column:contact_clicks" json:"contact_clicks"`
	SearchAppearances int64 `gorm:"column:search_appearances" json:"search_appearances"`

	Tier                  ProfileTier `gorm:"column:tier;default:free" json:"tier"`
	IsPremium             bool        `gorm:"column:is_premium" json:"is_premium"`
	BoostsRemaining       int         `gorm:"column:boosts_remaining" json:"boosts_remaining"`
	BoostedUntil          *time.Time  `gorm:"column:boosted_until" json:"boosted_until,omitempty"`
	SubscriptionExpiresAt *time.Time  `gorm:"column:subscription_expires_at" json:"subscription_expires_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// BoostActive reports whether a boost window is running at the given
// time. A future boosted_until counts regardless of tier — only new
// activations are tier-gated.
func (p *Profile) BoostActive(now time.Time) bool {
	return p.BoostedUntil != nil && p.BoostedUntil.After(now)
}

// HasContact reports whether any contact channel is filled in.
func (p *Profile) HasContact() bool {
	return p.Phone != "" || p.Telegram != "" || p.WhatsApp != "" || p.Viber != ""
}
