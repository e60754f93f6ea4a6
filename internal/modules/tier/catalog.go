package tier

import (
	"strconv"
	"strings"

	"velvetdir/internal/domain"
)

// UnlimitedSentinel is the value persisted in boosts_remaining for
// unlimited tiers. The original billing data used a large literal
// instead of a real infinity so counters stay bounded and comparable;
// Allowance keeps that explicit.
const UnlimitedSentinel = 9999

// Allowance is a tagged monthly boost budget: Finite(n) or Unlimited.
type Allowance struct {
	unlimited bool
	n         int
}

func Finite(n int) Allowance { return Allowance{n: n} }

var Unlimited = Allowance{unlimited: true}

func (a Allowance) IsUnlimited() bool { return a.unlimited }

// Sentinel returns the integer stored in the boosts_remaining column.
func (a Allowance) Sentinel() int {
	if a.unlimited {
		return UnlimitedSentinel
	}
	return a.n
}

func (a Allowance) String() string {
	if a.unlimited {
		return "unlimited"
	}
	return strconv.Itoa(a.n)
}

// ProfilePlan is one row of the static profile tier catalog.
type ProfilePlan struct {
	Tier         domain.ProfileTier `json:"tier"`
	Name         string             `json:"name"`
	PriceMonthly int                `json:"price_monthly"`
	Boosts       Allowance          `json:"-"`
	CanBoost     bool               `json:"can_boost"`
	CanAdvertise bool               `json:"can_advertise"`
}

// AgencyPlan is one row of the static agency tier catalog.
type AgencyPlan struct {
	Tier         domain.AgencyTier `json:"tier"`
	Name         string            `json:"name"`
	PriceMonthly int               `json:"price_monthly"`
	ModelLimit   int               `json:"model_limit"`
}

var profilePlans = []ProfilePlan{
	{Tier: domain.TierFree, Name: "Free", PriceMonthly: 0, Boosts: Finite(0), CanBoost: false, CanAdvertise: false},
	{Tier: domain.TierPremium, Name: "Premium", PriceMonthly: 4900, Boosts: Finite(3), CanBoost: true, CanAdvertise: true},
	{Tier: domain.TierElite, Name: "Elite", PriceMonthly: 9900, Boosts: Unlimited, CanBoost: true, CanAdvertise: true},
}

var agencyPlans = []AgencyPlan{
	{Tier: domain.AgencyTierNone, Name: "No subscription", PriceMonthly: 0, ModelLimit: 0},
	{Tier: domain.AgencyTierStarter, Name: "Starter", PriceMonthly: 9900, ModelLimit: 5},
	{Tier: domain.AgencyTierPro, Name: "Pro", PriceMonthly: 24900, ModelLimit: 20},
}

// ProfilePlans returns the catalog in ascending price order.
func ProfilePlans() []ProfilePlan { return profilePlans }

func AgencyPlans() []AgencyPlan { return agencyPlans }

func ProfilePlanFor(t domain.ProfileTier) ProfilePlan {
	for _, plan := range profilePlans {
		if plan.Tier == t {
			return plan
		}
	}
	return profilePlans[0]
}

func AgencyPlanFor(t domain.AgencyTier) AgencyPlan {
	for _, plan := range agencyPlans {
		if plan.Tier == t {
			return plan
		}
	}
	return agencyPlans[0]
}

func ParseProfileTier(s string) (domain.ProfileTier, error) {
	t := domain.ProfileTier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrUnknownTier
	}
	return t, nil
}

func ParseAgencyTier(s string) (domain.AgencyTier, error) {
	t := domain.AgencyTier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrUnknownTier
	}
	return t, nil
}
