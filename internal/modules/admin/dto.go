package admin

import (
	"time"

	"velvetdir/internal/domain"
	"velvetdir/internal/modules/fraud"
)

type SetProfileTierRequest struct {
	Tier      string     `json:"tier" validate:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type SetAgencyTierRequest struct {
	Tier       string     `json:"tier" validate:"required"`
	ModelLimit *int       `json:"model_limit"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

type BoostActionRequest struct {
	Action string `json:"action" validate:"required,oneof=reset grant activate deactivate"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Notes    string `json:"notes"`
}

// ProfileRow is one operator-console listing row: the raw profile plus
// its on-demand fraud analysis.
type ProfileRow struct {
	Profile domain.Profile `json:"profile"`
	Fraud   fraud.Analysis `json:"fraud"`
}

type ProfileListResponse struct {
	Profiles []ProfileRow `json:"profiles"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
}

// Statistics is the operator dashboard aggregate.
type Statistics struct {
	Profiles              int64 `json:"profiles"`
	ActiveProfiles        int64 `json:"active_profiles"`
	Agencies              int64 `json:"agencies"`
	PendingVerifications  int64 `json:"pending_verifications"`
	ActiveBoosts          int64 `json:"active_boosts"`
	ExpiringSubscriptions int64 `json:"expiring_subscriptions"`
}
