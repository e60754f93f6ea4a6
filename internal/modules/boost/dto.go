package boost

import "time"

// AdminAction names the operator overrides on a profile's boost state.
type AdminAction string

const (
	ActionReset      AdminAction = "reset"
	ActionGrant      AdminAction = "grant"
	ActionActivate   AdminAction = "activate"
	ActionDeactivate AdminAction = "deactivate"
)

func ParseAdminAction(s string) (AdminAction, error) {
	switch AdminAction(s) {
	case ActionReset, ActionGrant, ActionActivate, ActionDeactivate:
		return AdminAction(s), nil
	}
	return "", ErrUnknownAction
}

// Status is the query contract for one profile's boost state.
type Status struct {
	ProfileID    int64      `json:"profile_id"`
	Tier         string     `json:"tier"`
	CanBoost     bool       `json:"can_boost"`
	Active       bool       `json:"active"`
	BoostedUntil *time.Time `json:"boosted_until,omitempty"`
	RemainingSec int64      `json:"remaining_seconds"`
	Allowance    string     `json:"allowance"` // number or "unlimited"
}
