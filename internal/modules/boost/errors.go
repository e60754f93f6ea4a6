package boost

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrAlreadyBoosted    = errors.New("boost already active")
	ErrTierNotAllowed    = errors.New("tier does not allow boosting")
	ErrNoBoostsRemaining = errors.New("no boosts remaining")
	ErrUnknownAction     = errors.New("unknown boost action")
)

// Code maps an activation error to its machine-readable envelope code
// so clients can branch without string matching.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyBoosted):
		return "ALREADY_BOOSTED"
	case errors.Is(err, ErrTierNotAllowed):
		return "TIER_NOT_ALLOWED"
	case errors.Is(err, ErrNoBoostsRemaining):
		return "NO_BOOSTS_REMAINING"
	case errors.Is(err, ErrProfileNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnknownAction):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
