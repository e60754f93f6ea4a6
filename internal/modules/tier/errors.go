package tier

import "errors"

var (
	ErrUnknownTier       = errors.New("unknown tier")
	ErrTierUnchanged     = errors.New("tier unchanged")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrAgencyNotFound    = errors.New("agency not found")
	ErrInvalidModelLimit = errors.New("model limit must be non-negative")
)
