package catalog

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrAgencyNotFound  = errors.New("agency not found")
	ErrUnknownDistrict = errors.New("unknown district")
	ErrUnknownService  = errors.New("unknown service")
)
