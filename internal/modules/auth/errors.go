package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("role not allowed at registration")
	ErrAgencyNameRequired = errors.New("agency registration requires an agency name")
	ErrUnknownDistrict    = errors.New("unknown district")
	ErrUserNotFound       = errors.New("user not found")
)
