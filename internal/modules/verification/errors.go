package verification

import "errors"

var (
	ErrApplicationNotFound = errors.New("verification application not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrNotPending          = errors.New("application already reviewed")
	ErrNotesRequired       = errors.New("rejection requires reviewer notes")
	ErrAlreadyPending      = errors.New("profile already has a pending application")
	ErrNotOwner            = errors.New("profile belongs to another account")
)
