package services

import "errors"

// Sentinel errors returned by the services. Handlers branch on these with
// errors.Is to decide between flash messages, redirects and error pages.
var (
	ErrDuplicateAccount  = errors.New("an account already exists for this email")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("incorrect password")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateName     = errors.New("a cafe with this name already exists")
)
