package visitor

import "errors"

// Sentinel errors for the visitor service layer.
var (
	ErrNotFound     = errors.New("visitor not found")
	ErrNotJoining   = errors.New("visitor is not in the onboarding program")
	ErrMissingTeam  = errors.New("visitor has no protocol team")
	ErrMissingName  = errors.New("name is required")
)
