package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// Registry errors. Not-found errors cover both a genuinely absent row and
// a row owned by another organisation - callers must not be able to tell
// the two apart.
var (
	ErrOrganisationNotFound = errors.New("organisation not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipExists     = errors.New("employee already assigned to team")
)
