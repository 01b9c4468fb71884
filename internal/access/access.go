package access

import "errors"

var (
	// ErrNotOwner indicates the caller is not the owner principal.
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrAlreadyWhitelisted indicates the target principal is already on the
	// whitelist.
	ErrAlreadyWhitelisted = errors.New("principal already whitelisted")

	// ErrNotWhitelisted indicates the principal is not on the whitelist.
	ErrNotWhitelisted = errors.New("principal not whitelisted")
)
