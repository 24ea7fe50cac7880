package cursorpage

import "errors"

var (
	// ErrInvalidCursor reports a malformed or out-of-bounds cursor token.
	// The request must be rejected; the engine never resets to the first page.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrConfiguration reports a programmer error: unresolvable or unsupported
	// ordering, missing getters, nil request. Fail fast, do not retry.
	ErrConfiguration = errors.New("pagination misconfigured")
)
