package cursorpage

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"

	"github.com/samber/lo"
)

var _encoder = base64.RawURLEncoding

// Cursor pins a resume point inside the ordered collection. The zero value
// means "start of the collection, natural direction".
//
// Position is the string-rendered value of the primary ordering field at the
// page boundary, or nil when no boundary is known yet. Offset skips records
// that share the boundary value; it is bounded by the paginator's cutoff.
//
// The encoded form is an implementation detail. Clients must treat tokens as
// opaque and pass them back unmodified.
type Cursor struct {
	Offset   int
	Reverse  bool
	Position *string
}

// DecodeCursor parses a base64 token into a Cursor. The payload is a URL
// query string with optional keys "o" (offset), "r" (reverse, 0/1) and
// "p" (position). Any malformed field, a negative offset or an offset above
// offsetCutoff yields ErrInvalidCursor.
func DecodeCursor(token string, offsetCutoff int) (*Cursor, error) {
	raw, err := _encoder.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed base64 token", ErrInvalidCursor)
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed token payload", ErrInvalidCursor)
	}

	var cursor Cursor
	if _, ok := values["o"]; ok {
		offset, err := strconv.Atoi(values.Get("o"))
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("%w: offset is not a non-negative integer", ErrInvalidCursor)
		}
		if offset > offsetCutoff {
			return nil, fmt.Errorf("%w: offset %d exceeds cutoff %d", ErrInvalidCursor, offset, offsetCutoff)
		}
		cursor.Offset = offset
	}

	if _, ok := values["r"]; ok {
		reverse, err := strconv.Atoi(values.Get("r"))
		if err != nil {
			return nil, fmt.Errorf("%w: malformed reverse flag", ErrInvalidCursor)
		}
		cursor.Reverse = reverse != 0
	}

	// A blank position is a legal boundary value, so key presence matters,
	// not value truthiness.
	if _, ok := values["p"]; ok {
		cursor.Position = lo.ToPtr(values.Get("p"))
	}

	return &cursor, nil
}

// Encode renders the cursor as a base64 token. Default-valued fields are
// omitted to keep tokens minimal; Encode is the exact inverse of DecodeCursor
// for any cursor this engine produces.
func (c Cursor) Encode() string {
	values := url.Values{}
	if c.Offset != 0 {
		values.Set("o", strconv.Itoa(c.Offset))
	}
	if c.Reverse {
		values.Set("r", "1")
	}
	if c.Position != nil {
		values.Set("p", *c.Position)
	}

	return _encoder.EncodeToString([]byte(values.Encode()))
}

// String - implements fmt.Stringer.
func (c Cursor) String() string {
	return c.Encode()
}

var _ fmt.Stringer = Cursor{}
