package cursorpage

const (
	// NoLimit disables the record limit for a data source call.
	NoLimit = -1

	DefaultPageSize = 10
	MaxPageSize     = 100

	// DefaultOffsetCutoff caps the offset stored in a cursor token. The offset
	// only disambiguates ties on a nearly-unique index, so a huge value is
	// either a bug or an attempt to force an expensive scan.
	DefaultOffsetCutoff = 1000

	DefaultCursorParam = "cursor"
)

// NormalizePageSize resolves a client-requested page size against a fallback
// and an upper bound. Non-positive sizes fall back, oversized ones are capped.
func NormalizePageSize(size, fallback, maxSize int) int {
	if size <= 0 {
		return fallback
	}
	if maxSize > 0 && size > maxSize {
		return maxSize
	}

	return size
}
