package cursorpage

import (
	"fmt"
	"time"
)

// Getters maps ordering columns to field values of an item. Declare the
// columns pagination is built on.
// Example:
//
//	cursorpage.Getters[User]{
//		"id":      func(u User) any { return u.ID },
//		"created": func(u User) any { return u.CreatedAt },
//	}
type Getters[T any] map[string]func(T) any

// MapGetters builds Getters for map-shaped records, reading each column as a
// key of the map.
func MapGetters(columns ...string) Getters[map[string]any] {
	ret := make(Getters[map[string]any], len(columns))
	for _, column := range columns {
		ret[column] = func(item map[string]any) any { return item[column] }
	}

	return ret
}

// position renders the item's value of the primary ordering column as the
// boundary-position string.
func (g Getters[T]) position(item T, primary OrderBy) (string, error) {
	getter, ok := g[primary.Column]
	if !ok {
		return "", fmt.Errorf("%w: cannot find getter for column '%s' met in ordering", ErrConfiguration, primary.Column)
	}

	return renderPosition(getter(item)), nil
}

// renderPosition converts a field value into the string form embedded into
// cursor tokens. The same rendering feeds the position filter, so it must be
// stable: time values are pinned to UTC RFC3339Nano to stay lossless and
// order-preserving on the filter path.
func renderPosition(v any) string {
	switch vt := v.(type) {
	case nil:
		return ""
	case string:
		return vt
	case []byte:
		return string(vt)
	case time.Time:
		return vt.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if vt == nil {
			return ""
		}
		return vt.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return vt.String()
	default:
		return fmt.Sprint(v)
	}
}
