package cursorpage

import (
	"slices"

	"github.com/samber/lo"
)

// pagePlan is the outcome of planning a single request: the visible page in
// natural order plus the boundary state the link builder works from.
type pagePlan[T any] struct {
	items            []T
	hasNext          bool
	hasPrevious      bool
	nextPosition     *string
	previousPosition *string
}

// planPage computes the visible page from the fetched slice (up to
// pageSize+1 records, sorted in the scan direction).
//
// The asymmetry between the branches is intentional: having arrived via a
// non-trivial cursor (a position or a non-zero offset) always implies a
// previous page in forward mode and a next page in reverse mode.
func planPage[T any](
	cursor Cursor,
	fetched []T,
	pageSize int,
	positionOf func(T) (string, error),
) (pagePlan[T], error) {
	page := slices.Clone(fetched)
	if len(page) > pageSize {
		page = page[:pageSize]
	}

	// The extra look-ahead record tells us whether a further page exists
	// without a second query.
	var followingPosition *string
	if len(fetched) > len(page) {
		pos, err := positionOf(fetched[len(fetched)-1])
		if err != nil {
			return pagePlan[T]{}, err
		}
		followingPosition = lo.ToPtr(pos)
	}

	plan := pagePlan[T]{items: page}
	if cursor.Reverse {
		// The slice was fetched over the inverted ordering, so restore
		// natural order before exposing it.
		slices.Reverse(plan.items)

		plan.hasNext = cursor.Position != nil || cursor.Offset > 0
		plan.hasPrevious = followingPosition != nil
		if plan.hasNext {
			plan.nextPosition = cursor.Position
		}
		if plan.hasPrevious {
			plan.previousPosition = followingPosition
		}
	} else {
		plan.hasNext = followingPosition != nil
		plan.hasPrevious = cursor.Position != nil || cursor.Offset > 0
		if plan.hasNext {
			plan.nextPosition = followingPosition
		}
		if plan.hasPrevious {
			plan.previousPosition = cursor.Position
		}
	}

	return plan, nil
}
