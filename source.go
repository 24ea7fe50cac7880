package cursorpage

import (
	"bytes"
	"context"
	"database/sql/driver"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PositionFilter restricts a fetch to records strictly past a boundary value
// on the primary ordering column.
type PositionFilter struct {
	Column   string
	Operator Operator
	Value    string
}

// DataSource returns a contiguous slice of records, sorted server-side per
// the requested ordering, optionally restricted by a position filter, starting
// at offset. A limit of NoLimit returns the whole remainder.
//
// The call has no side effects and is idempotent for a fixed collection
// snapshot. Cancellation and timeouts propagate through ctx; a failed fetch
// aborts the whole pagination attempt.
type DataSource[T any] interface {
	OrderedSlice(ctx context.Context, ordering Orderings, filter *PositionFilter, offset, limit int) ([]T, error)
}

// toGORMExpression converts the filter into an SQL condition
// "Column Operator ?" represented as a clause.Expression.
func (f PositionFilter) toGORMExpression() clause.Expression {
	sqlClause, arg := f.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: []any{arg},
	}
}

// toSQLClause converts the filter to an SQL condition of the form
// "Column Operator ?" with a corresponding placeholder value.
func (f PositionFilter) toSQLClause() (string, driver.Value) {
	return fmt.Sprintf("%s %s ?", f.Column, f.Operator), parseFilterValue(f.Value)
}

// parseFilterValue restores the typed form of a rendered boundary position.
// Try parsing the value as time.Time; if it succeeds, compare as a timestamp
// on the database side. Otherwise pass the original string through.
func parseFilterValue(v string) any {
	dst := time.Time{}
	if err := dst.UnmarshalText([]byte(v)); err == nil {
		return dst
	}

	return v
}

// GormSource is a DataSource backed by a GORM query. The wrapped query may be
// pre-scoped with a model, table and filters; ordering, position filtering,
// offset and limit are layered on top per fetch.
type GormSource[T any] struct {
	db *gorm.DB
}

func NewGormSource[T any](db *gorm.DB) *GormSource[T] {
	return &GormSource[T]{
		db: db,
	}
}

// OrderedSlice - implements DataSource.
func (s *GormSource[T]) OrderedSlice(
	ctx context.Context,
	ordering Orderings,
	filter *PositionFilter,
	offset, limit int,
) ([]T, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("%w: nil gorm source", ErrConfiguration)
	}

	db := ordering.Apply(s.db.WithContext(ctx))
	if filter != nil {
		db = db.Clauses(filter.toGORMExpression())
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	if limit != NoLimit {
		db = db.Limit(limit)
	}

	var items []T
	if err := db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetch ordered slice: %w", err)
	}

	return items, nil
}

// SliceSource is an in-memory DataSource over a fixed slice of records. It is
// handy for tests and for small collections that never touch a database.
type SliceSource[T any] struct {
	items   []T
	getters Getters[T]
}

func NewSliceSource[T any](items []T, getters Getters[T]) *SliceSource[T] {
	return &SliceSource[T]{
		items:   items,
		getters: getters,
	}
}

// OrderedSlice - implements DataSource.
func (s *SliceSource[T]) OrderedSlice(
	ctx context.Context,
	ordering Orderings,
	filter *PositionFilter,
	offset, limit int,
) ([]T, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil slice source", ErrConfiguration)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(s.items))
	if filter != nil {
		getter, ok := s.getters[filter.Column]
		if !ok {
			return nil, fmt.Errorf("%w: cannot find getter for filter column '%s'", ErrConfiguration, filter.Column)
		}

		for _, item := range s.items {
			cmp := compareFieldToPosition(getter(item), filter.Value)
			if (filter.Operator == OperatorGT && cmp > 0) || (filter.Operator == OperatorLT && cmp < 0) {
				out = append(out, item)
			}
		}
	} else {
		out = append(out, s.items...)
	}

	var sortErr error
	slices.SortStableFunc(out, func(a, b T) int {
		for _, orderBy := range ordering {
			getter, ok := s.getters[orderBy.Column]
			if !ok {
				sortErr = fmt.Errorf("%w: cannot find getter for ordering column '%s'", ErrConfiguration, orderBy.Column)
				return 0
			}

			cmp := compareFieldValues(getter(a), getter(b))
			if orderBy.Direction == DirectionDESC {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp
			}
		}

		return 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit != NoLimit && len(out) > limit {
		out = out[:limit]
	}

	return slices.Clip(out), nil
}

// compareFieldValues compares two field values of the same shape.
func compareFieldValues(a, b any) int {
	switch at := a.(type) {
	case time.Time:
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	case string:
		if bs, ok := b.(string); ok {
			return strings.Compare(at, bs)
		}
	case []byte:
		if bb, ok := b.([]byte); ok {
			return bytes.Compare(at, bb)
		}
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// compareFieldToPosition compares a field value against the string-rendered
// boundary position, restoring the field's shape from the rendering first so
// the filter path and the encode path agree.
func compareFieldToPosition(field any, position string) int {
	switch ft := field.(type) {
	case time.Time:
		if ts, err := time.Parse(time.RFC3339Nano, position); err == nil {
			return ft.Compare(ts)
		}
	}

	if f, ok := toFloat(field); ok {
		if pf, err := strconv.ParseFloat(position, 64); err == nil {
			switch {
			case f < pf:
				return -1
			case f > pf:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(renderPosition(field), position)
}

func toFloat(v any) (float64, bool) {
	switch vt := v.(type) {
	case int:
		return float64(vt), true
	case int8:
		return float64(vt), true
	case int16:
		return float64(vt), true
	case int32:
		return float64(vt), true
	case int64:
		return float64(vt), true
	case uint:
		return float64(vt), true
	case uint8:
		return float64(vt), true
	case uint16:
		return float64(vt), true
	case uint32:
		return float64(vt), true
	case uint64:
		return float64(vt), true
	case float32:
		return float64(vt), true
	case float64:
		return vt, true
	default:
		return 0, false
	}
}

var (
	_ DataSource[struct{}] = (*GormSource[struct{}])(nil)
	_ DataSource[struct{}] = (*SliceSource[struct{}])(nil)
)
