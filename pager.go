package cursorpage

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Paginator drives cursor pagination for one record type. Configuration is
// immutable after construction; each Paginate call is stateless and
// independent, so a single Paginator serves concurrent requests without
// locking.
type Paginator[T any] struct {
	pageSize      int
	maxPageSize   int
	pageSizeParam string
	cursorParam   string
	offsetCutoff  int
	ordering      Orderings
	resolver      OrderingResolver
	getters       Getters[T]
}

// NewPaginator builds a Paginator with the default page size, cursor
// parameter, offset cutoff and a "created DESC" default ordering.
func NewPaginator[T any](getters Getters[T]) *Paginator[T] {
	return &Paginator[T]{
		pageSize:     DefaultPageSize,
		maxPageSize:  MaxPageSize,
		cursorParam:  DefaultCursorParam,
		offsetCutoff: DefaultOffsetCutoff,
		ordering: Orderings{
			{Column: "created", Direction: DirectionDESC},
		},
		getters: getters,
	}
}

// WithPageSize sets the fixed page size. Zero disables pagination: requests
// return the whole collection with no links.
func (p *Paginator[T]) WithPageSize(pageSize int) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.pageSize = pageSize

	return p
}

// WithMaxPageSize bounds the client-requested page size. Only relevant when
// WithPageSizeParam is also set.
func (p *Paginator[T]) WithMaxPageSize(maxPageSize int) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.maxPageSize = maxPageSize

	return p
}

// WithPageSizeParam names the query parameter letting clients pick the page
// size. Empty (the default) keeps the size fixed.
func (p *Paginator[T]) WithPageSizeParam(param string) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.pageSizeParam = param

	return p
}

// WithCursorParam names the query parameter carrying the cursor token.
func (p *Paginator[T]) WithCursorParam(param string) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.cursorParam = param

	return p
}

// WithOffsetCutoff caps the offset accepted inside a cursor token.
func (p *Paginator[T]) WithOffsetCutoff(cutoff int) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.offsetCutoff = cutoff

	return p
}

// WithOrdering replaces the default ordering applied when no resolver yields
// one.
func (p *Paginator[T]) WithOrdering(orderBy ...OrderBy) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.ordering = Orderings(orderBy)

	return p
}

// WithOrderingResolver injects the per-request ordering strategy.
func (p *Paginator[T]) WithOrderingResolver(resolver OrderingResolver) *Paginator[T] {
	if p == nil {
		p = new(Paginator[T])
	}

	p.resolver = resolver

	return p
}

// Paginate runs one pagination request: resolves the page size and ordering,
// decodes the inbound cursor, fetches pageSize+1 records from the source and
// plans the visible page. The returned Page derives next/previous links on
// demand.
func (p *Paginator[T]) Paginate(ctx context.Context, r *http.Request, source DataSource[T]) (*Page[T], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil paginator", ErrConfiguration)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil request", ErrConfiguration)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: nil data source", ErrConfiguration)
	}

	ordering, err := p.resolveOrdering(r)
	if err != nil {
		return nil, err
	}

	pageSize := p.resolvePageSize(r)
	baseURL := requestURL(r)
	positionOf := p.positionReader(ordering)

	if pageSize == 0 {
		items, err := source.OrderedSlice(ctx, ordering, nil, 0, NoLimit)
		if err != nil {
			return nil, err
		}

		return &Page[T]{
			Items:       items,
			disabled:    true,
			baseURL:     baseURL,
			cursorParam: p.cursorParam,
			positionOf:  positionOf,
		}, nil
	}

	cursor, err := p.decodeRequestCursor(r)
	if err != nil {
		return nil, err
	}

	current := Cursor{}
	if cursor != nil {
		current = *cursor
	}

	// Backward traversal is a forward scan over the inverted ordering.
	applied := ordering
	if current.Reverse {
		applied = ordering.Inverse()
	}

	// With a fixed boundary position, continue strictly past it in the
	// currently requested direction: (cursor reversed) XOR (primary DESC)
	// selects "<", otherwise ">".
	var filter *PositionFilter
	if current.Position != nil {
		primary := ordering.Primary()
		operator := primary.Direction.ForOperator()
		if current.Reverse {
			operator = operator.Inverse()
		}

		filter = &PositionFilter{
			Column:   primary.Column,
			Operator: operator,
			Value:    *current.Position,
		}
	}

	fetched, err := source.OrderedSlice(ctx, applied, filter, current.Offset, pageSize+1)
	if err != nil {
		return nil, err
	}

	plan, err := planPage(current, fetched, pageSize, positionOf)
	if err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:            plan.items,
		pageSize:         pageSize,
		cursor:           cursor,
		baseURL:          baseURL,
		cursorParam:      p.cursorParam,
		positionOf:       positionOf,
		hasNext:          plan.hasNext,
		hasPrevious:      plan.hasPrevious,
		nextPosition:     plan.nextPosition,
		previousPosition: plan.previousPosition,
	}, nil
}

func (p *Paginator[T]) resolveOrdering(r *http.Request) (Orderings, error) {
	ordering := p.ordering
	if p.resolver != nil {
		resolved, err := p.resolver.ResolveOrdering(r)
		if err != nil {
			return nil, fmt.Errorf("resolve ordering: %w", err)
		}
		if len(resolved) > 0 {
			ordering = resolved
		}
	}

	if err := ordering.validate(); err != nil {
		return nil, err
	}

	return ordering, nil
}

func (p *Paginator[T]) resolvePageSize(r *http.Request) int {
	if p.pageSizeParam == "" {
		return p.pageSize
	}

	raw := r.URL.Query().Get(p.pageSizeParam)
	if raw == "" {
		return p.pageSize
	}

	size, err := strconv.Atoi(raw)
	if err != nil {
		return p.pageSize
	}

	return NormalizePageSize(size, p.pageSize, p.maxPageSize)
}

func (p *Paginator[T]) decodeRequestCursor(r *http.Request) (*Cursor, error) {
	token := r.URL.Query().Get(p.cursorParam)
	if token == "" {
		return nil, nil
	}

	return DecodeCursor(token, p.offsetCutoff)
}

func (p *Paginator[T]) positionReader(ordering Orderings) func(T) (string, error) {
	primary := ordering.Primary()

	return func(item T) (string, error) {
		return p.getters.position(item, primary)
	}
}

// requestURL rebuilds the absolute URL of the inbound request, the base for
// next/previous links.
func requestURL(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + r.Host + r.URL.RequestURI()
}
