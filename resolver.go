package cursorpage

import (
	"net/http"
	"strings"
)

// OrderingResolver decides the ordering for a single request. Resolvers are
// injected at paginator construction; when none is set, the paginator falls
// back to its configured default ordering.
type OrderingResolver interface {
	ResolveOrdering(r *http.Request) (Orderings, error)
}

// StaticOrdering is an OrderingResolver that always yields the same ordering.
type StaticOrdering Orderings

// ResolveOrdering - implements OrderingResolver.
func (o StaticOrdering) ResolveOrdering(_ *http.Request) (Orderings, error) {
	return Orderings(o), nil
}

// QueryOrderingResolver reads the ordering from a request query parameter
// holding comma-separated "alias asc|desc" entries, resolved through Mapping.
// When the parameter is absent, Default is returned.
type QueryOrderingResolver struct {
	Param   string
	Mapping ColumnMapping
	Default Orderings
}

// ResolveOrdering - implements OrderingResolver.
func (q QueryOrderingResolver) ResolveOrdering(r *http.Request) (Orderings, error) {
	if r == nil {
		return q.Default, nil
	}

	raw := strings.TrimSpace(r.URL.Query().Get(q.Param))
	if raw == "" {
		return q.Default, nil
	}

	return ParseSort(strings.Split(raw, ","), q.Mapping)
}

var (
	_ OrderingResolver = StaticOrdering(nil)
	_ OrderingResolver = QueryOrderingResolver{}
)
