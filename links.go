package cursorpage

import (
	"fmt"
	"net/url"

	"github.com/samber/lo"
)

// Page is the materialized result of one pagination request: the visible
// items in natural order plus everything needed to derive the next and
// previous cursor tokens. A Page lives for a single request and is never
// persisted.
type Page[T any] struct {
	// Items holds at most pageSize records in client-visible order.
	Items []T

	pageSize    int
	disabled    bool
	cursor      *Cursor
	baseURL     string
	cursorParam string
	positionOf  func(T) (string, error)

	hasNext          bool
	hasPrevious      bool
	nextPosition     *string
	previousPosition *string
}

func (p *Page[T]) HasNext() bool {
	return p != nil && p.hasNext
}

func (p *Page[T]) HasPrevious() bool {
	return p != nil && p.hasPrevious
}

// Disabled reports that pagination was turned off for the request (resolved
// page size of zero) and Items holds the whole collection.
func (p *Page[T]) Disabled() bool {
	return p != nil && p.disabled
}

// NextCursor derives the cursor resuming forward traversal after this page,
// or nil when no next page exists.
//
// A position alone cannot disambiguate which record to resume from when the
// ordering key has duplicates, so the page is scanned from its end for a
// unique boundary value and the remaining ambiguity is absorbed into the
// cursor offset.
func (p *Page[T]) NextCursor() (*Cursor, error) {
	if !p.HasNext() {
		return nil, nil
	}

	var compare *string
	if len(p.Items) > 0 && p.cursor != nil && p.cursor.Reverse && p.cursor.Offset != 0 {
		// Just changed direction from an offset cursor: the first boundary
		// value we meet cannot be trusted as a marker, compare against the
		// page's own last item instead.
		pos, err := p.positionOf(p.Items[len(p.Items)-1])
		if err != nil {
			return nil, err
		}
		compare = lo.ToPtr(pos)
	} else {
		compare = p.nextPosition
	}

	offset := 0
	var position *string
	uniqueFound := false
	for i := len(p.Items) - 1; i >= 0; i-- {
		pos, err := p.positionOf(p.Items[i])
		if err != nil {
			return nil, err
		}

		if compare == nil || pos != *compare {
			// This item and the one following it have different positions,
			// so this position works as a marker.
			uniqueFound = true
			position = lo.ToPtr(pos)
			break
		}

		// Same position as the item following it; count it into the offset
		// and keep seeking.
		compare = lo.ToPtr(pos)
		offset++
	}

	if len(p.Items) > 0 && !uniqueFound {
		// Every item on the page shares one boundary value.
		switch {
		case !p.hasPrevious:
			// First page: resume purely by count from the start.
			offset = p.pageSize
			position = nil
		case p.cursor != nil && p.cursor.Reverse:
			// The direction change introduces a paging artifact where a few
			// items may be skipped or repeated.
			offset = 0
			position = p.previousPosition
		default:
			offset = p.pageSize
			if p.cursor != nil {
				offset += p.cursor.Offset
			}
			position = p.previousPosition
		}
	}

	if len(p.Items) == 0 {
		position = p.nextPosition
	}

	return &Cursor{Offset: offset, Reverse: false, Position: position}, nil
}

// PreviousCursor derives the cursor resuming backward traversal before this
// page, or nil when no previous page exists. Mirrors NextCursor, scanning the
// opposite end of the page.
func (p *Page[T]) PreviousCursor() (*Cursor, error) {
	if !p.HasPrevious() {
		return nil, nil
	}

	var compare *string
	if len(p.Items) > 0 && p.cursor != nil && !p.cursor.Reverse && p.cursor.Offset != 0 {
		pos, err := p.positionOf(p.Items[0])
		if err != nil {
			return nil, err
		}
		compare = lo.ToPtr(pos)
	} else {
		compare = p.previousPosition
	}

	offset := 0
	var position *string
	uniqueFound := false
	for _, item := range p.Items {
		pos, err := p.positionOf(item)
		if err != nil {
			return nil, err
		}

		if compare == nil || pos != *compare {
			uniqueFound = true
			position = lo.ToPtr(pos)
			break
		}

		compare = lo.ToPtr(pos)
		offset++
	}

	if len(p.Items) > 0 && !uniqueFound {
		switch {
		case !p.hasNext:
			// Final page: resume purely by count from the end.
			offset = p.pageSize
			position = nil
		case p.cursor != nil && p.cursor.Reverse:
			offset = p.cursor.Offset + p.pageSize
			position = p.nextPosition
		default:
			// The direction change introduces a paging artifact where a few
			// items may be skipped or repeated.
			offset = 0
			position = p.nextPosition
		}
	}

	if len(p.Items) == 0 {
		position = p.previousPosition
	}

	return &Cursor{Offset: offset, Reverse: true, Position: position}, nil
}

// NextLink returns the absolute URL of the next page, or "" when there is
// none. The link is the request URL with the cursor query parameter replaced
// by a freshly encoded token.
func (p *Page[T]) NextLink() (string, error) {
	cursor, err := p.NextCursor()
	if err != nil || cursor == nil {
		return "", err
	}

	return replaceQueryParam(p.baseURL, p.cursorParam, cursor.Encode())
}

// PreviousLink returns the absolute URL of the previous page, or "" when
// there is none.
func (p *Page[T]) PreviousLink() (string, error) {
	cursor, err := p.PreviousCursor()
	if err != nil || cursor == nil {
		return "", err
	}

	return replaceQueryParam(p.baseURL, p.cursorParam, cursor.Encode())
}

// Response is the transport envelope for a paginated result.
type Response[T any] struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Response assembles the envelope with absolute next/previous links.
func (p *Page[T]) Response() (*Response[T], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil page", ErrConfiguration)
	}

	resp := &Response[T]{Results: p.Items}
	if resp.Results == nil {
		resp.Results = []T{}
	}

	next, err := p.NextLink()
	if err != nil {
		return nil, err
	}
	if next != "" {
		resp.Next = lo.ToPtr(next)
	}

	previous, err := p.PreviousLink()
	if err != nil {
		return nil, err
	}
	if previous != "" {
		resp.Previous = lo.ToPtr(previous)
	}

	return resp, nil
}

// replaceQueryParam substitutes the given query parameter inside an absolute
// URL, preserving every other parameter.
func replaceQueryParam(baseURL, param, value string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	query := parsed.Query()
	query.Set(param, value)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
