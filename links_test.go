package cursorpage

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newTestPage(items []string, pageSize int, cursor *Cursor) *Page[string] {
	return &Page[string]{
		Items:       items,
		pageSize:    pageSize,
		cursor:      cursor,
		baseURL:     "http://api.test/notes",
		cursorParam: DefaultCursorParam,
		positionOf:  selfPosition,
	}
}

func Test_Page_NextCursor(t *testing.T) {
	tests := []struct {
		name string
		page *Page[string]
		want *Cursor
	}{
		{
			name: "no next page",
			page: newTestPage([]string{"a"}, 3, nil),
			want: nil,
		},
		{
			name: "unique marker at page end",
			page: func() *Page[string] {
				p := newTestPage([]string{"a", "b", "c"}, 3, nil)
				p.hasNext = true
				p.nextPosition = lo.ToPtr("d")
				return p
			}(),
			want: &Cursor{Offset: 0, Position: lo.ToPtr("c")},
		},
		{
			name: "trailing ties absorbed into offset",
			page: func() *Page[string] {
				p := newTestPage([]string{"a", "c", "c"}, 3, nil)
				p.hasNext = true
				p.nextPosition = lo.ToPtr("c")
				return p
			}(),
			want: &Cursor{Offset: 2, Position: lo.ToPtr("a")},
		},
		{
			name: "entirely tied first page resumes by count",
			page: func() *Page[string] {
				p := newTestPage([]string{"x", "x", "x"}, 3, nil)
				p.hasNext = true
				p.nextPosition = lo.ToPtr("x")
				return p
			}(),
			want: &Cursor{Offset: 3},
		},
		{
			name: "entirely tied page accumulates the cursor offset",
			page: func() *Page[string] {
				cursor := &Cursor{Offset: 3, Position: lo.ToPtr("w")}
				p := newTestPage([]string{"x", "x", "x"}, 3, cursor)
				p.hasNext = true
				p.hasPrevious = true
				p.nextPosition = lo.ToPtr("x")
				p.previousPosition = cursor.Position
				return p
			}(),
			want: &Cursor{Offset: 6, Position: lo.ToPtr("w")},
		},
		{
			name: "entirely tied page after direction change drops the offset",
			page: func() *Page[string] {
				cursor := &Cursor{Reverse: true, Position: lo.ToPtr("x")}
				p := newTestPage([]string{"x", "x", "x"}, 3, cursor)
				p.hasNext = true
				p.hasPrevious = true
				p.nextPosition = lo.ToPtr("x")
				p.previousPosition = lo.ToPtr("w")
				return p
			}(),
			want: &Cursor{Offset: 0, Position: lo.ToPtr("w")},
		},
		{
			name: "reversed offset cursor compares against own last item",
			page: func() *Page[string] {
				cursor := &Cursor{Offset: 2, Reverse: true}
				p := newTestPage([]string{"a", "b", "c"}, 3, cursor)
				p.hasNext = true
				return p
			}(),
			want: &Cursor{Offset: 1, Position: lo.ToPtr("b")},
		},
		{
			name: "empty page falls back to the known boundary",
			page: func() *Page[string] {
				p := newTestPage(nil, 3, &Cursor{Reverse: true, Position: lo.ToPtr("z")})
				p.hasNext = true
				p.nextPosition = lo.ToPtr("z")
				return p
			}(),
			want: &Cursor{Offset: 0, Position: lo.ToPtr("z")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.page.NextCursor()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_Page_PreviousCursor(t *testing.T) {
	tests := []struct {
		name string
		page *Page[string]
		want *Cursor
	}{
		{
			name: "no previous page",
			page: newTestPage([]string{"a"}, 3, nil),
			want: nil,
		},
		{
			name: "unique marker at page start",
			page: func() *Page[string] {
				p := newTestPage([]string{"b", "c", "d"}, 3, &Cursor{Position: lo.ToPtr("a")})
				p.hasPrevious = true
				p.previousPosition = lo.ToPtr("a")
				return p
			}(),
			want: &Cursor{Offset: 0, Reverse: true, Position: lo.ToPtr("b")},
		},
		{
			name: "entirely tied final page resumes by count",
			page: func() *Page[string] {
				p := newTestPage([]string{"x", "x", "x"}, 3, &Cursor{Reverse: true, Position: lo.ToPtr("x")})
				p.hasPrevious = true
				p.previousPosition = lo.ToPtr("x")
				return p
			}(),
			want: &Cursor{Offset: 3, Reverse: true},
		},
		{
			name: "entirely tied page accumulates the reverse cursor offset",
			page: func() *Page[string] {
				cursor := &Cursor{Offset: 3, Reverse: true, Position: lo.ToPtr("y")}
				p := newTestPage([]string{"x", "x", "x"}, 3, cursor)
				p.hasNext = true
				p.hasPrevious = true
				p.nextPosition = cursor.Position
				p.previousPosition = lo.ToPtr("x")
				return p
			}(),
			want: &Cursor{Offset: 6, Reverse: true, Position: lo.ToPtr("y")},
		},
		{
			name: "entirely tied page after direction change drops the offset",
			page: func() *Page[string] {
				cursor := &Cursor{Position: lo.ToPtr("x")}
				p := newTestPage([]string{"x", "x", "x"}, 3, cursor)
				p.hasNext = true
				p.hasPrevious = true
				p.nextPosition = lo.ToPtr("y")
				p.previousPosition = cursor.Position
				return p
			}(),
			want: &Cursor{Offset: 0, Reverse: true, Position: lo.ToPtr("y")},
		},
		{
			name: "forward offset cursor compares against own first item",
			page: func() *Page[string] {
				cursor := &Cursor{Offset: 2}
				p := newTestPage([]string{"a", "b", "c"}, 3, cursor)
				p.hasPrevious = true
				return p
			}(),
			want: &Cursor{Offset: 1, Reverse: true, Position: lo.ToPtr("b")},
		},
		{
			name: "empty page falls back to the known boundary",
			page: func() *Page[string] {
				p := newTestPage(nil, 3, &Cursor{Position: lo.ToPtr("m")})
				p.hasPrevious = true
				p.previousPosition = lo.ToPtr("m")
				return p
			}(),
			want: &Cursor{Offset: 0, Reverse: true, Position: lo.ToPtr("m")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.page.PreviousCursor()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_Page_Links(t *testing.T) {
	p := newTestPage([]string{"a", "b"}, 2, nil)
	p.baseURL = "http://api.test/notes?cursor=old&limit=5"
	p.hasNext = true
	p.nextPosition = lo.ToPtr("c")

	next, err := p.NextLink()
	require.NoError(t, err)

	wantToken := Cursor{Position: lo.ToPtr("b")}.Encode()
	require.Equal(t, "http://api.test/notes?cursor="+wantToken+"&limit=5", next)

	previous, err := p.PreviousLink()
	require.NoError(t, err)
	require.Equal(t, "", previous)
}

func Test_Page_Response(t *testing.T) {
	p := newTestPage(nil, 2, nil)

	resp, err := p.Response()
	require.NoError(t, err)
	require.NotNil(t, resp.Results)
	require.Nil(t, resp.Next)
	require.Nil(t, resp.Previous)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	require.JSONEq(t, `{"next":null,"previous":null,"results":[]}`, string(data))
}

func Test_replaceQueryParam(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		value string
		want  string
	}{
		{
			name:  "adds the parameter",
			base:  "http://api.test/notes",
			value: "tok",
			want:  "http://api.test/notes?cursor=tok",
		},
		{
			name:  "replaces existing parameter and keeps the rest",
			base:  "http://api.test/notes?cursor=old&limit=5",
			value: "tok",
			want:  "http://api.test/notes?cursor=tok&limit=5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := replaceQueryParam(tt.base, DefaultCursorParam, tt.value)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
