// Package pagination splits one cursor-fetched chunk of items into
// fixed-size display pages and derives the navigation targets around them.
//
// A chunk holds up to PageSize*PagesPerChunk items. Moving between pages of
// the same chunk never touches the API; moving past either end of the chunk
// yields a target carrying the boundary cursor, which the collection loader
// turns into a new first/after or last/before query.
package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"vitrina/models"
)

const (
	DefaultPageSize      = 8
	DefaultPagesPerChunk = 4
)

// Direction tells the loader which way to walk from a cursor.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// ParseDirection returns the matching Direction, or "" for anything else.
func ParseDirection(s string) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionNext:
		return DirectionNext
	case DirectionPrevious:
		return DirectionPrevious
	}
	return ""
}

// Config holds the page geometry.
type Config struct {
	PageSize      int
	PagesPerChunk int
}

// ChunkSize is the number of items requested per API round trip.
func (c Config) ChunkSize() int {
	c = c.normalized()
	return c.PageSize * c.PagesPerChunk
}

func (c Config) normalized() Config {
	if c.PageSize < 1 {
		c.PageSize = DefaultPageSize
	}
	if c.PagesPerChunk < 1 {
		c.PagesPerChunk = DefaultPagesPerChunk
	}
	return c
}

// Request is the pagination state carried in the URL query.
type Request struct {
	Page      string
	Cursor    string
	Direction Direction
}

// ParseRequest reads page, cursor and direction from query parameters.
func ParseRequest(q url.Values) Request {
	return Request{
		Page:      q.Get("page"),
		Cursor:    strings.TrimSpace(q.Get("cursor")),
		Direction: ParseDirection(q.Get("direction")),
	}
}

// ParsePage converts the raw page parameter to a page number. Anything that
// is not a positive integer yields 1. Positive numbers too large for an int
// yield math.MaxInt so Paginate clamps them to the last page.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Target is a navigation destination. Cursor and Direction are empty for a
// page inside the current chunk and set when a new chunk must be fetched.
type Target struct {
	Page      int       `json:"page"`
	Cursor    string    `json:"cursor,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// CrossChunk reports whether following the target requires a new fetch.
func (t Target) CrossChunk() bool {
	return t.Cursor != "" && t.Direction != ""
}

// Query encodes the target as URL query parameters.
func (t Target) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(t.Page))
	if t.CrossChunk() {
		q.Set("cursor", t.Cursor)
		q.Set("direction", string(t.Direction))
	}
	return q
}

// URL returns path with the target's query string.
func (t Target) URL(path string) string {
	return path + "?" + t.Query().Encode()
}

// Result is the derived view of one page.
type Result[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	Next        *Target
	Previous    *Target
	Pages       []Target

	// chunk identifies the chunk currently shown so intra-chunk links can
	// re-request it.
	chunk Target
}

// HasNext reports whether a next target exists.
func (r Result[T]) HasNext() bool { return r.Next != nil }

// HasPrevious reports whether a previous target exists.
func (r Result[T]) HasPrevious() bool { return r.Previous != nil }

// LinkQuery encodes t for a link on this page. Intra-chunk targets keep the
// cursor and direction that loaded the current chunk.
func (r Result[T]) LinkQuery(t Target) url.Values {
	if !t.CrossChunk() && r.chunk.CrossChunk() {
		t.Cursor = r.chunk.Cursor
		t.Direction = r.chunk.Direction
	}
	return t.Query()
}

// LinkURL is LinkQuery rendered onto path.
func (r Result[T]) LinkURL(path string, t Target) string {
	return path + "?" + r.LinkQuery(t).Encode()
}

// Paginate derives the visible page and navigation targets for items, the
// chunk fetched with req.Cursor/req.Direction and described by info.
func Paginate[T any](items []T, cfg Config, req Request, info models.PageInfo) Result[T] {
	cfg = cfg.normalized()
	size := cfg.PageSize

	totalPages := (len(items) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	current := ParsePage(req.Page)
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	visible := make([]T, end-start)
	copy(visible, items[start:end])

	res := Result[T]{
		Items:       visible,
		CurrentPage: current,
		TotalPages:  totalPages,
		Pages:       make([]Target, 0, totalPages),
		chunk:       Target{Page: current, Cursor: req.Cursor, Direction: req.Direction},
	}

	switch {
	case current < totalPages:
		res.Next = &Target{Page: current + 1}
	case info.HasNextPage && info.EndCursor != "":
		res.Next = &Target{Page: 1, Cursor: info.EndCursor, Direction: DirectionNext}
	}

	switch {
	case current > 1:
		res.Previous = &Target{Page: current - 1}
	case info.HasPreviousPage && info.StartCursor != "":
		// The previous chunk's size is unknown until fetched; assume it is
		// full and let the next render clamp the page.
		res.Previous = &Target{Page: cfg.PagesPerChunk, Cursor: info.StartCursor, Direction: DirectionPrevious}
	}

	for p := 1; p <= totalPages; p++ {
		res.Pages = append(res.Pages, Target{Page: p})
	}

	return res
}

// QueryVars are the GraphQL connection arguments for one chunk.
type QueryVars struct {
	First  *int    `json:"first,omitempty"`
	Last   *int    `json:"last,omitempty"`
	After  *string `json:"after,omitempty"`
	Before *string `json:"before,omitempty"`
}

// ChunkQuery maps the URL cursor state to connection arguments. Without a
// usable cursor/direction pair the first chunk is requested.
func ChunkQuery(cursor string, dir Direction, cfg Config) QueryVars {
	size := cfg.ChunkSize()
	if cursor == "" {
		return QueryVars{First: &size}
	}
	switch dir {
	case DirectionNext:
		return QueryVars{First: &size, After: &cursor}
	case DirectionPrevious:
		return QueryVars{Last: &size, Before: &cursor}
	}
	return QueryVars{First: &size}
}
