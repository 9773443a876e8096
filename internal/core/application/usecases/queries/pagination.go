package queries

import (
	"cmp"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Direction selects which side of the cursor a page is taken from.
type Direction string

const (
	DirectionAfter  Direction = "after"
	DirectionBefore Direction = "before"
)

// Cursor identifies a boundary record by its position in list order.
type Cursor struct {
	OrderDate time.Time `json:"orderDate"`
	ID        string    `json:"id"`
}

// CursorOf returns the cursor of o.
func CursorOf(o *order.Order) Cursor {
	return Cursor{OrderDate: o.OrderDate(), ID: o.ID()}
}

// EncodeCursor renders c as opaque base64url text.
func EncodeCursor(c Cursor) string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor parses text produced by EncodeCursor.
func DecodeCursor(encoded string) (Cursor, error) {
	var c Cursor

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return c, errs.NewValueIsInvalidErrorWithCause("cursor", err)
	}
	if err = json.Unmarshal(data, &c); err != nil {
		return c, errs.NewValueIsInvalidErrorWithCause("cursor", err)
	}
	if c.ID == "" {
		return c, errs.NewValueIsInvalidErrorWithCause("cursor", errors.New("cursor has no id"))
	}
	return c, nil
}

// compareListOrder orders cursors as lists are shown: newest order date
// first, then id descending. Negative means a comes first.
func compareListOrder(a, b Cursor) int {
	if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// PageRequest is a validated page selector.
type PageRequest struct {
	cursor    *Cursor
	limit     int
	direction Direction
}

// NewPageRequest validates raw pagination parameters. A nil limit means
// DefaultPageLimit and an empty direction means DirectionAfter. Without a
// cursor both directions return the first page.
func NewPageRequest(cursor string, limit *int, direction string) (PageRequest, error) {
	req := PageRequest{limit: DefaultPageLimit, direction: DirectionAfter}

	var validationErrs []error
	if cursor != "" {
		c, err := DecodeCursor(cursor)
		validationErrs = append(validationErrs, err)
		req.cursor = &c
	}
	if limit != nil {
		if *limit < 1 || *limit > MaxPageLimit {
			validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError("limit", *limit, 1, MaxPageLimit))
		}
		req.limit = *limit
	}
	switch Direction(direction) {
	case "":
	case DirectionAfter, DirectionBefore:
		req.direction = Direction(direction)
	default:
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause("direction",
			errors.New(`direction must be "after" or "before"`)))
	}

	if err := errors.Join(validationErrs...); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}

func (p PageRequest) Limit() int           { return p.limit }
func (p PageRequest) Direction() Direction { return p.direction }

// PageInfo describes where a page sits in the filtered list.
type PageInfo struct {
	HasNextPage     bool
	HasPreviousPage bool
	StartCursor     *string
	EndCursor       *string
}

// Cursors are ready-to-use cursors for the neighbouring pages.
type Cursors struct {
	Next     *string
	Previous *string
}

// paginate slices items, which must already be in list order.
//
// DirectionAfter returns up to limit items strictly after the cursor.
// DirectionBefore returns up to limit items immediately preceding it. The
// cursor record itself need not be present. A page that comes back empty
// still offers a cursor toward the records on the other side.
func paginate[T any](items []T, key func(T) Cursor, req PageRequest) ([]T, PageInfo, Cursors) {
	start, end := 0, min(req.limit, len(items))

	if req.cursor != nil {
		// first index strictly after the cursor
		after := len(items)
		// one past the last index strictly before the cursor
		before := 0
		for i, item := range items {
			c := compareListOrder(key(item), *req.cursor)
			if c < 0 {
				before = i + 1
			}
			if c > 0 && after == len(items) {
				after = i
			}
		}

		if req.direction == DirectionBefore {
			start, end = max(0, before-req.limit), before
		} else {
			start, end = after, min(after+req.limit, len(items))
		}
	}

	page := items[start:end]
	info := PageInfo{
		HasPreviousPage: start > 0,
		HasNextPage:     end < len(items),
	}
	if len(page) > 0 {
		first := EncodeCursor(key(page[0]))
		last := EncodeCursor(key(page[len(page)-1]))
		info.StartCursor = &first
		info.EndCursor = &last
	}

	var cursors Cursors
	if info.HasNextPage {
		cursors.Next = info.EndCursor
	}
	if info.HasPreviousPage {
		cursors.Previous = info.StartCursor
	}

	// An empty page past either end has no records to point at, so the way
	// back starts from the requested cursor.
	if len(page) == 0 && req.cursor != nil {
		boundary := EncodeCursor(*req.cursor)
		if req.direction == DirectionAfter && info.HasPreviousPage {
			cursors.Previous = &boundary
		}
		if req.direction == DirectionBefore && info.HasNextPage {
			cursors.Next = &boundary
		}
	}

	return page, info, cursors
}
