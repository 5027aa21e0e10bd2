// Package model defines domain entities for the application.
package model

import "time"

// Image represents a gallery image record.
// IDs are ULIDs assigned at insert time; their lexicographic order matches
// insertion order, which makes the raw ID usable as a pagination cursor.
type Image struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// HasKeyword reports whether the image carries the given tag.
func (i *Image) HasKeyword(keyword string) bool {
	for _, k := range i.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// Page is one window of a cursor-paginated image listing.
// NextCursor is the ID of the last item when more data exists, empty when
// the listing is exhausted.
type Page struct {
	Items      []*Image
	NextCursor string
}

// HasMore reports whether a follow-up request would return further items.
func (p *Page) HasMore() bool {
	return p.NextCursor != ""
}
