package feed

import (
	"strings"
	"time"
)

// Feed output types

type Metadata struct {
	Title       string
	Description string
	Link        string
	ImageURL    string
}

type Item struct {
	ID          string // upstream article id, dedup key
	Title       string
	Link        string // always absolute
	Description string
	PublishedAt time.Time
	UpdatedAt   time.Time
	Authors     []string
	Categories  []string
}

// Author returns the comma-joined author list for serialization.
func (i Item) Author() string {
	return strings.Join(i.Authors, ", ")
}
