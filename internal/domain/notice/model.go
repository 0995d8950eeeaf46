package notice

import (
	"errors"
	"strings"
	"time"
)

// Status constants
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Accent colors available for the announcement board.
const (
	ColorOrange = "orange"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorRed    = "red"
)

// ColorHex maps accent colors to their display hex values.
var ColorHex = map[string]string{
	ColorOrange: "#f97316",
	ColorBlue:   "#3b82f6",
	ColorGreen:  "#22c55e",
	ColorRed:    "#ef4444",
}

// Domain errors
var (
	ErrEmptyTitle       = errors.New("notice title cannot be empty")
	ErrEmptyContent     = errors.New("notice content cannot be empty")
	ErrInvalidColor     = errors.New("notice color is not recognised")
	ErrAlreadyPublished = errors.New("notice is already published")
)

// Notice is one announcement shown on the staff dashboard. Content is
// markdown and rendered at display time.
type Notice struct {
	ID          string
	Status      string
	Title       string
	Content     string
	Color       string
	Pinned      bool
	CreatedBy   string // account ID of the author
	CreatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (n *Notice) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyContent
	}
	if _, ok := ColorHex[n.Color]; !ok {
		return ErrInvalidColor
	}
	return nil
}

// Publish moves a draft notice onto the board.
// PRE: Notice is in draft status
// POST: Status is published, PublishedAt is set
func (n *Notice) Publish(now time.Time) error {
	if n.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	n.Status = StatusPublished
	n.PublishedAt = now
	return nil
}

// IsPublished returns true once the notice is on the board.
// INVARIANT: Notice fields are not mutated
func (n *Notice) IsPublished() bool {
	return n.Status == StatusPublished
}
