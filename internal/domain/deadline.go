package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk date format for deadlines.
const DateLayout = "2006-01-02"

// Priority ranks a deadline.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority is case-insensitive.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}
	return 0, Invalid("priority.parse", "unknown priority %q", s)
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Category groups deadlines by kind of work.
type Category int

const (
	CategoryCourtFiling Category = iota
	CategoryClientMeeting
	CategoryDocumentSubmission
	CategoryHearing
	CategoryCompliance
	CategoryOther
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCourtFiling,
	CategoryClientMeeting,
	CategoryDocumentSubmission,
	CategoryHearing,
	CategoryCompliance,
	CategoryOther,
}

func (c Category) String() string {
	switch c {
	case CategoryCourtFiling:
		return "Court Filing"
	case CategoryClientMeeting:
		return "Client Meeting"
	case CategoryDocumentSubmission:
		return "Document Submission"
	case CategoryHearing:
		return "Hearing"
	case CategoryCompliance:
		return "Compliance"
	default:
		return "Other"
	}
}

// ParseCategory is strict and case-insensitive.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, Invalid("category.parse", "unknown category %q", s)
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText maps unknown categories to Other so older files still load.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		parsed = CategoryOther
	}
	*c = parsed
	return nil
}

// Deadline is one tracked legal deadline.
type Deadline struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
	Notes       string   `json:"notes,omitempty"`
}

// Due parses the deadline date.
func (d Deadline) Due() (time.Time, error) {
	t, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		return time.Time{}, Invalid("deadline.date", "date %q is not YYYY-MM-DD", d.Date)
	}
	return t, nil
}

// Validate checks the fields a deadline cannot be stored without.
func (d Deadline) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return Invalid("deadline.validate", "title is required")
	}
	if _, err := d.Due(); err != nil {
		return err
	}
	if d.Priority < PriorityHigh || d.Priority > PriorityLow {
		return Invalid("deadline.validate", "priority %d out of range", int(d.Priority))
	}
	return nil
}
