package domain

import (
	"fmt"
	"strings"
)

// CitationStyle is a supported legal citation style.
type CitationStyle int

const (
	StyleBluebook CitationStyle = iota
	StyleOSCOLA
	StyleHarvard
	StyleAPA
)

// CitationStyles lists every style in display order.
var CitationStyles = []CitationStyle{StyleBluebook, StyleOSCOLA, StyleHarvard, StyleAPA}

func (s CitationStyle) String() string {
	switch s {
	case StyleBluebook:
		return "Bluebook (India)"
	case StyleOSCOLA:
		return "OSCOLA (Oxford)"
	case StyleHarvard:
		return "Harvard"
	case StyleAPA:
		return "APA"
	default:
		return fmt.Sprintf("CitationStyle(%d)", int(s))
	}
}

// ParseCitationStyle accepts the display name or a short key such as "bluebook".
func ParseCitationStyle(s string) (CitationStyle, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for _, style := range CitationStyles {
		full := strings.ToLower(style.String())
		if n == full || (n != "" && strings.Fields(full)[0] == n) {
			return style, nil
		}
	}
	return 0, Invalid("citation.style", "unknown citation style %q", s)
}

func (s CitationStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *CitationStyle) UnmarshalText(text []byte) error {
	parsed, err := ParseCitationStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CitationType is the kind of source being cited.
type CitationType int

const (
	CitationCase CitationType = iota
	CitationStatute
	CitationJournal
	CitationBook
	CitationOnline
)

// CitationTypes lists every type in display order.
var CitationTypes = []CitationType{CitationCase, CitationStatute, CitationJournal, CitationBook, CitationOnline}

func (t CitationType) String() string {
	switch t {
	case CitationCase:
		return "Case Law"
	case CitationStatute:
		return "Statute/Act"
	case CitationJournal:
		return "Journal Article"
	case CitationBook:
		return "Book"
	case CitationOnline:
		return "Online Resource"
	default:
		return fmt.Sprintf("CitationType(%d)", int(t))
	}
}

// Key is the short identifier used by the CLI and the API.
func (t CitationType) Key() string {
	switch t {
	case CitationCase:
		return "case"
	case CitationStatute:
		return "statute"
	case CitationJournal:
		return "journal"
	case CitationBook:
		return "book"
	case CitationOnline:
		return "online"
	default:
		return ""
	}
}

// ParseCitationType accepts the key or the display name.
func ParseCitationType(s string) (CitationType, error) {
	n := strings.TrimSpace(s)
	for _, t := range CitationTypes {
		if strings.EqualFold(n, t.Key()) || strings.EqualFold(n, t.String()) {
			return t, nil
		}
	}
	return 0, Invalid("citation.type", "unknown citation type %q", s)
}
