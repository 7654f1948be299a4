// Package citation formats legal references in common citation styles.
package citation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/pkg/dateutil"
)

// Source is anything that can be rendered as a citation.
type Source interface {
	Type() domain.CitationType
	Validate() error
	Format(style domain.CitationStyle) (string, error)
}

func required(op string, fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return domain.Invalid(op, "missing required fields: %s", strings.Join(missing, ", "))
}

func unknownStyle(style domain.CitationStyle) error {
	return domain.Invalid("citation.format", "unsupported style %s", style)
}

// Case is a reported judgment.
type Case struct {
	Name     string `json:"case_name"`
	Citation string `json:"citation"`
	Court    string `json:"court"`
	Year     string `json:"year"`
	Judges   string `json:"judges,omitempty"`
}

func (c Case) Type() domain.CitationType { return domain.CitationCase }

func (c Case) Validate() error {
	return required("citation.case", map[string]string{
		"case_name": c.Name, "citation": c.Citation, "court": c.Court, "year": c.Year,
	})
}

func (c Case) Format(style domain.CitationStyle) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	switch style {
	case domain.StyleBluebook:
		s := fmt.Sprintf("%s, %s (%s, %s)", c.Name, c.Citation, c.Court, c.Year)
		if c.Judges != "" {
			s += fmt.Sprintf(" (%s)", c.Judges)
		}
		return s, nil
	case domain.StyleOSCOLA:
		s := fmt.Sprintf("%s [%s] %s", c.Name, c.Year, c.Citation)
		if c.Judges != "" {
			s += fmt.Sprintf(" (%s)", c.Judges)
		}
		return s, nil
	case domain.StyleHarvard:
		return fmt.Sprintf("%s (%s) %s", c.Name, c.Year, c.Citation), nil
	case domain.StyleAPA:
		return fmt.Sprintf("%s, %s (%s)", c.Name, c.Citation, c.Year), nil
	}
	return "", unknownStyle(style)
}

// Statute is an Act, optionally pinpointed to a section.
type Statute struct {
	Act     string `json:"act_name"`
	Year    string `json:"year"`
	Section string `json:"section,omitempty"`
	Country string `json:"country,omitempty"`
}

func (s Statute) Type() domain.CitationType { return domain.CitationStatute }

func (s Statute) Validate() error {
	return required("citation.statute", map[string]string{"act_name": s.Act, "year": s.Year})
}

func (s Statute) Format(style domain.CitationStyle) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	country := s.Country
	if strings.TrimSpace(country) == "" {
		country = "India"
	}
	switch style {
	case domain.StyleBluebook:
		if s.Section != "" {
			return fmt.Sprintf("%s, %s, %s (%s)", s.Section, s.Act, s.Year, country), nil
		}
		return fmt.Sprintf("%s, %s (%s)", s.Act, s.Year, country), nil
	case domain.StyleOSCOLA:
		if s.Section != "" {
			return fmt.Sprintf("%s %s (%s), %s", s.Act, s.Year, country, s.Section), nil
		}
		return fmt.Sprintf("%s %s (%s)", s.Act, s.Year, country), nil
	case domain.StyleHarvard, domain.StyleAPA:
		if s.Section != "" {
			return fmt.Sprintf("%s %s, %s (%s)", s.Act, s.Year, s.Section, country), nil
		}
		return fmt.Sprintf("%s %s (%s)", s.Act, s.Year, country), nil
	}
	return "", unknownStyle(style)
}

// Journal is an article in a periodical.
type Journal struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Journal string `json:"journal"`
	Volume  string `json:"volume"`
	Issue   string `json:"issue,omitempty"`
	Year    string `json:"year"`
	Pages   string `json:"pages"`
}

func (j Journal) Type() domain.CitationType { return domain.CitationJournal }

func (j Journal) Validate() error {
	return required("citation.journal", map[string]string{
		"author": j.Author, "title": j.Title, "journal": j.Journal,
		"volume": j.Volume, "year": j.Year, "pages": j.Pages,
	})
}

func (j Journal) Format(style domain.CitationStyle) (string, error) {
	if err := j.Validate(); err != nil {
		return "", err
	}
	volume := j.Volume
	if j.Issue != "" {
		volume += "(" + j.Issue + ")"
	}
	switch style {
	case domain.StyleBluebook:
		return fmt.Sprintf("%s, '%s', %s %s %s (%s)", j.Author, j.Title, volume, j.Journal, j.Pages, j.Year), nil
	case domain.StyleOSCOLA:
		return fmt.Sprintf("%s, '%s' [%s] %s %s %s", j.Author, j.Title, j.Year, volume, j.Journal, j.Pages), nil
	case domain.StyleHarvard:
		return fmt.Sprintf("%s (%s) '%s', %s, %s, pp. %s", j.Author, j.Year, j.Title, j.Journal, volume, j.Pages), nil
	case domain.StyleAPA:
		return fmt.Sprintf("%s (%s). %s. %s, %s, %s.", j.Author, j.Year, j.Title, j.Journal, volume, j.Pages), nil
	}
	return "", unknownStyle(style)
}

// Book is a monograph or treatise.
type Book struct {
	Author    string `json:"author"`
	Title     string `json:"title"`
	Edition   string `json:"edition,omitempty"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
}

func (b Book) Type() domain.CitationType { return domain.CitationBook }

func (b Book) Validate() error {
	return required("citation.book", map[string]string{
		"author": b.Author, "title": b.Title, "publisher": b.Publisher, "year": b.Year,
	})
}

func (b Book) Format(style domain.CitationStyle) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	edition := ""
	if b.Edition != "" {
		edition = b.Edition + " edn, "
	}
	switch style {
	case domain.StyleBluebook:
		return fmt.Sprintf("%s, %s (%s%s, %s)", b.Author, b.Title, edition, b.Publisher, b.Year), nil
	case domain.StyleOSCOLA:
		return fmt.Sprintf("%s, %s (%s%s %s)", b.Author, b.Title, edition, b.Publisher, b.Year), nil
	case domain.StyleHarvard:
		return fmt.Sprintf("%s (%s) %s. %s%s.", b.Author, b.Year, b.Title, edition, b.Publisher), nil
	case domain.StyleAPA:
		if b.Edition != "" {
			return fmt.Sprintf("%s (%s). %s (%s edn). %s.", b.Author, b.Year, b.Title, b.Edition, b.Publisher), nil
		}
		return fmt.Sprintf("%s (%s). %s. %s.", b.Author, b.Year, b.Title, b.Publisher), nil
	}
	return "", unknownStyle(style)
}

// Online is a web resource.
type Online struct {
	Author   string    `json:"author,omitempty"`
	Title    string    `json:"title"`
	Website  string    `json:"website"`
	URL      string    `json:"url"`
	Accessed time.Time `json:"accessed"`
}

func (o Online) Type() domain.CitationType { return domain.CitationOnline }

func (o Online) Validate() error {
	if err := required("citation.online", map[string]string{"title": o.Title, "website": o.Website, "url": o.URL}); err != nil {
		return err
	}
	if o.Accessed.IsZero() {
		return domain.Invalid("citation.online", "missing required fields: accessed")
	}
	return nil
}

func (o Online) Format(style domain.CitationStyle) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	accessed := dateutil.FormatLong(o.Accessed)
	switch style {
	case domain.StyleBluebook:
		return fmt.Sprintf("%s'%s', %s, available at %s (accessed on %s)", prefix(o.Author, ", "), o.Title, o.Website, o.URL, accessed), nil
	case domain.StyleOSCOLA:
		return fmt.Sprintf("%s'%s' (%s) <%s> accessed %s", prefix(o.Author, ", "), o.Title, o.Website, o.URL, accessed), nil
	case domain.StyleHarvard:
		author := o.Author
		if author == "" {
			author = o.Website
		}
		return fmt.Sprintf("%s (n.d.). %s. Available at: %s [Accessed %s].", author, o.Title, o.URL, accessed), nil
	case domain.StyleAPA:
		return fmt.Sprintf("%s(%d). %s. %s. Retrieved %s, from %s", prefix(o.Author, ". "), o.Accessed.Year(), o.Title, o.Website, accessed, o.URL), nil
	}
	return "", unknownStyle(style)
}

func prefix(s, sep string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s + sep
}

// FromFields builds the source for t out of loosely typed form fields, as
// submitted by the web form or CLI flags. The "accessed" field of an online
// source is an ISO date and defaults to now.
func FromFields(t domain.CitationType, fields map[string]string, now time.Time) (Source, error) {
	f := func(k string) string { return strings.TrimSpace(fields[k]) }
	switch t {
	case domain.CitationCase:
		return Case{Name: f("case_name"), Citation: f("citation"), Court: f("court"), Year: f("year"), Judges: f("judges")}, nil
	case domain.CitationStatute:
		return Statute{Act: f("act_name"), Year: f("year"), Section: f("section"), Country: f("country")}, nil
	case domain.CitationJournal:
		return Journal{Author: f("author"), Title: f("title"), Journal: f("journal"), Volume: f("volume"), Issue: f("issue"), Year: f("year"), Pages: f("pages")}, nil
	case domain.CitationBook:
		return Book{Author: f("author"), Title: f("title"), Edition: f("edition"), Publisher: f("publisher"), Year: f("year")}, nil
	case domain.CitationOnline:
		accessed := now
		if v := f("accessed"); v != "" {
			parsed, err := dateutil.ParseISO(v)
			if err != nil {
				return nil, domain.Invalid("citation.online", "accessed must be YYYY-MM-DD, got %q", v)
			}
			accessed = parsed
		}
		return Online{Author: f("author"), Title: f("title"), Website: f("website"), URL: f("url"), Accessed: accessed}, nil
	}
	return nil, domain.Invalid("citation.fields", "unknown citation type %d", int(t))
}

// Generate validates and formats a citation in one step.
func Generate(t domain.CitationType, style domain.CitationStyle, fields map[string]string, now time.Time) (string, error) {
	src, err := FromFields(t, fields, now)
	if err != nil {
		return "", err
	}
	return src.Format(style)
}
