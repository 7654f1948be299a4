// Package search filters the bundled case-law catalogue.
package search

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/pkg/dateutil"
)

//go:embed catalogue.yaml
var embeddedCatalogue []byte

// All in a filter list disables that filter.
const All = "All"

// Jurisdictions offered by the search form.
var Jurisdictions = []string{
	"Supreme Court", "High Courts", "District Courts",
	"Income Tax Appellate Tribunal", "GST Authority",
	"Company Law Board", "National Company Law Tribunal",
	"Consumer Forums", All,
}

// LegalDomains offered by the search form.
var LegalDomains = []string{
	"Constitutional Law", "Criminal Law", "Civil Law",
	"Corporate Law", "Tax Law", "Intellectual Property",
	"Banking & Finance", "Environmental Law", "Labor Law",
	"Family Law", All,
}

// SortOrder orders search results.
type SortOrder int

const (
	SortRelevance SortOrder = iota
	SortNewest
	SortOldest
)

func (o SortOrder) String() string {
	switch o {
	case SortRelevance:
		return "relevance"
	case SortNewest:
		return "newest"
	case SortOldest:
		return "oldest"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// ParseSortOrder accepts the short keys or the form labels. Empty is relevance.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance":
		return SortRelevance, nil
	case "newest", "date (newest first)":
		return SortNewest, nil
	case "oldest", "date (oldest first)":
		return SortOldest, nil
	}
	return 0, domain.Invalid("search.sort", "unknown sort order %q", s)
}

// Query describes a catalogue search. Zero values disable each filter.
type Query struct {
	Text          string    `json:"query"`
	Jurisdictions []string  `json:"jurisdictions"`
	Domains       []string  `json:"domains"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Citation      string    `json:"citation"`
	Judge         string    `json:"judge"`
	Sort          SortOrder `json:"-"`
	Limit         int       `json:"limit"`
}

// Catalogue is an immutable list of case records.
type Catalogue struct {
	records []domain.CaseRecord
}

// ParseCatalogue decodes a YAML list of case records.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var records []domain.CaseRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse case catalogue: %w", err)
	}
	return &Catalogue{records: records}, nil
}

// LoadCatalogue reads a catalogue file, or the bundled one when path is empty.
func LoadCatalogue(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case catalogue %s: %w", path, err)
	}
	return ParseCatalogue(data)
}

var defaultCatalogue = sync.OnceValue(func() *Catalogue {
	c, err := ParseCatalogue(embeddedCatalogue)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the bundled catalogue.
func Default() *Catalogue { return defaultCatalogue() }

// Records returns a copy of every record in catalogue order.
func (c *Catalogue) Records() []domain.CaseRecord {
	return slices.Clone(c.records)
}

// Search returns the records matching q.
func (c *Catalogue) Search(q Query) []domain.CaseRecord {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	type hit struct {
		rec   domain.CaseRecord
		score int
	}
	var hits []hit
	for _, r := range c.records {
		if !anyContains(q.Jurisdictions, r.Court) || !anyContains(q.Domains, r.Domain) {
			continue
		}
		if decided, ok := r.Decided(); ok && !dateutil.InRange(decided, q.From, q.To) {
			continue
		}
		if !containsFold(r.Citation, q.Citation) || !containsFold(r.Judges, q.Judge) {
			continue
		}
		score := 0
		if needle != "" {
			score = strings.Count(strings.ToLower(r.Title), needle) +
				strings.Count(strings.ToLower(r.Content), needle) +
				strings.Count(strings.ToLower(r.Snippet), needle)
			if score == 0 {
				continue
			}
		}
		hits = append(hits, hit{rec: r, score: score})
	}

	switch q.Sort {
	case SortNewest, SortOldest:
		slices.SortStableFunc(hits, func(a, b hit) int {
			ta, _ := a.rec.Decided()
			tb, _ := b.rec.Decided()
			if q.Sort == SortNewest {
				return tb.Compare(ta)
			}
			return ta.Compare(tb)
		})
	default:
		slices.SortStableFunc(hits, func(a, b hit) int { return b.score - a.score })
	}

	out := make([]domain.CaseRecord, 0, len(hits))
	for _, h := range hits {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		out = append(out, h.rec)
	}
	return out
}

// anyContains reports whether value contains any filter as a case-insensitive
// substring. An empty filter list or one holding All matches everything.
func anyContains(filters []string, value string) bool {
	if len(filters) == 0 || slices.Contains(filters, All) {
		return true
	}
	for _, f := range filters {
		if containsFold(value, f) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// Count is one bucket of an analytics breakdown.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Analytics summarises a result set.
type Analytics struct {
	Total    int     `json:"total"`
	ByCourt  []Count `json:"by_court"`
	ByDomain []Count `json:"by_domain"`
	ByYear   []Count `json:"by_year"`
}

// Analyze counts results by court and domain (largest first) and by year
// (chronological).
func Analyze(results []domain.CaseRecord) Analytics {
	courts := map[string]int{}
	domains := map[string]int{}
	years := map[string]int{}
	for _, r := range results {
		courts[r.Court]++
		domains[r.Domain]++
		if t, ok := r.Decided(); ok {
			years[fmt.Sprint(t.Year())]++
		}
	}
	byYear := counts(years)
	slices.SortFunc(byYear, func(a, b Count) int { return strings.Compare(a.Name, b.Name) })
	return Analytics{
		Total:    len(results),
		ByCourt:  counts(courts),
		ByDomain: counts(domains),
		ByYear:   byYear,
	}
}

func counts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
