package domain

import "time"

// CaseDateLayout is the date format used by the case catalogue.
const CaseDateLayout = "02-01-2006"

// CaseRecord is one entry in the case-law catalogue.
type CaseRecord struct {
	Title    string `yaml:"title" json:"title"`
	Citation string `yaml:"citation" json:"citation"`
	Court    string `yaml:"court" json:"court"`
	Date     string `yaml:"date" json:"date"`
	Domain   string `yaml:"domain" json:"domain"`
	Judges   string `yaml:"judges" json:"judges"`
	Snippet  string `yaml:"snippet" json:"snippet"`
	Content  string `yaml:"content" json:"content"`
}

// Decided parses the decision date. ok is false when the date is malformed.
func (c CaseRecord) Decided() (t time.Time, ok bool) {
	t, err := time.Parse(CaseDateLayout, c.Date)
	return t, err == nil
}
