package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRegime selects one of the two Indian personal income-tax regimes. The
// zero value is RegimeUnset, which no calculation accepts.
type TaxRegime int

const (
	RegimeUnset TaxRegime = iota
	RegimeOld
	RegimeNew
)

// Regimes lists every regime in display order.
var Regimes = []TaxRegime{RegimeOld, RegimeNew}

func (r TaxRegime) String() string {
	switch r {
	case RegimeOld:
		return "old"
	case RegimeNew:
		return "new"
	case RegimeUnset:
		return "unset"
	default:
		return fmt.Sprintf("TaxRegime(%d)", int(r))
	}
}

// Label is the human readable regime name.
func (r TaxRegime) Label() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return r.String()
	}
}

// Valid reports whether r is one of the two regimes.
func (r TaxRegime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// RequireRegime rejects an unset or unknown regime.
func RequireRegime(op string, r TaxRegime) error {
	if r == RegimeUnset {
		return Invalid(op, "tax regime is required (old or new)")
	}
	if !r.Valid() {
		return Invalid(op, "unknown tax regime %d", int(r))
	}
	return nil
}

// ParseTaxRegime accepts "old", "new", "Old Regime" and "New Regime" in any case.
func ParseTaxRegime(s string) (TaxRegime, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.TrimSuffix(n, " regime")
	switch n {
	case "old":
		return RegimeOld, nil
	case "new":
		return RegimeNew, nil
	}
	return RegimeUnset, Invalid("regime.parse", "unknown tax regime %q", s)
}

func (r TaxRegime) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, Invalid("regime.marshal", "unknown tax regime %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *TaxRegime) UnmarshalText(text []byte) error {
	parsed, err := ParseTaxRegime(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SlabBracket is one progressive tax band. Income in (Lower, Upper] is taxed at Rate.
// The top band of a table is Unbounded and ignores Upper.
type SlabBracket struct {
	Lower     decimal.Decimal `json:"lower"`
	Upper     decimal.Decimal `json:"upper"`
	Unbounded bool            `json:"unbounded,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
}

// IncomeProfile holds annual income by head. Only house property may be negative.
type IncomeProfile struct {
	Salary        decimal.Decimal `yaml:"salary" json:"salary"`
	Business      decimal.Decimal `yaml:"business" json:"business"`
	CapitalGains  decimal.Decimal `yaml:"capital_gains" json:"capital_gains"`
	HouseProperty decimal.Decimal `yaml:"house_property" json:"house_property"`
	Other         decimal.Decimal `yaml:"other" json:"other"`
}

// Gross is the sum of every income head.
func (p IncomeProfile) Gross() decimal.Decimal {
	return p.Salary.Add(p.Business).Add(p.CapitalGains).Add(p.HouseProperty).Add(p.Other)
}

// Validate rejects fractional amounts and negative values outside house property.
func (p IncomeProfile) Validate() error {
	heads := []struct {
		name     string
		value    decimal.Decimal
		negative bool
	}{
		{"salary", p.Salary, false},
		{"business", p.Business, false},
		{"capital_gains", p.CapitalGains, false},
		{"house_property", p.HouseProperty, true},
		{"other", p.Other, false},
	}
	for _, h := range heads {
		if !IsWholeAmount(h.value) {
			return Invalid("income.validate", "%s must be a whole amount, got %s", h.name, h.value)
		}
		if !h.negative && h.value.IsNegative() {
			return Invalid("income.validate", "%s cannot be negative", h.name)
		}
	}
	return nil
}

// DeductionProfile holds claimed old-regime deductions before caps are applied.
type DeductionProfile struct {
	Section80C   decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D   decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	Section80G   decimal.Decimal `yaml:"section_80g" json:"section_80g"`
	Section80TTA decimal.Decimal `yaml:"section_80tta" json:"section_80tta"`
	Section24    decimal.Decimal `yaml:"section_24" json:"section_24"`
	Other        decimal.Decimal `yaml:"other" json:"other"`
}

// Validate rejects fractional claims. Negative claims are clamped later.
func (d DeductionProfile) Validate() error {
	claims := []struct {
		name  string
		value decimal.Decimal
	}{
		{"section_80c", d.Section80C},
		{"section_80d", d.Section80D},
		{"section_80g", d.Section80G},
		{"section_80tta", d.Section80TTA},
		{"section_24", d.Section24},
		{"other", d.Other},
	}
	for _, c := range claims {
		if !IsWholeAmount(c.value) {
			return Invalid("deductions.validate", "%s must be a whole amount, got %s", c.name, c.value)
		}
	}
	return nil
}

// DeductionItem is one deduction head after capping.
type DeductionItem struct {
	Section string           `json:"section"`
	Claimed decimal.Decimal  `json:"claimed"`
	Allowed decimal.Decimal  `json:"allowed"`
	Cap     *decimal.Decimal `json:"cap,omitempty"`
}

// BreakdownLine is one row of a tax breakdown.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
	Cess   bool            `json:"cess,omitempty"`
}

// TaxResult is the output of a single slab computation.
type TaxResult struct {
	Regime    TaxRegime       `json:"regime"`
	Taxable   decimal.Decimal `json:"taxable_income"`
	PreCess   decimal.Decimal `json:"pre_cess"`
	Cess      decimal.Decimal `json:"cess"`
	Total     decimal.Decimal `json:"total"`
	Breakdown []BreakdownLine `json:"breakdown"`
}

// ComparisonResult compares both regimes for one income profile.
type ComparisonResult struct {
	GrossIncome       decimal.Decimal `json:"gross_income"`
	OldDeductions     decimal.Decimal `json:"old_deductions"`
	OldTaxableIncome  decimal.Decimal `json:"old_taxable_income"`
	NewTaxableIncome  decimal.Decimal `json:"new_taxable_income"`
	OldTax            decimal.Decimal `json:"old_tax"`
	NewTax            decimal.Decimal `json:"new_tax"`
	OldBreakdown      []BreakdownLine `json:"old_breakdown"`
	NewBreakdown      []BreakdownLine `json:"new_breakdown"`
	RecommendedRegime TaxRegime       `json:"recommended_regime"`
	SavingsAmount     decimal.Decimal `json:"savings_amount"`
}

// TaxInput is a complete request for a single-regime calculation.
type TaxInput struct {
	AssessmentYear string           `yaml:"assessment_year" json:"assessment_year"`
	Regime         TaxRegime        `yaml:"regime" json:"regime"`
	Income         IncomeProfile    `yaml:"income" json:"income"`
	Deductions     DeductionProfile `yaml:"deductions" json:"deductions"`
}

// TaxCalculation is the full single-regime result.
type TaxCalculation struct {
	AssessmentYear  string          `json:"assessment_year,omitempty"`
	Regime          TaxRegime       `json:"regime"`
	GrossIncome     decimal.Decimal `json:"gross_income"`
	Deductions      []DeductionItem `json:"deductions,omitempty"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	Tax             decimal.Decimal `json:"tax"`
	Breakdown       []BreakdownLine `json:"breakdown"`
	EffectiveRate   decimal.Decimal `json:"effective_rate"`
}

// DeductionScenario is one preset evaluated by the deduction analyzer.
type DeductionScenario struct {
	Name            string           `json:"name"`
	Deductions      DeductionProfile `json:"deductions"`
	TotalDeductions decimal.Decimal  `json:"total_deductions"`
	TaxableIncome   decimal.Decimal  `json:"taxable_income"`
	Tax             decimal.Decimal  `json:"tax"`
	Savings         decimal.Decimal  `json:"savings"`
}

// DeductionAnalysis groups scenario results for one base income.
type DeductionAnalysis struct {
	BaseIncome decimal.Decimal     `json:"base_income"`
	Scenarios  []DeductionScenario `json:"scenarios"`
	Best       string              `json:"best"`
}

// TaxReport is what output formatters render. Any subset may be set.
type TaxReport struct {
	Calculation *TaxCalculation    `json:"calculation,omitempty"`
	Comparison  *ComparisonResult  `json:"comparison,omitempty"`
	Analysis    *DeductionAnalysis `json:"analysis,omitempty"`
}

// IsWholeAmount reports whether d has no fractional part.
func IsWholeAmount(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}
