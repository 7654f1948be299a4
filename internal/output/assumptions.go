package output

import (
	"fmt"

	"github.com/lexdesk/legal-assistant/internal/calculation"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = GenerateAssumptions("")

// GenerateAssumptions creates the assumptions list for an assessment year.
func GenerateAssumptions(assessmentYear string) []string {
	year := "Slab rates as notified for AY 2023-24"
	if assessmentYear != "" {
		year = fmt.Sprintf("Slab rates as notified for AY 2023-24, applied to AY %s", assessmentYear)
	}
	return []string{
		year,
		fmt.Sprintf("Health & Education Cess: %s of total slab tax", FormatRate(calculation.CessRate)),
		fmt.Sprintf("Old regime caps: 80C %s, 80D %s, 80TTA %s, Section 24 %s; 80G and other deductions uncapped",
			FormatCurrency(calculation.Cap80C), FormatCurrency(calculation.Cap80D),
			FormatCurrency(calculation.Cap80TTA), FormatCurrency(calculation.Cap24)),
		"New regime: no deductions allowed",
		"Surcharge and the section 87A rebate are not modelled",
	}
}
