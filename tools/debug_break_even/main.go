package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lexdesk/legal-assistant/internal/calculation"
	"github.com/lexdesk/legal-assistant/internal/config"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/shopspring/decimal"
)

// Sweeps salary for a tax input file and prints both regimes' tax, marking
// the salaries at which the recommended regime changes.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <tax-input-file> [max-salary] [step]")
		return
	}
	p := config.NewInputParser()
	in, err := p.LoadTaxInput(os.Args[1])
	if err != nil {
		panic(err)
	}

	maxSalary, step := int64(3000000), int64(50000)
	if len(os.Args) > 2 {
		if maxSalary, err = strconv.ParseInt(os.Args[2], 10, 64); err != nil {
			panic(err)
		}
	}
	if len(os.Args) > 3 {
		if step, err = strconv.ParseInt(os.Args[3], 10, 64); err != nil {
			panic(err)
		}
	}
	if step <= 0 {
		fmt.Println("step must be positive")
		return
	}

	fmt.Println("Salary,Gross,OldTaxable,OldTax,NewTax,Recommended,Savings")
	var (
		prev     domain.TaxRegime
		flips    []decimal.Decimal
		havePrev bool
	)
	for s := int64(0); s <= maxSalary; s += step {
		income := in.Income
		income.Salary = decimal.NewFromInt(s)
		res, err := calculation.Compare(income, in.Deductions)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d,%s,%s,%s,%s,%s,%s\n", s,
			res.GrossIncome.StringFixed(0),
			res.OldTaxableIncome.StringFixed(0),
			res.OldTax.StringFixed(0),
			res.NewTax.StringFixed(0),
			res.RecommendedRegime,
			res.SavingsAmount.StringFixed(0))
		if havePrev && res.RecommendedRegime != prev {
			flips = append(flips, income.Salary)
		}
		prev, havePrev = res.RecommendedRegime, true
	}

	if len(flips) == 0 {
		fmt.Printf("\nBreakEven: the %s wins across the whole range\n", prev.Label())
		return
	}
	for _, f := range flips {
		fmt.Printf("\nBreakEven: recommendation changes at salary %s\n", f.StringFixed(0))
	}
}
