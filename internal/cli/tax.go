package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lexdesk/legal-assistant/internal/calculation"
	"github.com/lexdesk/legal-assistant/internal/config"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/output"
)

// amountFlag binds one rupee amount flag to a field of the tax input.
type amountFlag struct {
	name  string
	usage string
	field func(*domain.TaxInput) *decimal.Decimal
}

var incomeFlags = []amountFlag{
	{"salary", "salary income", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Salary }},
	{"business", "business or professional income", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Business }},
	{"capital-gains", "capital gains", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.CapitalGains }},
	{"house-property", "house property income (may be negative)", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.HouseProperty }},
	{"other-income", "income from other sources", func(in *domain.TaxInput) *decimal.Decimal { return &in.Income.Other }},
}

var deductionFlags = []amountFlag{
	{"80c", "section 80C investments", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80C }},
	{"80d", "section 80D health insurance", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80D }},
	{"80g", "section 80G donations", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80G }},
	{"80tta", "section 80TTA savings interest", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section80TTA }},
	{"24", "section 24 home loan interest", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Section24 }},
	{"other-deductions", "other deductions", func(in *domain.TaxInput) *decimal.Decimal { return &in.Deductions.Other }},
}

func amountFlags() []amountFlag {
	return append(append([]amountFlag{}, incomeFlags...), deductionFlags...)
}

// taxOptions are the flags shared by the tax subcommands.
type taxOptions struct {
	input     string
	regime    string
	year      string
	format    string
	outputDir string
	amounts   map[string]*string
}

func (o *taxOptions) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.input, "input", "i", "", "tax input file (YAML)")
	fs.StringVar(&o.year, "year", "", "assessment year shown on reports")
	fs.StringVarP(&o.format, "format", "f", "console", "output format (console, console-lite, csv, detailed-csv, html, json)")
	fs.StringVarP(&o.outputDir, "output-dir", "o", "", "write the report to a file in this directory instead of stdout")

	o.amounts = map[string]*string{}
	for _, f := range amountFlags() {
		o.amounts[f.name] = fs.String(f.name, "", f.usage)
	}
}

// taxInput loads --input when given and applies explicitly set flags on top.
// Without an input file the --regime flag, default included, picks the regime.
func (a *app) taxInput(fs *pflag.FlagSet, o *taxOptions) (domain.TaxInput, error) {
	var in domain.TaxInput
	if o.input != "" {
		loaded, err := config.NewInputParser().LoadTaxInput(o.input)
		if err != nil {
			return in, err
		}
		in = *loaded
	}

	for _, f := range amountFlags() {
		if !fs.Changed(f.name) {
			continue
		}
		raw := o.amounts[f.name]
		v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(*raw), ",", ""))
		if err != nil {
			return in, domain.Invalid("tax.flags", "--%s: %q is not an amount", f.name, *raw)
		}
		*f.field(&in) = v
	}

	if fs.Lookup("regime") != nil && (o.input == "" || fs.Changed("regime")) {
		r, err := domain.ParseTaxRegime(o.regime)
		if err != nil {
			return in, err
		}
		in.Regime = r
	}
	if o.year != "" {
		in.AssessmentYear = o.year
	}
	if in.AssessmentYear == "" {
		in.AssessmentYear = a.cfg.Tax.AssessmentYear
	}
	return in, nil
}

func (a *app) calculator() *calculation.Calculator {
	c := calculation.NewCalculator()
	c.SetLogger(a.logger.Sugar())
	return c
}

// emit renders report to w, or to a file under --output-dir.
func (a *app) emit(w io.Writer, report *domain.TaxReport, o *taxOptions) error {
	if o.outputDir == "" {
		return output.Render(w, report, o.format)
	}
	files, err := output.GenerateReport(report, o.format, o.outputDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(w, "Report written to %s\n", f)
	}
	a.logger.Info("report generated", zap.Strings("files", files), zap.String("format", o.format))
	return nil
}

func taxCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "tax",
		Short: "Indian income tax calculator and regime comparison",
	}
	c.AddCommand(taxCalcCmd(a), taxCompareCmd(a), taxAnalyzeCmd(a), taxReportCmd(a), taxSlabsCmd(a))
	return c
}

func taxCalcCmd(a *app) *cobra.Command {
	o := &taxOptions{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate tax under one regime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.taxInput(cmd.Flags(), o)
			if err != nil {
				return err
			}
			calc, err := a.calculator().Calculate(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), &domain.TaxReport{Calculation: calc}, o)
		},
	}
	o.register(cmd.Flags())
	cmd.Flags().StringVarP(&o.regime, "regime", "r", "new", "tax regime (old or new)")
	return cmd
}

func taxCompareCmd(a *app) *cobra.Command {
	o := &taxOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the old and new regimes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.taxInput(cmd.Flags(), o)
			if err != nil {
				return err
			}
			cmp, err := a.calculator().Compare(cmd.Context(), in.Income, in.Deductions)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), &domain.TaxReport{Comparison: cmp}, o)
		},
	}
	o.register(cmd.Flags())
	return cmd
}

func taxAnalyzeCmd(a *app) *cobra.Command {
	o := &taxOptions{}
	var income string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Evaluate preset deduction scenarios under the old regime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(income), ",", ""))
			if err != nil {
				return domain.Invalid("tax.analyze", "--income: %q is not an amount", income)
			}
			analysis, err := calculation.AnalyzeDeductions(base)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), &domain.TaxReport{Analysis: analysis}, o)
		},
	}
	cmd.Flags().StringVar(&income, "income", "", "base annual income")
	cmd.Flags().StringVarP(&o.format, "format", "f", "console", "output format (console, console-lite, csv, detailed-csv, html, json)")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "write the report to a file in this directory instead of stdout")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func taxReportCmd(a *app) *cobra.Command {
	o := &taxOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Calculation, regime comparison and deduction analysis in one report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.taxInput(cmd.Flags(), o)
			if err != nil {
				return err
			}
			calc := a.calculator()
			report := &domain.TaxReport{}
			if report.Calculation, err = calc.Calculate(cmd.Context(), in); err != nil {
				return err
			}
			if report.Comparison, err = calc.Compare(cmd.Context(), in.Income, in.Deductions); err != nil {
				return err
			}
			if gross := in.Income.Gross(); !gross.IsNegative() {
				if report.Analysis, err = calculation.AnalyzeDeductions(gross); err != nil {
					return err
				}
			}
			return a.emit(cmd.OutOrStdout(), report, o)
		},
	}
	o.register(cmd.Flags())
	cmd.Flags().StringVarP(&o.regime, "regime", "r", "new", "regime for the single-regime calculation")
	return cmd
}

var slabHeader = lipgloss.NewStyle().Bold(true)

func taxSlabsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slabs [old|new]",
		Short: "Show the slab table for one or both regimes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regimes := domain.Regimes
			if len(args) == 1 {
				r, err := domain.ParseTaxRegime(args[0])
				if err != nil {
					return err
				}
				regimes = []domain.TaxRegime{r}
			}
			w := cmd.OutOrStdout()
			for i, r := range regimes {
				if i > 0 {
					fmt.Fprintln(w)
				}
				writeSlabs(w, r)
			}
			return nil
		},
	}
}

func writeSlabs(w io.Writer, r domain.TaxRegime) {
	t := table.New().Border(lipgloss.NormalBorder()).Headers("Slab", "Rate")
	for _, b := range calculation.BracketsFor(r) {
		t.Row(calculation.SlabLabel(b), b.Rate.Mul(decimal.NewFromInt(100)).String()+"%")
	}
	fmt.Fprintln(w, slabHeader.Render(r.Label()+" slabs"))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Zero tax up to %s taxable income. Health & Education Cess at %s%% on the total.\n",
		output.FormatCurrency(calculation.ZeroRateThreshold(r)),
		calculation.CessRate.Mul(decimal.NewFromInt(100)).String())
}
