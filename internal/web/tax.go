package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/lexdesk/legal-assistant/internal/calculation"
	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/output"
)

type compareRequest struct {
	Income     domain.IncomeProfile    `json:"income"`
	Deductions domain.DeductionProfile `json:"deductions"`
}

type analyzeRequest struct {
	BaseIncome decimal.Decimal `json:"base_income"`
}

type slabView struct {
	domain.SlabBracket
	Label string `json:"label"`
}

func (s *Server) calculateTax(c *gin.Context) {
	var in domain.TaxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, bindError("tax.calculate", err))
		return
	}
	if in.AssessmentYear == "" {
		in.AssessmentYear = s.year
	}
	calc, err := s.calc.Calculate(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (s *Server) compareRegimes(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("tax.compare", err))
		return
	}
	cmp, err := s.calc.Compare(c.Request.Context(), req.Income, req.Deductions)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comparison":     cmp,
		"recommendation": output.AnalyzeComparison(&domain.TaxReport{Comparison: cmp}),
	})
}

func (s *Server) analyzeDeductions(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError("tax.analyze", err))
		return
	}
	analysis, err := calculation.AnalyzeDeductions(req.BaseIncome)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// taxReport renders a full report through the output registry; ?format=
// picks the formatter (default html).
func (s *Server) taxReport(c *gin.Context) {
	var in domain.TaxInput
	if err := c.ShouldBindJSON(&in); err != nil {
		s.fail(c, bindError("tax.report", err))
		return
	}
	if in.AssessmentYear == "" {
		in.AssessmentYear = s.year
	}
	f, err := output.Lookup(c.DefaultQuery("format", "html"))
	if err != nil {
		s.fail(c, domain.Invalid("tax.report", "%v", err))
		return
	}

	ctx := c.Request.Context()
	report := &domain.TaxReport{}
	if report.Calculation, err = s.calc.Calculate(ctx, in); err != nil {
		s.fail(c, err)
		return
	}
	if report.Comparison, err = s.calc.Compare(ctx, in.Income, in.Deductions); err != nil {
		s.fail(c, err)
		return
	}
	if gross := in.Income.Gross(); !gross.IsNegative() {
		if report.Analysis, err = calculation.AnalyzeDeductions(gross); err != nil {
			s.fail(c, err)
			return
		}
	}

	data, err := f.Format(report)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, reportContentType(output.Extension(f)), data)
}

func reportContentType(ext string) string {
	switch ext {
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) slabs(c *gin.Context) {
	regime, err := domain.ParseTaxRegime(c.Param("regime"))
	if err != nil {
		s.fail(c, err)
		return
	}
	brackets := calculation.BracketsFor(regime)
	views := make([]slabView, 0, len(brackets))
	for _, b := range brackets {
		views = append(views, slabView{SlabBracket: b, Label: calculation.SlabLabel(b)})
	}
	c.JSON(http.StatusOK, gin.H{
		"regime":              regime,
		"label":               regime.Label(),
		"brackets":            views,
		"cess_rate":           calculation.CessRate,
		"zero_rate_threshold": calculation.ZeroRateThreshold(regime),
	})
}
