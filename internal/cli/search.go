package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/internal/search"
	"github.com/lexdesk/legal-assistant/pkg/dateutil"
)

var (
	caseTitle = lipgloss.NewStyle().Bold(true)
	caseMeta  = lipgloss.NewStyle().Faint(true)
)

func searchCmd(a *app) *cobra.Command {
	var (
		q         search.Query
		from, to  string
		sortOrder string
		catalogue string
		analytics bool
	)
	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search the case-law catalogue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				q.Text = args[0]
			}
			var err error
			if q.From, err = flagDate("from", from); err != nil {
				return err
			}
			if q.To, err = flagDate("to", to); err != nil {
				return err
			}
			if q.Sort, err = search.ParseSortOrder(sortOrder); err != nil {
				return err
			}
			if q.Limit < 0 {
				return domain.Invalid("search.limit", "--limit must not be negative")
			}

			path := catalogue
			if path == "" {
				path = a.cfg.Search.Catalogue
			}
			cat, err := search.LoadCatalogue(path)
			if err != nil {
				return err
			}

			results := cat.Search(q)
			w := cmd.OutOrStdout()
			writeCases(w, results)
			if analytics && len(results) > 0 {
				writeAnalytics(w, search.Analyze(results))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&q.Jurisdictions, "jurisdiction", "j", nil, "courts to include: "+strings.Join(search.Jurisdictions, ", "))
	cmd.Flags().StringSliceVarP(&q.Domains, "domain", "d", nil, "legal domains to include")
	cmd.Flags().StringVar(&from, "from", "", "decided on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "decided on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.Citation, "citation", "", "citation contains")
	cmd.Flags().StringVar(&q.Judge, "judge", "", "bench includes")
	cmd.Flags().StringVar(&sortOrder, "sort", "relevance", "relevance, newest or oldest")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 0, "maximum results (0 for all)")
	cmd.Flags().StringVar(&catalogue, "catalogue", "", "case catalogue file (defaults to the bundled one)")
	cmd.Flags().BoolVar(&analytics, "analytics", false, "summarise results by court, domain and year")
	return cmd
}

func flagDate(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := dateutil.ParseISO(raw)
	if err != nil {
		return time.Time{}, domain.Invalid("search."+name, "--%s must be YYYY-MM-DD, got %q", name, raw)
	}
	return t, nil
}

func writeCases(w io.Writer, results []domain.CaseRecord) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No cases found.")
		return
	}
	fmt.Fprintf(w, "Found %d cases\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s\n", i+1, caseTitle.Render(r.Title))
		fmt.Fprintf(w, "   %s\n", caseMeta.Render(fmt.Sprintf("%s | %s | %s | %s", r.Citation, r.Court, r.Date, r.Domain)))
		if r.Judges != "" {
			fmt.Fprintf(w, "   Bench: %s\n", r.Judges)
		}
		fmt.Fprintf(w, "   %s\n\n", r.Snippet)
	}
}

func writeAnalytics(w io.Writer, a search.Analytics) {
	section := func(title string, counts []search.Count) {
		parts := make([]string, 0, len(counts))
		for _, c := range counts {
			parts = append(parts, fmt.Sprintf("%s (%d)", c.Name, c.Count))
		}
		fmt.Fprintf(w, "%s: %s\n", title, strings.Join(parts, ", "))
	}
	section("By court", a.ByCourt)
	section("By domain", a.ByDomain)
	section("By year", a.ByYear)
}
