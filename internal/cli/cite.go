package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexdesk/legal-assistant/internal/citation"
	"github.com/lexdesk/legal-assistant/internal/domain"
)

// citationFields are the form fields of each source type, in prompt order.
var citationFields = map[domain.CitationType][]string{
	domain.CitationCase:    {"case_name", "citation", "court", "year", "judges"},
	domain.CitationStatute: {"act_name", "year", "section", "country"},
	domain.CitationJournal: {"author", "title", "journal", "volume", "issue", "year", "pages"},
	domain.CitationBook:    {"author", "title", "edition", "publisher", "year"},
	domain.CitationOnline:  {"author", "title", "website", "url", "accessed"},
}

func flagName(field string) string { return strings.ReplaceAll(field, "_", "-") }

func citeCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "cite",
		Short: "Format legal citations",
	}
	for _, t := range domain.CitationTypes {
		c.AddCommand(citeTypeCmd(a, t))
	}
	return c
}

func citeTypeCmd(a *app, t domain.CitationType) *cobra.Command {
	var style string
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   t.Key(),
		Short: "Cite a " + strings.ToLower(t.String()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := domain.ParseCitationStyle(style)
			if err != nil {
				return err
			}
			fields := make(map[string]string, len(values))
			for k, v := range values {
				fields[k] = *v
			}
			text, err := citation.Generate(t, s, fields, a.now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "bluebook", "citation style (bluebook, oscola, harvard, apa)")
	for _, field := range citationFields[t] {
		usage := strings.ReplaceAll(field, "_", " ")
		if field == "accessed" {
			usage = "access date YYYY-MM-DD (defaults to today)"
		}
		values[field] = cmd.Flags().String(flagName(field), "", usage)
	}
	return cmd
}
