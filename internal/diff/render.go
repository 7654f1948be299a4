package diff

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a unified diff of two texts with the given context lines.
func Unified(left, right, fromName, toName string, context int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(left),
		B:        difflib.SplitLines(right),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	})
}

// WriteText writes a plain-text rendering: prefixed lines in line mode,
// [-removed-] and {+added+} markers in word mode.
func WriteText(w io.Writer, r *Result) error {
	if r.Mode == ModeWord {
		parts := make([]string, 0, len(r.Runs))
		for _, run := range r.Runs {
			switch run.Status {
			case StatusAdded:
				parts = append(parts, "{+"+run.Text+"+}")
			case StatusRemoved:
				parts = append(parts, "[-"+run.Text+"-]")
			default:
				parts = append(parts, run.Text)
			}
		}
		_, err := fmt.Fprintln(w, strings.Join(parts, " "))
		return err
	}
	for _, row := range r.Rows {
		var err error
		switch row.Status {
		case StatusUnchanged:
			_, err = fmt.Fprintf(w, "  %s\n", row.Left)
		case StatusRemoved:
			_, err = fmt.Fprintf(w, "- %s\n", row.Left)
		case StatusAdded:
			_, err = fmt.Fprintf(w, "+ %s\n", row.Right)
		case StatusChanged:
			if _, err = fmt.Fprintf(w, "- %s\n", row.Left); err == nil {
				_, err = fmt.Fprintf(w, "+ %s\n", row.Right)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Console renders a coloured terminal view.
func Console(r *Result) string {
	var b strings.Builder
	if r.Mode == ModeWord {
		parts := make([]string, 0, len(r.Runs))
		for _, run := range r.Runs {
			parts = append(parts, styleRun(run))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	} else {
		for _, row := range r.Rows {
			switch row.Status {
			case StatusUnchanged:
				fmt.Fprintf(&b, "%s   %s\n", gutterStyle.Render(fmt.Sprintf("%4d", row.LeftNum)), row.Left)
			case StatusRemoved:
				fmt.Fprintf(&b, "%s - %s\n", gutterStyle.Render(fmt.Sprintf("%4d", row.LeftNum)), removedStyle.Render(row.Left))
			case StatusAdded:
				fmt.Fprintf(&b, "%s + %s\n", gutterStyle.Render(fmt.Sprintf("%4d", row.RightNum)), addedStyle.Render(row.Right))
			case StatusChanged:
				parts := make([]string, 0, len(row.Inline))
				for _, run := range row.Inline {
					parts = append(parts, styleRun(run))
				}
				fmt.Fprintf(&b, "%s ~ %s\n", gutterStyle.Render(fmt.Sprintf("%4d", row.LeftNum)), strings.Join(parts, " "))
			}
		}
	}
	fmt.Fprintf(&b, "%d unchanged, %s, %s\n", r.Stats.Unchanged,
		addedStyle.Render(fmt.Sprintf("%d added", r.Stats.Added)),
		removedStyle.Render(fmt.Sprintf("%d removed", r.Stats.Removed)))
	return b.String()
}

func styleRun(run Run) string {
	switch run.Status {
	case StatusAdded:
		return addedStyle.Render(run.Text)
	case StatusRemoved:
		return removedStyle.Render(run.Text)
	default:
		return run.Text
	}
}

var htmlTemplate = template.Must(template.New("diff").Parse(`{{if eq .Mode.String "word"}}<div class="diff-words">
{{- range .Runs}}<span class="diff-{{.Status}}">{{.Text}}</span> {{end -}}
</div>{{else}}<table class="diff-table">
<thead><tr><th></th><th>Document 1</th><th></th><th>Document 2</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr class="diff-{{.Status}}"><td class="num">{{if .LeftNum}}{{.LeftNum}}{{end}}</td><td>{{if .Inline}}{{range .Inline}}{{if ne .Status.String "added"}}<span class="diff-{{.Status}}">{{.Text}}</span> {{end}}{{end}}{{else}}{{.Left}}{{end}}</td><td class="num">{{if .RightNum}}{{.RightNum}}{{end}}</td><td>{{if .Inline}}{{range .Inline}}{{if ne .Status.String "removed"}}<span class="diff-{{.Status}}">{{.Text}}</span> {{end}}{{end}}{{else}}{{.Right}}{{end}}</td></tr>
{{- end}}
</tbody>
</table>{{end}}
`))

// HTML renders the result as an escaped HTML fragment.
func HTML(r *Result) (template.HTML, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render diff html: %w", err)
	}
	return template.HTML(buf.String()), nil
}
