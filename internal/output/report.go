package output

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// Render formats report with the named formatter and writes it to w.
func Render(w io.Writer, report *domain.TaxReport, format string) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes report to a timestamped file in dir using the named
// format. "all" writes the verbose console and detailed CSV renderings.
func GenerateReport(report *domain.TaxReport, format, dir string) ([]string, error) {
	if format == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// SaveConfiguration writes config as YAML. The API key is never written.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	redacted := *config
	redacted.Assistant.APIKey = ""
	b, err := yaml.Marshal(&redacted)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
