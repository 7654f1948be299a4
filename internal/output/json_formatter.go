package output

import (
	"encoding/json"

	"github.com/lexdesk/legal-assistant/internal/domain"
)

// JSONFormatter serializes the tax report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
