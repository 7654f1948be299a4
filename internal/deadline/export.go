package deadline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"github.com/lexdesk/legal-assistant/pkg/dateutil"
)

// ExportFormat is a download format for the deadline list.
type ExportFormat int

const (
	ExportCSV ExportFormat = iota
	ExportExcel
	ExportJSON
)

// ExportSheet is the worksheet name used for Excel exports.
const ExportSheet = "Deadlines"

// ExportHeaders are the column titles of tabular exports.
var ExportHeaders = []string{"Title", "Description", "Date", "Days Remaining", "Priority", "Category"}

func (f ExportFormat) String() string {
	switch f {
	case ExportCSV:
		return "csv"
	case ExportExcel:
		return "xlsx"
	case ExportJSON:
		return "json"
	default:
		return fmt.Sprintf("ExportFormat(%d)", int(f))
	}
}

// ContentType is the MIME type of the export.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportJSON:
		return "application/json"
	default:
		return "text/csv"
	}
}

// Filename is the suggested download name.
func (f ExportFormat) Filename() string {
	return "legal_deadlines." + f.String()
}

// ParseExportFormat accepts csv, xlsx (or excel) and json.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return ExportCSV, nil
	case "xlsx", "excel":
		return ExportExcel, nil
	case "json":
		return ExportJSON, nil
	}
	return 0, domain.Invalid("deadline.export", "unknown export format %q", s)
}

// Row is one line of a tabular export.
type Row struct {
	Title         string
	Description   string
	Date          string
	DaysRemaining int
	Priority      string
	Category      string
}

// Rows flattens deadlines for export, counting days from now.
func Rows(ds []domain.Deadline, now time.Time) []Row {
	rows := make([]Row, 0, len(ds))
	for _, d := range ds {
		days := 0
		if due, err := d.Due(); err == nil {
			days = dateutil.DaysBetween(now, due)
		}
		rows = append(rows, Row{
			Title:         d.Title,
			Description:   d.Description,
			Date:          d.Date,
			DaysRemaining: days,
			Priority:      d.Priority.String(),
			Category:      d.Category.String(),
		})
	}
	return rows
}

// Export writes ds to w in the given format.
func Export(w io.Writer, format ExportFormat, ds []domain.Deadline, now time.Time) error {
	switch format {
	case ExportCSV:
		return writeCSV(w, Rows(ds, now))
	case ExportExcel:
		return writeExcel(w, Rows(ds, now))
	case ExportJSON:
		if ds == nil {
			ds = []domain.Deadline{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(ds)
	}
	return domain.Invalid("deadline.export", "unknown export format %d", int(format))
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Title, r.Description, r.Date, strconv.Itoa(r.DaysRemaining), r.Priority, r.Category}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeExcel(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ExportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, header := range ExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ExportSheet, cell, header); err != nil {
			return err
		}
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{r.Title, r.Description, r.Date, r.DaysRemaining, r.Priority, r.Category}
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}
