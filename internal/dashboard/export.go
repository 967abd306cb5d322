package dashboard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/healthdash/internal/calendar"
	"github.com/2beens/healthdash/internal/session"
)

const (
	csvBOM       = "\ufeff"
	csvSeparator = ';'
)

var exportHeader = []string{"type", "date", "weight", "hours", "quality", "steps", "templateId", "rating"}

// ExportCSV renders every entry of the snapshot, grouped by type, in the spreadsheet
// format the dashboard always exported: UTF-8 with BOM, semicolon separated,
// dates as dd.mm.yyyy.
func ExportCSV(snapshot *session.Snapshot) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(csvBOM)

	writer := csv.NewWriter(buf)
	writer.Comma = csvSeparator

	rows := [][]string{exportHeader}
	for _, w := range snapshot.Weights {
		rows = append(rows, exportRow("weight", w.Day, map[string]string{"weight": formatFloat(w.Value)}))
	}
	for _, s := range snapshot.Sleep {
		fields := map[string]string{"quality": strconv.Itoa(s.Quality)}
		if s.Duration > 0 {
			fields["hours"] = formatFloat(s.Hours())
		}
		rows = append(rows, exportRow("sleep", s.Day, fields))
	}
	for _, s := range snapshot.Steps {
		rows = append(rows, exportRow("steps", s.Day, map[string]string{"steps": formatFloat(s.Value)}))
	}
	for _, r := range snapshot.Ratings {
		fields := map[string]string{"templateId": r.TemplateID}
		if r.Rating != nil {
			fields["rating"] = formatFloat(*r.Rating)
		}
		rows = append(rows, exportRow("nutrition", r.Day, fields))
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportFileName names the export after the day it was taken.
func ExportFileName(today calendar.Day) string {
	return fmt.Sprintf("healthdash-export-%s.csv", today.Key())
}

func exportRow(entryType string, day calendar.Day, fields map[string]string) []string {
	row := make([]string, len(exportHeader))
	row[0] = entryType
	row[1] = germanDate(day)
	for i, column := range exportHeader[2:] {
		row[i+2] = fields[column]
	}
	return row
}

func germanDate(day calendar.Day) string {
	return day.Midnight(time.UTC).Format("02.01.2006")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
