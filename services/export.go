// File: services/export.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"recruit-portal/store"
)

// exportHeader is shared by the CSV and XLSX projections. Status is the
// real persisted value: exports are admin-only and never masked.
var exportHeader = []string{
	"Name", "SRN", "Email", "Phone", "Year", "Domain", "Status", "Score", "Interview Done",
}

func exportRecord(r store.ExportRow) []string {
	score := ""
	if r.Score != nil {
		score = strconv.Itoa(*r.Score)
	}
	return []string{
		r.User.Name,
		r.User.SRN,
		r.User.Email,
		r.User.Phone,
		strconv.Itoa(r.User.Year),
		r.DomainName,
		string(r.Status),
		score,
		strconv.FormatBool(r.InterviewDone),
	}
}

// RenderCSV projects the joined rows into CSV, one line per application.
func RenderCSV(rows []store.ExportRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return "", err
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// RenderXLSX builds a one-sheet workbook with a bold, filterable header.
func RenderXLSX(rows []store.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Applications"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	xlsxHeader := append(append([]string{}, exportHeader...), "Applied At")
	header := make([]interface{}, len(xlsxHeader))
	for i, h := range xlsxHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	endCol, _ := excelize.ColumnNumberToName(len(xlsxHeader))
	_ = f.SetCellStyle(sheet, "A1", endCol+"1", bold)
	_ = f.AutoFilter(sheet, "A1:"+endCol+"1", nil)

	for i, r := range rows {
		record := exportRecord(r)
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
		}
		cells = append(cells, r.CreatedAt.Format(time.RFC3339))
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
