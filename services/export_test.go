// File: services/export_test.go
package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"recruit-portal/models"
	"recruit-portal/store"
)

func exportFixture() []store.ExportRow {
	return []store.ExportRow{
		{
			Application: models.Application{Status: models.StatusAccepted, Score: intptr(9), InterviewDone: true},
			User:        models.User{Name: "Alice", SRN: "PES1UG25CS001", Email: "alice@example.com", Phone: "9999999999", Year: 2},
			DomainName:  "Tech",
		},
		{
			Application: models.Application{Status: models.StatusInterviewLeft},
			User:        models.User{Name: `Bob "Bobby" K, Jr.`, SRN: "PES1UG25CS002", Year: 1},
			DomainName:  "Design",
		},
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(exportFixture())
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Name,SRN,Email,Phone,Year,Domain,Status,Score,Interview Done", lines[0])
	assert.Equal(t, "Alice,PES1UG25CS001,alice@example.com,9999999999,2,Tech,accepted,9,true", lines[1])
}

func TestRenderCSVQuotesCommasAndQuotes(t *testing.T) {
	out, err := RenderCSV(exportFixture())
	assert.NoError(t, err)
	// encoding/csv doubles embedded quotes and wraps the field
	assert.Contains(t, out, `"Bob ""Bobby"" K, Jr."`)
}

func TestRenderCSVUnmaskedStatuses(t *testing.T) {
	out, err := RenderCSV(exportFixture())
	assert.NoError(t, err)
	assert.Contains(t, out, "accepted")
	assert.Contains(t, out, "interview_left")
}

func TestRenderCSVEmpty(t *testing.T) {
	out, err := RenderCSV(nil)
	assert.NoError(t, err)
	assert.Equal(t, "Name,SRN,Email,Phone,Year,Domain,Status,Score,Interview Done\n", out)
}

func TestRenderXLSX(t *testing.T) {
	out, err := RenderXLSX(exportFixture())
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applications")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Applied At", rows[0][len(rows[0])-1])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "accepted", rows[1][6])
}
