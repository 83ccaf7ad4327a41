// Package export renders record sets into download formats: RIS reference
// blocks and CSV.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eppi-vis/dashboard/pkg/eppi"
)

// RIS renders the records as an RIS reference list. Each record becomes one
// block: a JOUR type line, one tag line per non-empty field, an
// unconditional N1 notes line carrying the citation text, and an ER
// terminator followed by a blank line.
func RIS(records []eppi.Record) string {
	var lines []string
	for _, rec := range records {
		lines = appendRecord(lines, rec)
	}
	return strings.Join(lines, "\n")
}

func appendRecord(lines []string, rec eppi.Record) []string {
	lines = append(lines, "TY  - JOUR")
	lines = appendTag(lines, "T1", rec.Title)
	lines = appendTag(lines, "N2", rec.Abstract)
	for _, author := range strings.Split(rec.Authors, ";") {
		lines = appendTag(lines, "A1", author)
	}
	lines = appendTag(lines, "IS", rec.Issue)
	lines = appendTag(lines, "VL", rec.Volume)
	lines = appendTag(lines, "JO", rec.ParentTitle)
	lines = appendTag(lines, "SP", rec.Pages)
	lines = appendTag(lines, "PY", yearValue(rec.Year.String()))
	lines = appendTag(lines, "SN", rec.StandardNumber)
	lines = appendTag(lines, "DO", rec.DOI)
	lines = appendTag(lines, "CY", rec.City)
	lines = appendTag(lines, "PB", rec.Publisher)
	lines = appendTag(lines, "UR", rec.URL)
	lines = append(lines, fmt.Sprintf("N1  - %s", rec.QuickCitation))
	lines = append(lines, "ER  - ")
	lines = append(lines, "")
	return lines
}

// appendTag adds a "TAG  - value" line when the trimmed value is non-empty.
func appendTag(lines []string, tag, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return lines
	}
	return append(lines, fmt.Sprintf("%s  - %s", tag, value))
}

// yearValue normalizes years that arrive as floats ("2022.0") to plain
// integers; anything unparseable is passed through as-is.
func yearValue(year string) string {
	year = strings.TrimSpace(year)
	if f, err := strconv.ParseFloat(year, 64); err == nil {
		return strconv.FormatInt(int64(f), 10)
	}
	return year
}
