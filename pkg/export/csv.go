package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/eppi-vis/dashboard/pkg/eppi"
)

// utf8BOM makes the CSV open correctly in Excel, matching the original
// utf-8-sig downloads.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"", "itemId", "title", "abstract", "authors", "year", "issue", "volume",
	"parentTitle", "pages", "standardNumber", "doi", "city", "publisher",
	"url", "typeName", "quickCitation",
}

// WriteCSV writes the records as a BOM-prefixed CSV table with a leading
// row-index column.
func WriteCSV(w io.Writer, records []eppi.Record) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, rec := range records {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatInt(rec.ItemID, 10),
			rec.Title,
			rec.Abstract,
			rec.Authors,
			rec.Year.String(),
			rec.Issue,
			rec.Volume,
			rec.ParentTitle,
			rec.Pages,
			rec.StandardNumber,
			rec.DOI,
			rec.City,
			rec.Publisher,
			rec.URL,
			rec.TypeName,
			rec.QuickCitation,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
