// Package export renders finished link record sets as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
)

// Format names accepted by the export endpoint.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var headers = []string{"Link ID", "Tag", "Commessa", "Article", "Client", "Type", "Lot", "Note", "Created At"}

// rowsFor flattens link rows and their tag snapshots into export cells.
func rowsFor(links []store.LinkRow, tags map[int64]domain.Tag) [][]string {
	data := make([][]string, 0, len(links))
	for _, l := range links {
		tag := tags[l.Link.TagID]
		number := tag.Number
		if number == "" {
			// Snapshot never captured: fall back to the raw identifier.
			number = fmt.Sprintf("%d", l.Link.TagID)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", l.Link.ID),
			number,
			tag.Commessa,
			tag.Article,
			tag.Client,
			l.TypeName,
			l.Link.Lot,
			l.Link.Note,
			l.Link.CreatedAt.Format(time.RFC3339),
		})
	}
	return data
}

// WriteCSV renders the link rows as CSV.
func WriteCSV(w io.Writer, links []store.LinkRow, tags map[int64]domain.Tag) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range rowsFor(links, tags) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX renders the link rows as an Excel workbook with a single sheet.
func WriteXLSX(w io.Writer, sheetName string, links []store.LinkRow, tags map[int64]domain.Tag) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rowsFor(links, tags) {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 18)
	}

	if sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	return f.Write(w)
}
