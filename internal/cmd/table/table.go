// Package table converts brands to table rows for CLI output.
package table

import (
	"strconv"
	"time"

	"github.com/agentstation/brandmap/pkg/brands"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data is the cell content of a rendered table.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// BrandsToTableData converts brands to table format. Wide output adds the
// timestamps.
func BrandsToTableData(bs []brands.Brand, wide bool) Data {
	headers := []string{"ID", "Brand Name", "Founded", "Headquarters", "Locations"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Created", "Updated")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(bs))
	for _, b := range bs {
		row := []string{
			b.ID.Hex(),
			b.BrandName,
			strconv.Itoa(b.YearFounded),
			b.Headquarters,
			strconv.Itoa(b.NumberOfLocations),
		}
		if wide {
			row = append(row, FormatTime(b.CreatedAt), FormatTime(b.UpdatedAt))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// FormatTime renders a timestamp for tables, or "-" when unset.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
