package output

import (
	"io"

	"github.com/agentstation/brandmap/internal/cmd/table"
	"github.com/agentstation/brandmap/pkg/brands"
	"github.com/agentstation/brandmap/pkg/export"
)

// Brands writes bs to w. Tables use the brand table layout; structured
// formats use the same record shape as exports.
func Brands(w io.Writer, format Format, bs []brands.Brand) error {
	if IsTable(format) {
		return NewFormatter(format).Format(w, table.BrandsToTableData(bs, IsWide(format)))
	}
	return NewFormatter(format).Format(w, export.Records(bs))
}
