package takeoff

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of a workbook through the same header and
// row mapping as CSV input.
func (p *Parser) ParseXLSX(r io.Reader) ([]Row, error) {
	const op = "takeoff.Parser.ParseXLSX"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", op, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %q: %w", op, sheet, err)
	}

	lines := make([]int, len(records))
	for i := range records {
		lines[i] = i + 1
	}

	return p.ParseRecords(records, lines)
}
