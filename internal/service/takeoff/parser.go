package takeoff

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/service/normalize"
)

const bom = "\uFEFF"

// Row is one parsed takeoff data row.
type Row struct {
	ItemNumber      string  `json:"item_number"`
	ItemDescription string  `json:"item_description"`
	MemberMark      string  `json:"member_mark"`
	PartLabel       string  `json:"part_label"`
	DrawingRef      string  `json:"drawing_ref"`
	ShapeSize       string  `json:"shape_size"`
	Quantity        int     `json:"quantity"`
	Length          float64 `json:"length"`
	End1            string  `json:"end1"`
	End2            string  `json:"end2"`
	HoleType        string  `json:"hole_type"`
	HoleCount       int     `json:"hole_count"`
	WeldType        string  `json:"weld_type"`
	ConnectionType  string  `json:"connection_type"`
	ConnectionCount int     `json:"connection_count"`
	Prep            string  `json:"prep"`
	Coating         string  `json:"coating"`
	Galvanized      bool    `json:"galvanized"`
	Notes           string  `json:"notes"`
	Line            int     `json:"line"`
}

type Parser struct {
	columns []constants.ColumnAlias
	aliases map[string]string
}

func NewParser(columns []constants.ColumnAlias) *Parser {
	aliases := make(map[string]string)
	for _, c := range columns {
		aliases[headerKey(c.Column)] = c.Column
		aliases[headerKey(c.Label)] = c.Column
		for _, a := range c.Aliases {
			aliases[headerKey(a)] = c.Column
		}
	}

	return &Parser{columns: columns, aliases: aliases}
}

// Parse reads CSV text: strips a BOM, splits lines on CR/LF and decodes quoted
// fields. Header validation happens before any data row is read.
func (p *Parser) Parse(text string) ([]Row, error) {
	const op = "takeoff.Parser.Parse"

	text = strings.TrimPrefix(text, bom)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var (
		records [][]string
		lines   []int
	)

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: malformed csv: %w", op, err)
		}

		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	return p.ParseRecords(records, lines)
}

// ParseRecords maps already-split records (header first) to typed rows. lines
// holds the source line of each record.
func (p *Parser) ParseRecords(records [][]string, lines []int) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrEmptyData
	}

	index, err := p.resolveHeader(records[0])
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}

		line := i + 2
		if i+1 < len(lines) {
			line = lines[i+1]
		}

		rows = append(rows, p.buildRow(rec, index, line))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	return rows, nil
}

func (p *Parser) resolveHeader(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, h := range header {
		key := headerKey(strings.TrimPrefix(h, bom))
		col, ok := p.aliases[key]
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}

	var missing []string
	for _, c := range p.columns {
		if !c.Required {
			continue
		}
		if _, ok := index[c.Column]; !ok {
			missing = append(missing, c.Label)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return index, nil
}

func (p *Parser) buildRow(rec []string, index map[string]int, line int) Row {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return normalize.Cell(rec[i])
	}

	return Row{
		ItemNumber:      cell(constants.ColItemNumber),
		ItemDescription: cell(constants.ColItemDescription),
		MemberMark:      cell(constants.ColMemberMark),
		PartLabel:       cell(constants.ColPartLabel),
		DrawingRef:      cell(constants.ColDrawingRef),
		ShapeSize:       normalize.ShapeSize(cell(constants.ColShapeSize)),
		Quantity:        parseCount(cell(constants.ColQuantity)),
		Length:          parseFeet(cell(constants.ColLength)),
		End1:            cell(constants.ColEnd1),
		End2:            cell(constants.ColEnd2),
		HoleType:        cell(constants.ColHoleType),
		HoleCount:       parseCount(cell(constants.ColHoleCount)),
		WeldType:        cell(constants.ColWeldType),
		ConnectionType:  cell(constants.ColConnectionType),
		ConnectionCount: parseCount(cell(constants.ColConnectionCount)),
		Prep:            cell(constants.ColPrep),
		Coating:         cell(constants.ColCoating),
		Galvanized:      parseFlag(cell(constants.ColGalvanized)),
		Notes:           cell(constants.ColNotes),
		Line:            line,
	}
}

// headerKey folds case and drops spaces and underscores.
func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "").Replace(h)
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCount returns 0 for anything that is not a non-negative number.
func parseCount(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

func parseFeet(s string) float64 {
	s = strings.ToLower(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "ft"), "'"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func parseFlag(s string) bool {
	switch strings.ToUpper(s) {
	case "Y", "YES", "TRUE", "1", "X", "GALV", "G":
		return true
	}
	return false
}
