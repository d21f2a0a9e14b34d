// Package importer runs a takeoff file through parsing, aggregation and pricing
// and merges the result into a project estimate.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"steel-estimator/internal/service/takeoff"
	"steel-estimator/internal/storage"
)

// Formats a takeoff upload can arrive in.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// zip local file header, the start of every xlsx workbook
var xlsxMagic = []byte("PK\x03\x04")

type Enricher interface {
	Enrich(ctx context.Context, items []*takeoff.Item) ([]*takeoff.Item, []takeoff.Warning, error)
}

type EstimateStorage interface {
	GetEstimateItems(ctx context.Context, projectID int64) ([]*storage.Item, error)
	SaveImportedItems(ctx context.Context, projectID int64, items []*storage.Item) error
}

type Service struct {
	log        *slog.Logger
	parser     *takeoff.Parser
	aggregator *takeoff.Aggregator
	translator *takeoff.Translator
	enricher   Enricher
	storage    EstimateStorage
}

func New(
	log *slog.Logger,
	parser *takeoff.Parser,
	translator *takeoff.Translator,
	enricher Enricher,
	storage EstimateStorage,
) *Service {
	return &Service{
		log:        log,
		parser:     parser,
		aggregator: takeoff.NewAggregator(log, translator),
		translator: translator,
		enricher:   enricher,
		storage:    storage,
	}
}

// DetectFormat decides between csv and xlsx from the file name, falling back
// to the zip signature.
func DetectFormat(filename string, data []byte) string {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return FormatXLSX
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return FormatCSV
	case bytes.HasPrefix(data, xlsxMagic):
		return FormatXLSX
	}
	return FormatCSV
}

// Preview parses, aggregates and prices a takeoff without touching the estimate.
// Structural errors return no partial result.
func (s *Service) Preview(ctx context.Context, format string, data []byte) (*takeoff.Result, error) {
	const op = "importer.Service.Preview"

	rows, err := s.parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := s.aggregator.Aggregate(rows)
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("%s: no rows with an item number: %w", op, takeoff.ErrEmptyData)
	}

	items, warnings, err := s.enricher.Enrich(ctx, res.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res.Items = items
	res.Stats = takeoff.CountStats(items)
	res.Warnings = append(res.Warnings, warnings...)
	res.ImportID = uuid.NewString()

	s.log.Info("takeoff parsed",
		slog.String("op", op),
		slog.String("import_id", res.ImportID),
		slog.String("format", format),
		slog.Int("rows", len(rows)),
		slog.Int("items", res.Stats.TotalItems),
		slog.Int("members", res.Stats.TotalMembers),
		slog.Int("dropped_codes", len(res.DroppedCodes)),
		slog.Int("warnings", len(res.Warnings)),
	)

	return res, nil
}

// Import previews the takeoff and merges it into the project's estimate. Existing
// items and materials are never overwritten; matching marks accumulate pieces.
func (s *Service) Import(ctx context.Context, projectID int64, format string, data []byte) (*takeoff.Result, error) {
	const op = "importer.Service.Import"

	res, err := s.Preview(ctx, format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.storage.GetEstimateItems(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: load estimate: %w", op, err)
	}

	merged := s.translator.MergeIntoEstimate(existing, res.Items)
	for _, it := range merged {
		it.ProjectID = projectID
	}

	if err := s.storage.SaveImportedItems(ctx, projectID, merged); err != nil {
		return nil, fmt.Errorf("%s: save estimate: %w", op, err)
	}

	s.log.Info("takeoff merged into estimate",
		slog.String("op", op),
		slog.String("import_id", res.ImportID),
		slog.Int64("project_id", projectID),
		slog.Int("existing_items", len(existing)),
		slog.Int("items", len(merged)),
	)

	return res, nil
}

func (s *Service) parse(format string, data []byte) ([]takeoff.Row, error) {
	if format == FormatXLSX {
		return s.parser.ParseXLSX(bytes.NewReader(data))
	}
	return s.parser.Parse(string(data))
}

// ReadLimited reads at most limit bytes and reports whether the input was larger.
func ReadLimited(r io.Reader, limit int64) ([]byte, bool, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(data)) > limit {
		return nil, true, nil
	}
	return data, false, nil
}
