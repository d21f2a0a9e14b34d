package takeoff

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"steel-estimator/internal/constants"
	"steel-estimator/internal/storage"
)

func newTestParser() *Parser {
	return NewParser(constants.TakeoffColumns())
}

func newTestTranslator() *Translator {
	return NewTranslator(constants.DefaultLaborCodes())
}

func newTestAggregator() *Aggregator {
	return NewAggregator(slog.Default(), newTestTranslator())
}

func aggregateCSV(t *testing.T, text string) *Result {
	t.Helper()

	rows, err := newTestParser().Parse(text)
	require.NoError(t, err)

	return newTestAggregator().Aggregate(rows)
}

func findMember(members []*Member, mark string) *Member {
	for _, m := range members {
		if m.Mark == mark {
			return m
		}
		for _, c := range m.Children {
			if c.Mark == mark {
				return c
			}
		}
	}
	return nil
}

func opNames(ops []storage.FabOperation) []string {
	names := make([]string, 0, len(ops))
	for _, o := range ops {
		names = append(names, o.Name)
	}
	return names
}
