package ingest

import (
	"context"
	"log/slog"

	"github.com/flowlytics/basket-sift/internal/model"
)

// FileSource reads one input file into raw pairs. It implements
// service.PairSource.
type FileSource struct {
	Path    string
	Options Options
}

// Pairs loads the file, detects column roles and builds the pair list.
func (s FileSource) Pairs(ctx context.Context) ([]model.Pair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := ReadFile(s.Path, s.Options)
	if err != nil {
		return nil, err
	}

	det := Detect(table.Headers, table.Rows)
	slog.Info("detected input columns",
		"item_column", columnName(table.Headers, det.ItemCol),
		"key_strategy", det.Strategy,
		"list_mode", det.ListMode,
		"rows", len(table.Rows))

	return Pairs(table, det)
}

func columnName(headers []string, col int) string {
	if col < 0 || col >= len(headers) {
		return ""
	}
	return headers[col]
}
