package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	"github.com/xuri/excelize/v2"
)

var textColumns = map[string]bool{
	"userEmail":      true,
	"userName":       true,
	"userRole":       true,
	"date":           true,
	"agentBoothName": true,
	"notes":          true,
}

// Import reads the first sheet of an xlsx workbook. Row one names the entry
// fields; every following row is created like a POST /sales body. Rows that
// fail are reported and skipped.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, internal.ErrInvalidFile.WithCause(err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, internal.ErrInvalidFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, internal.ErrInvalidFile.WithCause(err)
	}
	if len(rows) == 0 {
		return nil, internal.ErrInvalidFile
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	result := &ImportResult{Message: "Sales import completed", Skipped: []SkippedRow{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}

		req, err := decodeRow(header, row)
		if err == nil {
			_, err = s.Create(ctx, req)
		}
		if err != nil {
			if _, ok := internal.IsAppError(err); !ok && !errors.Is(err, errBadCell) {
				return nil, err
			}
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Imported++
	}

	s.logger.Info("sales import finished", "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

var errBadCell = errors.New("invalid cell")

func decodeRow(header, row []string) (*EntryRequest, error) {
	doc := make(map[string]any, len(header))
	for i, key := range header {
		if key == "" || i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		if textColumns[key] {
			doc[key] = cell
			continue
		}
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a number", errBadCell, key)
		}
		doc[key] = n
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var req EntryRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadCell, err)
	}
	return &req, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
