package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oratia/talkbase/core"
)

// CSVReader streams records from a CSV file with a header row.
type CSVReader struct {
	path string
}

var _ Reader = (*CSVReader)(nil)

// NewCSVReader creates a reader for the CSV file at path.
// The file is opened lazily on each ForEach call.
func NewCSVReader(path string) (*CSVReader, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	return &CSVReader{path: path}, nil
}

// ForEach streams data rows in file order, indexed from 1.
func (r *CSVReader) ForEach(ctx context.Context, fn func(row int64, record *core.Record) error) error {
	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // ragged rows happen in scraped datasets

	headerCells, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyDataset
		}
		return fmt.Errorf("read header: %w", err)
	}
	h := parseHeader(headerCells)
	if len(h) == 0 {
		return ErrNoKnownColumns
	}

	var row int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", row+1, err)
		}

		row++
		if err := fn(row, h.recordFromRow(cells)); err != nil {
			return err
		}
	}
}
