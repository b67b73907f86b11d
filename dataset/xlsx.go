package dataset

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/oratia/talkbase/core"
)

// XLSXReader streams records from the first sheet of an Excel workbook.
type XLSXReader struct {
	path string
}

var _ Reader = (*XLSXReader)(nil)

// NewXLSXReader creates a reader for the workbook at path.
func NewXLSXReader(path string) (*XLSXReader, error) {
	if path == "" {
		return nil, ErrPathRequired
	}
	return &XLSXReader{path: path}, nil
}

// ForEach streams data rows in sheet order, indexed from 1.
func (r *XLSXReader) ForEach(ctx context.Context, fn func(row int64, record *core.Record) error) error {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return ErrEmptyDataset
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return ErrEmptyDataset
	}

	h := parseHeader(rows[0])
	if len(h) == 0 {
		return ErrNoKnownColumns
	}

	for i, cells := range rows[1:] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := fn(int64(i+1), h.recordFromRow(cells)); err != nil {
			return err
		}
	}
	return nil
}
