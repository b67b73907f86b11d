package dataset

import "errors"

var (
	// ErrPathRequired is returned when a dataset path is not provided.
	ErrPathRequired = errors.New("dataset path required")

	// ErrEmptyDataset indicates a dataset file with no rows at all.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrNoKnownColumns indicates a header row with none of the expected
	// transcript dataset columns.
	ErrNoKnownColumns = errors.New("dataset header has no known columns")
)
