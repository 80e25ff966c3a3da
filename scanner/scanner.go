// Package scanner provides row-at-a-time iteration over a block-fetching
// cursor. It flattens the batches retrieved through a bound text row set
// into the familiar Next/ScanRow loop, so callers never deal with row sets
// or bindings directly.
package scanner

type Rows interface {
	Next() bool
	ScanRow() ([]any, error)
	Columns() ([]Column, error)
	Driver() string
	Err() error
	Close() error
}
