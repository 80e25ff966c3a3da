// Package buffers provides concrete row set buffers implementing the
// odbc.RowSetBuffer contract. All buffers here use a columnar layout: one
// contiguous slab and one indicator array per column, sized for a fixed
// batch of rows.
package buffers

import (
	"unsafe"

	"github.com/go-data-exporter/odbc"
	"github.com/go-data-exporter/odbc/handles"
	"xorkevin.dev/kerrors"
)

// TextRowSet retrieves every column as narrow text. Each column owns a slab
// of batchSize elements of maxLen+1 bytes (payload plus terminator) and a
// parallel indicator array recording per-value byte lengths or NULL.
//
// The slabs are handed to the cursor by address on BindToCursor and must not
// be resized or moved while bound; the row set cursor's Close releases the
// bindings.
type TextRowSet struct {
	batchSize  int
	maxLens    []int
	data       [][]byte
	indicators [][]int64
	numRows    uint64
}

// NewTextRowSet allocates a buffer for batchSize rows, with maxStrLens
// giving the payload capacity in bytes of each column, excluding the
// terminator.
func NewTextRowSet(batchSize int, maxStrLens []int) (*TextRowSet, error) {
	if batchSize <= 0 {
		return nil, kerrors.WithMsg(nil, "Batch size must be positive")
	}
	s := &TextRowSet{
		batchSize: batchSize,
		maxLens:   append([]int(nil), maxStrLens...),
	}
	for _, maxLen := range maxStrLens {
		if maxLen < 0 {
			return nil, kerrors.WithMsg(nil, "Column length must not be negative")
		}
		s.data = append(s.data, make([]byte, batchSize*(maxLen+1)))
		s.indicators = append(s.indicators, make([]int64, batchSize))
	}
	return s, nil
}

// TextRowSetForCursor sizes a buffer from the cursor's column metadata, one
// column per result set column, using each column's display size as its
// payload capacity. maxStrLen, if positive, caps the capacity of any single
// column; use it to keep unbounded varchar columns from dominating the
// allocation.
func TextRowSetForCursor(batchSize int, c *odbc.Cursor, maxStrLen int) (*TextRowSet, error) {
	count, err := c.ColumnCount()
	if err != nil {
		return nil, err
	}
	maxLens := make([]int, 0, count)
	for column := uint16(1); column <= uint16(count); column++ {
		size, err := c.ColumnDisplaySize(column)
		if err != nil {
			return nil, err
		}
		maxLen := int(size)
		if maxStrLen > 0 && maxLen > maxStrLen {
			maxLen = maxStrLen
		}
		if maxLen < 1 {
			maxLen = 1
		}
		maxLens = append(maxLens, maxLen)
	}
	return NewTextRowSet(batchSize, maxLens)
}

// BindToCursor registers the buffer's storage with the cursor: columnar
// orientation, the batch size as row array size, the rows-fetched target,
// and one char binding per column.
func (s *TextRowSet) BindToCursor(c *odbc.Cursor) error {
	if err := c.SetRowBindingOrientation(0); err != nil {
		return err
	}
	if err := c.SetRowArraySize(uint32(s.batchSize)); err != nil {
		return err
	}
	if err := c.SetRowsFetchedTarget(&s.numRows); err != nil {
		return err
	}
	for i := range s.data {
		elemLen := int64(s.maxLens[i] + 1)
		if err := c.BindColumn(uint16(i+1), handles.CDataChar, unsafe.Pointer(&s.data[i][0]), elemLen, &s.indicators[i][0]); err != nil {
			return err
		}
	}
	return nil
}

// BatchSize reports the maximum number of rows retrieved per fetch.
func (s *TextRowSet) BatchSize() int {
	return s.batchSize
}

// NumCols reports the number of columns the buffer holds.
func (s *TextRowSet) NumCols() int {
	return len(s.data)
}

// NumRows reports the number of rows filled by the last fetch.
func (s *TextRowSet) NumRows() int {
	return int(s.numRows)
}

// At returns the raw bytes of the value at row and zero-based column index,
// or nil for NULL. Truncated values are clamped to the column's capacity.
// The slice aliases the buffer's storage and is overwritten by the next
// fetch.
func (s *TextRowSet) At(row, col int) []byte {
	indicator := s.indicators[col][row]
	if indicator == handles.NullData {
		return nil
	}
	maxLen := s.maxLens[col]
	n := int(indicator)
	if indicator < 0 || n > maxLen {
		n = maxLen
	}
	start := row * (maxLen + 1)
	return s.data[col][start : start+n]
}

// Value returns the value at row and zero-based column index as a string,
// with false for NULL.
func (s *TextRowSet) Value(row, col int) (string, bool) {
	raw := s.At(row, col)
	if raw == nil {
		return "", false
	}
	return string(raw), true
}
