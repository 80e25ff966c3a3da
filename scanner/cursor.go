package scanner

import (
	"github.com/go-data-exporter/odbc"
	"github.com/go-data-exporter/odbc/buffers"
	"xorkevin.dev/kerrors"
)

// cursorRowsScanner wraps an open cursor and a bound text row set and
// implements the Rows interface, allowing consumers to traverse the result
// set row by row while data is retrieved in batches underneath.
type cursorRowsScanner struct {
	cursor     *odbc.Cursor
	rowSet     *odbc.RowSetCursor[*buffers.TextRowSet]
	columns    []Column
	batch      *buffers.TextRowSet
	row        int
	done       bool
	err        error
	currentRow []any
}

// FromCursor creates a Rows-compatible wrapper around a cursor, fetching
// batchSize rows per round trip. On success it takes ownership of the
// cursor: Close releases the bindings and closes the cursor. On error the
// cursor is left open, unbound, and still owned by the caller. maxStrLen, if
// positive, caps the per-column buffer capacity in bytes.
func FromCursor(c *odbc.Cursor, batchSize, maxStrLen int) (Rows, error) {
	columns, err := describeColumns(c)
	if err != nil {
		return nil, err
	}
	buf, err := buffers.TextRowSetForCursor(batchSize, c, maxStrLen)
	if err != nil {
		return nil, err
	}
	rowSet, err := odbc.BindRowSetBuffer(c, buf)
	if err != nil {
		return nil, err
	}
	return &cursorRowsScanner{
		cursor:  c,
		rowSet:  rowSet,
		columns: columns,
	}, nil
}

// describeColumns collects column metadata while the cursor is still
// unbound.
func describeColumns(c *odbc.Cursor) ([]Column, error) {
	count, err := c.ColumnCount()
	if err != nil {
		return nil, err
	}
	columns := make([]Column, 0, count)
	for i := uint16(1); i <= uint16(count); i++ {
		col := cursorColumn{}
		if err := c.DescribeColumn(i, &col.desc); err != nil {
			return nil, err
		}
		if col.octetLen, err = c.ColumnOctetLength(i); err != nil {
			return nil, err
		}
		if col.unsigned, err = c.IsUnsignedColumn(i); err != nil {
			return nil, err
		}
		columns = append(columns, &col)
	}
	return columns, nil
}

// Next prepares the next row for reading, fetching the next batch when the
// current one is consumed. Returns false at the end of the result set or on
// error; the error is reported by Err.
func (s *cursorRowsScanner) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.batch != nil && s.row+1 < s.batch.NumRows() {
		s.row++
		return true
	}
	batch, hasRows, err := s.rowSet.Fetch()
	if err != nil {
		s.err = err
		return false
	}
	if !hasRows || batch.NumRows() == 0 {
		s.done = true
		return false
	}
	s.batch = batch
	s.row = 0
	return true
}

// ScanRow returns the current row's values as strings, with nil for NULL.
// It must be called only after a successful call to Next. The returned slice
// is reused across calls.
func (s *cursorRowsScanner) ScanRow() ([]any, error) {
	if s.batch == nil {
		return nil, kerrors.WithMsg(nil, "Scan called without calling Next")
	}
	if s.currentRow == nil {
		s.currentRow = make([]any, s.batch.NumCols())
	}
	for i := range s.currentRow {
		if v, ok := s.batch.Value(s.row, i); ok {
			s.currentRow[i] = v
		} else {
			s.currentRow[i] = nil
		}
	}
	return s.currentRow, nil
}

// Columns returns column metadata for the result set.
func (s *cursorRowsScanner) Columns() ([]Column, error) {
	return s.columns, nil
}

// Driver returns the name of the underlying access path.
func (s *cursorRowsScanner) Driver() string {
	return "odbc"
}

// Err returns the error, if any, that stopped iteration.
func (s *cursorRowsScanner) Err() error {
	return s.err
}

// Close releases the column bindings and closes the cursor.
func (s *cursorRowsScanner) Close() error {
	if err := s.rowSet.Close(); err != nil {
		return err
	}
	return s.cursor.Close()
}
