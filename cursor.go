package odbc

import (
	"log"
	"runtime"
	"unsafe"

	"github.com/go-data-exporter/odbc/handles"
	"xorkevin.dev/kerrors"
)

// ColumnDescription is the column metadata record filled by
// [Cursor.DescribeColumn].
type ColumnDescription = handles.ColumnDescription

// Cursor owns one open result set over a statement handle. It is created
// Open and must be closed exactly once via Close; after that every other
// operation fails with ErrCursorClosed. A cursor is not safe for concurrent
// use.
//
// Errors produced by the underlying statement are propagated unchanged; the
// cursor never retries.
type Cursor struct {
	stmt   handles.Statement
	closed bool
	leased bool
}

// NewCursor wraps an executed statement handle. The cursor takes exclusive
// ownership of the handle until Close; the handle must not be used through
// any other path while the cursor exists.
func NewCursor(stmt handles.Statement) *Cursor {
	c := &Cursor{stmt: stmt}
	// Safety net only. Close is the supported cleanup path; a finalizer
	// must not panic, so a leaked cursor logs instead.
	runtime.SetFinalizer(c, (*Cursor).finalize)
	return c
}

func (c *Cursor) finalize() {
	if c.closed {
		return
	}
	if err := c.stmt.CloseCursor(); err != nil {
		log.Printf("odbc: cursor leaked without Close, close cursor failed: %v", err)
		return
	}
	log.Printf("odbc: cursor leaked without Close")
}

// Close closes the result set on the underlying statement. It is idempotent;
// only the first call reaches the statement. While a row set cursor is open
// the cursor cannot be closed: the statement still holds the buffer's column
// bindings, so Close fails with ErrCursorBusy until the row set cursor is
// closed. A close failure means the driver's and the cursor's bookkeeping
// have diverged and the handle should not be reused.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	if c.leased {
		return kerrors.WithKind(nil, ErrCursorBusy, "Cursor is bound to a row set cursor")
	}
	c.closed = true
	runtime.SetFinalizer(c, nil)
	if err := c.stmt.CloseCursor(); err != nil {
		return kerrors.WithMsg(err, "Failed to close cursor")
	}
	return nil
}

// guard rejects mutating operations on a closed or leased cursor.
func (c *Cursor) guard() error {
	if c.closed {
		return kerrors.WithKind(nil, ErrCursorClosed, "Cursor is closed")
	}
	if c.leased {
		return kerrors.WithKind(nil, ErrCursorBusy, "Cursor is bound to a row set cursor")
	}
	return nil
}

func (c *Cursor) guardClosed() error {
	if c.closed {
		return kerrors.WithKind(nil, ErrCursorClosed, "Cursor is closed")
	}
	return nil
}

// DescribeColumn fills desc with the metadata of a column. Column 0 is the
// bookmark column, which is absent from some result sets; ordinary columns
// are numbered starting at 1 in left-to-right order. desc is undefined if an
// error is returned.
func (c *Cursor) DescribeColumn(column uint16, desc *ColumnDescription) error {
	if err := c.guardClosed(); err != nil {
		return err
	}
	return c.stmt.DescribeColumn(column, desc)
}

// ColumnCount reports the number of columns in the result set.
func (c *Cursor) ColumnCount() (int16, error) {
	if err := c.guardClosed(); err != nil {
		return 0, err
	}
	return c.stmt.ColumnCount()
}

// Fetch advances to the next row, or to the next row set if a row array size
// greater than one is configured, filling any bound column buffers. It
// reports false, with no error, once the result set is exhausted; further
// calls keep reporting false.
func (c *Cursor) Fetch() (bool, error) {
	if err := c.guard(); err != nil {
		return false, err
	}
	return c.stmt.Fetch()
}

// fetchLeased is the fetch path for the row set cursor holding the lease.
func (c *Cursor) fetchLeased() (bool, error) {
	if err := c.guardClosed(); err != nil {
		return false, err
	}
	return c.stmt.Fetch()
}

// SetRowArraySize configures block fetching: each Fetch retrieves up to size
// rows. The caller must ensure every buffer bound via BindColumn can hold
// size rows; violating that is undefined behavior, not a detectable error.
func (c *Cursor) SetRowArraySize(size uint32) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.stmt.SetRowArraySize(size)
}

// SetRowsFetchedTarget registers an integer the driver writes the actual
// number of rows fetched into after each Fetch. The pointee must stay valid
// and unmoved for as long as it remains registered.
func (c *Cursor) SetRowsFetchedTarget(rowsFetched *uint64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.stmt.SetRowsFetchedTarget(rowsFetched)
}

// SetRowBindingOrientation selects the memory layout of bound buffers. Zero
// selects columnar binding; any positive value selects row-major binding
// with that byte stride. Buffers bound afterwards must match the selected
// layout.
func (c *Cursor) SetRowBindingOrientation(rowStride uint32) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.stmt.SetRowBindingOrientation(rowStride)
}

// UnbindColumns releases every column binding except the bookmark column. It
// is safe to call with no bindings in place.
func (c *Cursor) UnbindColumns() error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.stmt.UnbindColumns()
}

// BindColumn registers caller-owned data and indicator buffers for a column.
// Column 0 is the bookmark column. Binding a column past the result set's
// column count is not detected here; it surfaces as an error from a later
// Fetch. The buffers must stay valid and unmoved until unbound; the cursor
// references them by address only and never takes ownership.
func (c *Cursor) BindColumn(column uint16, targetType handles.CDataType, value unsafe.Pointer, length int64, indicator *int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.stmt.BindColumn(column, targetType, value, length, indicator)
}

// IsUnsignedColumn reports true if the column's type is unsigned or not
// numeric. Columns are numbered starting at 1.
func (c *Cursor) IsUnsignedColumn(column uint16) (bool, error) {
	if err := c.guardClosed(); err != nil {
		return false, err
	}
	return c.stmt.IsUnsignedColumn(column)
}

// ColumnSQLType reports the SQL type of a column. Columns are numbered
// starting at 1.
func (c *Cursor) ColumnSQLType(column uint16) (handles.SQLDataType, error) {
	if err := c.guardClosed(); err != nil {
		return handles.SQLUnknownType, err
	}
	return c.stmt.ColumnSQLType(column)
}

// ColumnOctetLength reports the maximum byte size of a column's values. For
// variable sized types this excludes any terminator.
func (c *Cursor) ColumnOctetLength(column uint16) (int64, error) {
	if err := c.guardClosed(); err != nil {
		return 0, err
	}
	return c.stmt.ColumnOctetLength(column)
}

// ColumnDisplaySize reports the maximum number of characters required to
// display one of the column's values.
func (c *Cursor) ColumnDisplaySize(column uint16) (int64, error) {
	if err := c.guardClosed(); err != nil {
		return 0, err
	}
	return c.stmt.ColumnDisplaySize(column)
}
