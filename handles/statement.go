// Package handles defines the statement-handle boundary of the cursor layer:
// the narrow interface a driver statement must satisfy for a result set to be
// traversed, the column metadata it reports, and the diagnostic error it
// produces. Drivers live outside this module; an in-memory reference
// implementation is provided for tests and embedding.
package handles

import "unsafe"

// ColumnDescription holds the metadata of a single result set column as
// reported by DescribeColumn. It is caller-allocated and overwritten on each
// call; its contents are undefined after a failed describe.
type ColumnDescription struct {
	Name          string
	DataType      SQLDataType
	ColumnSize    uint64
	DecimalDigits int16
	Nullability   Nullability
}

// Statement is the stateful handle of a prepared and executed query. A
// statement is exclusively owned by the cursor traversing it and must not be
// reused until that cursor is closed.
//
// All calls are synchronous and may block on driver I/O. Implementations are
// not required to be safe for concurrent use; the cursor layer never issues
// concurrent calls.
//
// The bind-related operations (SetRowArraySize, SetRowsFetchedTarget,
// SetRowBindingOrientation, BindColumn) register caller-owned memory with the
// driver by address. The caller must keep that memory valid and unmoved for
// as long as it stays registered; the statement never takes ownership.
type Statement interface {
	// CloseCursor closes the open result set, discarding any pending rows.
	CloseCursor() error

	// DescribeColumn fills desc with the metadata of the given column.
	// Column 0 is the bookmark column, which is absent from some result
	// sets; ordinary columns are numbered starting at 1. desc is undefined
	// on error.
	DescribeColumn(column uint16, desc *ColumnDescription) error

	// ColumnCount reports the number of columns in the result set.
	ColumnCount() (int16, error)

	// Fetch advances to the next row or row set, filling any bound column
	// buffers. It reports false, with no error, once the result set is
	// exhausted.
	Fetch() (bool, error)

	// SetRowArraySize configures Fetch to retrieve up to size rows per
	// call. Buffers bound via BindColumn must be able to hold size rows.
	SetRowArraySize(size uint32) error

	// SetRowsFetchedTarget registers rowsFetched to receive the number of
	// rows retrieved by each Fetch. The pointee must stay valid and
	// unmoved while registered.
	SetRowsFetchedTarget(rowsFetched *uint64) error

	// SetRowBindingOrientation selects the memory layout of bound buffers.
	// Zero selects columnar binding; any positive value selects row-major
	// binding with that byte stride.
	SetRowBindingOrientation(rowStride uint32) error

	// UnbindColumns releases every column binding except the bookmark
	// column.
	UnbindColumns() error

	// BindColumn registers a data buffer and an indicator buffer for a
	// column. Binding a column past the result set's column count is not
	// detected here; it surfaces as an error from a later Fetch. The
	// buffers must stay valid and unmoved while bound.
	BindColumn(column uint16, targetType CDataType, value unsafe.Pointer, length int64, indicator *int64) error

	// IsUnsignedColumn reports true if the column's type is unsigned or
	// not numeric.
	IsUnsignedColumn(column uint16) (bool, error)

	// ColumnSQLType reports the SQL type of the column.
	ColumnSQLType(column uint16) (SQLDataType, error)

	// ColumnOctetLength reports the maximum byte size of the column's
	// values, excluding any terminator.
	ColumnOctetLength(column uint16) (int64, error)

	// ColumnDisplaySize reports the maximum number of characters needed to
	// render one of the column's values.
	ColumnDisplaySize(column uint16) (int64, error)
}
