package odbc

import (
	"log"
	"runtime"

	"xorkevin.dev/kerrors"
)

// RowSetBuffer is the contract any row storage must satisfy to be bindable
// to a cursor. Implementations own their backing storage, which may use a
// columnar or row-major layout, and register it with the cursor through the
// cursor's binding operations: typically a binding orientation, a row array
// size, a rows-fetched target, and one BindColumn per column.
//
// The storage handed to the cursor is referenced by address. Implementations
// must keep it valid and unmoved for as long as the binding persists, which
// in practice means until the RowSetCursor created from the binding is
// closed.
type RowSetBuffer interface {
	BindToCursor(c *Cursor) error
}

// RowSetCursor pairs a cursor with a bound row set buffer for a bounded
// scope. While it is open it holds an exclusive lease on the cursor: any
// mutating cursor operation, including a second BindRowSetBuffer, fails with
// ErrCursorBusy. Closing it unbinds all columns and releases the lease,
// returning the cursor to an unbound but open state.
type RowSetCursor[B RowSetBuffer] struct {
	buffer B
	cursor *Cursor
	closed bool
}

// BindRowSetBuffer invokes the buffer's binding against the cursor and
// returns the row set cursor driving the fetch loop. On a binding error the
// lease is not taken and any partial bindings are released.
func BindRowSetBuffer[B RowSetBuffer](c *Cursor, buffer B) (*RowSetCursor[B], error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	if err := buffer.BindToCursor(c); err != nil {
		// The binding failure is already propagating; a cleanup failure
		// here is logged so it cannot mask it.
		if unbindErr := c.UnbindColumns(); unbindErr != nil {
			log.Printf("odbc: unbind after binding failure failed: %v", unbindErr)
		}
		return nil, err
	}
	c.leased = true
	rc := &RowSetCursor[B]{buffer: buffer, cursor: c}
	runtime.SetFinalizer(rc, (*RowSetCursor[B]).finalize)
	return rc, nil
}

func (rc *RowSetCursor[B]) finalize() {
	if rc.closed {
		return
	}
	rc.cursor.leased = false
	if err := rc.cursor.UnbindColumns(); err != nil {
		log.Printf("odbc: row set cursor leaked without Close, unbind failed: %v", err)
		return
	}
	log.Printf("odbc: row set cursor leaked without Close")
}

// Fetch retrieves the next row set. On success it returns the buffer, now
// holding fresh data, and true. The same buffer instance is reused and
// mutated in place on every call; callers must not rely on its contents
// across the next Fetch. Exhaustion returns false with no error.
func (rc *RowSetCursor[B]) Fetch() (B, bool, error) {
	var zero B
	if rc.closed {
		return zero, false, kerrors.WithKind(nil, ErrCursorClosed, "Row set cursor is closed")
	}
	hasRow, err := rc.cursor.fetchLeased()
	if err != nil {
		return zero, false, err
	}
	if !hasRow {
		return zero, false, nil
	}
	return rc.buffer, true, nil
}

// Close releases the lease and unbinds all columns except the bookmark
// column from the underlying cursor. It is idempotent; only the first call
// reaches the cursor. The cursor itself stays open and must still be closed
// by its owner.
func (rc *RowSetCursor[B]) Close() error {
	if rc.closed {
		return nil
	}
	rc.closed = true
	runtime.SetFinalizer(rc, nil)
	rc.cursor.leased = false
	if err := rc.cursor.UnbindColumns(); err != nil {
		return kerrors.WithMsg(err, "Failed to unbind columns")
	}
	return nil
}
