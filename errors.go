package odbc

var (
	// ErrCursorClosed is returned when operating on a closed cursor
	ErrCursorClosed errCursorClosed
	// ErrCursorBusy is returned when a cursor is exclusively held by an
	// open row set cursor
	ErrCursorBusy errCursorBusy
)

type (
	errCursorClosed struct{}
	errCursorBusy   struct{}
)

func (e errCursorClosed) Error() string {
	return "Cursor is closed"
}

func (e errCursorBusy) Error() string {
	return "Cursor is bound to a row set cursor"
}
