// Package odbc implements the result-set traversal layer of an ODBC-style
// driver binding. A Cursor owns a statement handle for the duration of an
// open result set and exposes column metadata, row-at-a-time fetching, and
// raw column binding. A RowSetBuffer supplies its own row storage and binds
// it to a Cursor; the resulting RowSetCursor drives the block-fetch loop and
// guarantees the bindings are released when it is closed.
//
// Statement handles are external collaborators satisfying the interface in
// the handles subpackage; concrete row storage lives in the buffers
// subpackage, and row-at-a-time iteration over block fetches in the scanner
// subpackage.
package odbc
