package handles

import "fmt"

// DiagnosticRecord carries the diagnostic a driver produced for a failed
// statement call: a five-character SQLSTATE, a driver-specific native error
// code, and a message. It is the single error kind originated by statement
// implementations and is propagated unchanged through the cursor layer.
type DiagnosticRecord struct {
	State       string
	NativeError int32
	Message     string
}

func (e *DiagnosticRecord) Error() string {
	if e.NativeError != 0 {
		return fmt.Sprintf("odbc: [%s] %s (%d)", e.State, e.Message, e.NativeError)
	}
	return fmt.Sprintf("odbc: [%s] %s", e.State, e.Message)
}
