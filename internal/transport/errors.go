package transport

import "fmt"

// TransportError wraps a failure from the socket layer: a closed
// connection, a short write, or a DNS/resolve failure. Per spec.md
// §7, every transport error is fatal for the goroutine that hit it —
// the Op field records which operation failed so a caller can log it
// without re-parsing the error string.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}
