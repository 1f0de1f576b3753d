package directadmin

import "fmt"

// TransportError is returned when the panel answers with a non-2xx status.
// The raw body is kept for diagnostics; DirectAdmin reports auth and
// permission problems in the body rather than in a structured payload.
type TransportError struct {
	Command string
	Status  int
	Body    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("directadmin: %s returned status %d: %s", e.Command, e.Status, e.Body)
}

// MalformedResponseError is returned when a 2xx response body cannot be
// decoded as JSON. DirectAdmin falls back to URL-encoded error text in a few
// failure modes even when json=yes is requested, so the raw body is the only
// useful diagnostic.
type MalformedResponseError struct {
	Command string
	Body    string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("directadmin: %s returned undecodable body: %v: %s", e.Command, e.Err, e.Body)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
