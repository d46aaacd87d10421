package importer

import "fmt"

// ValidationError reports a malformed source selection or credentials before
// any external call is made. The caller can fix the input and retry
// immediately.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthError reports a failed authentication attempt. The reason comes from
// the authenticator's fixed set; the caller may re-invoke Connect with
// corrected credentials.
type AuthError struct {
	Err      error
	SourceID string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication with %s failed: %v", e.SourceID, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ImportError reports a failure during fetch or persistence after successful
// authentication. Created counts the records persisted before the failure;
// those records are not rolled back. The caller must restart the workflow
// from source selection.
type ImportError struct {
	Err      error
	SourceID string
	Created  int
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import from %s failed after %d records: %v", e.SourceID, e.Created, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ErrSessionClosed is returned when an operation resolves after the session
// has been abandoned; its result is discarded.
type sessionClosedError struct{}

func (sessionClosedError) Error() string { return "import session closed" }

// ErrSessionClosed is the sentinel for operations on an abandoned session.
var ErrSessionClosed error = sessionClosedError{}

// stageError reports an operation invoked in the wrong session stage.
type stageError struct {
	op   string
	have Stage
	want Stage
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s requires stage %s, session is %s", e.op, e.want, e.have)
}
