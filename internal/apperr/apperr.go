// Package apperr defines the typed failure taxonomy shared by all handlers.
// Handlers construct these values and the HTTP boundary translates them to
// status codes and the client envelope exactly once.
package apperr

// Kind classifies a failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuth
	KindRoleMismatch
	KindNotFound
	KindInternal
)

// Error carries a stable client-facing message and, for internal failures,
// the underlying cause for logging. The cause is never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation reports missing or malformed required input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict reports a duplicate unique field.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Auth reports bad credentials. Callers must use the same message for
// unknown-email and wrong-password so the two are indistinguishable.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// RoleMismatch reports a role that does not match the stored account.
func RoleMismatch(message string) *Error {
	return &Error{Kind: KindRoleMismatch, Message: message}
}

// NotFound reports an identifier that does not resolve to a record.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal reports an unexpected collaborator failure.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}
