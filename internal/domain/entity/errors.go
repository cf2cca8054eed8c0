package entity

import "errors"

// ErrorKind classifies a failure for the single boundary mapping to
// HTTP status codes. Anything unclassified is treated as a store
// failure.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindUpstream
	KindStore
)

// Error is the one error type crossing the usecase boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError rejects a malformed request.
func ValidationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFoundError reports an unknown record id or an empty provider
// match.
func NotFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// UpstreamError wraps a provider failure. The message stays generic;
// the cause is kept only for logs.
func UpstreamError(err error) error {
	return &Error{Kind: KindUpstream, Message: "flight lookup failed", Err: err}
}

// StoreError wraps a persistence failure, keeping the underlying
// message visible to the caller.
func StoreError(err error) error {
	return &Error{Kind: KindStore, Message: "storage failure", Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to
// KindStore for unclassified errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}
