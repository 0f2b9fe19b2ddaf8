// Package apierror defines the errors returned by the NamelessMC API client.
//
// Every failed call yields exactly one of:
//   - *TransportError: the website could not be reached, the call timed out or the
//     HTTP status says the endpoint itself is broken (5xx, redirect loops).
//   - *MalformedResponseError: the body does not follow the response envelope.
//   - *ApplicationError: the website answered with {"error": true, ...}.
//   - *InvalidFormatError: a value supplied by the caller or sent by the server is
//     malformed, e.g. a UUID or an unknown Action.
//
// Cancelling the request context yields an error matching ErrCanceled instead of a
// TransportError.
//
// Use errors.As to inspect them:
//
//	var appErr *apierror.ApplicationError
//	if errors.As(err, &appErr) && appErr.Kind == apierror.KindUsernameAlreadyExists {
//	    // pick another name
//	}
package apierror

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrCanceled marks calls aborted because the caller's context was canceled or
// its deadline passed.
var ErrCanceled = errors.New("request canceled")

// TransportError reports a failure to complete the HTTP round trip.
type TransportError struct {
	// Action is the route of the action that was being called.
	Action string
	// URL is the request target with the API key redacted.
	URL string
	// StatusCode is set when the server answered with a status outside 2xx/4xx.
	StatusCode int
	// Err is the underlying network error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error calling %s: unexpected HTTP status %d", e.Action, e.StatusCode)
	}
	return fmt.Sprintf("transport error calling %s: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the round trip failed because the client timeout elapsed.
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// MalformedResponseError reports a body that is not a valid response envelope, or a
// success payload that lacks a field the action always returns.
type MalformedResponseError struct {
	Action string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	msg := "malformed response"
	if e.Action != "" {
		msg += " from " + e.Action
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ApplicationError is an error reported by the website inside the response envelope.
type ApplicationError struct {
	Action string
	// Kind is the classification of Code. KindUnknown when the code is not registered.
	Kind ErrorKind
	// Code is the raw error code sent by the server.
	Code string
	// Message is the optional human readable text sent next to the code.
	Message string
	// Details holds the entries of the optional "errors" array.
	Details []string
}

// NewApplicationError classifies code and builds the matching ApplicationError.
func NewApplicationError(action, code, message string, details []string) *ApplicationError {
	return &ApplicationError{
		Action:  action,
		Kind:    Classify(code),
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (e *ApplicationError) Error() string {
	var b strings.Builder
	b.WriteString("application error")
	if e.Action != "" {
		b.WriteString(" from ")
		b.WriteString(e.Action)
	}
	b.WriteString(": ")
	b.WriteString(e.Code)
	if e.Message != "" && e.Message != e.Code {
		b.WriteString(" (")
		b.WriteString(e.Message)
		b.WriteString(")")
	}
	return b.String()
}

// IsUnknown reports whether the server code is missing from the registry.
func (e *ApplicationError) IsUnknown() bool { return e.Kind == KindUnknown }

// HasKind reports whether err is an ApplicationError of one of the given kinds.
func HasKind(err error, kinds ...ErrorKind) bool {
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return false
	}
	return slices.Contains(kinds, appErr.Kind)
}

// InvalidFormatError reports a malformed identifier such as a UUID or Discord id.
type InvalidFormatError struct {
	// What names the kind of value, e.g. "uuid".
	What   string
	Value  string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.What, e.Value, e.Reason)
}
