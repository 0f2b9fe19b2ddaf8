// Package envelope decodes the uniform JSON wrapper the NamelessMC website puts
// around every API response.
//
// A response is one of:
//
//	{"error": false, ...payload fields}   success, the whole object is the payload
//	{"error": true, "errorCode": "...", "message": "..."}   application error
//	[ ... ]   success for the few actions that answer with a bare array
//
// Anything else is a malformed response.
package envelope

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/namelessmc/go-nameless/apierror"
)

// DecodedError is an error envelope before its code has been classified.
type DecodedError struct {
	Code    string
	Message string
	Details []string
}

func (e *DecodedError) Error() string {
	if e.Message != "" && e.Message != e.Code {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// Decode interprets body as a response envelope for the given action route.
//
// It returns the payload on success, a *DecodedError when the envelope reports an
// error, and a *apierror.MalformedResponseError when the body is not an envelope.
//
// Usage:
//
//	payload, err := envelope.Decode("info", raw.Body)
func Decode(action string, body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Payload{}, malformed(action, "empty body", nil)
	}

	if !json.Valid(trimmed) {
		return Payload{}, malformed(action, "body is not valid JSON", nil)
	}

	switch trimmed[0] {
	case '[':
		return Payload{raw: body}, nil
	case '{':
	default:
		return Payload{}, malformed(action, "expected a JSON object or array", nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Payload{}, malformed(action, "body is not a JSON object", err)
	}

	rawFlag, ok := fields["error"]
	if !ok {
		return Payload{}, malformed(action, `missing "error" field`, nil)
	}

	var failed bool
	if err := json.Unmarshal(rawFlag, &failed); err != nil {
		return Payload{}, malformed(action, `"error" field is not a boolean`, err)
	}

	if !failed {
		return Payload{raw: body}, nil
	}

	decoded := &DecodedError{
		Code:    scalarField(fields["errorCode"]),
		Message: scalarField(fields["message"]),
		Details: detailsField(fields["errors"]),
	}
	if decoded.Code == "" {
		decoded.Code = scalarField(fields["code"])
	}
	if decoded.Code == "" {
		decoded.Code = decoded.Message
	}
	if decoded.Code == "" {
		return Payload{}, malformed(action, "error response carries neither a code nor a message", nil)
	}

	return Payload{}, decoded
}

func malformed(action, reason string, cause error) error {
	return &apierror.MalformedResponseError{Action: action, Reason: reason, Err: cause}
}

// scalarField returns strings as-is and numbers in their JSON spelling. Other
// values yield "".
func scalarField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

// detailsField accepts a list of strings or an object of field -> message.
func detailsField(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err == nil {
		details := make([]string, 0, len(byField))
		for field, msg := range byField {
			details = append(details, field+": "+msg)
		}
		slices.Sort(details)
		return details
	}

	return nil
}

// IsDecodedError reports whether err is a DecodedError and returns it.
func IsDecodedError(err error) (*DecodedError, bool) {
	var decoded *DecodedError
	if errors.As(err, &decoded) {
		return decoded, true
	}
	return nil, false
}
