package envelope

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/namelessmc/go-nameless/apierror"
)

// Payload is the body of a successful response, kept byte for byte.
// It is either a JSON object (including its "error": false field) or a JSON array.
type Payload struct {
	raw json.RawMessage
}

// NewPayload wraps raw JSON without validating it.
func NewPayload(raw []byte) Payload {
	return Payload{raw: raw}
}

// Raw returns the bytes exactly as received.
func (p Payload) Raw() json.RawMessage { return p.raw }

// IsArray reports whether the payload is a top-level JSON array.
func (p Payload) IsArray() bool {
	trimmed := bytes.TrimSpace(p.raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Decode unmarshals the payload into v.
func (p Payload) Decode(v any) error {
	if err := json.Unmarshal(p.raw, v); err != nil {
		return &apierror.MalformedResponseError{Reason: "payload does not match the expected shape", Err: err}
	}
	return nil
}

// Object returns the payload as a JSON object.
func (p Payload) Object() (Object, error) {
	var obj Object
	if err := json.Unmarshal(p.raw, &obj); err != nil || obj == nil {
		return nil, &apierror.MalformedResponseError{Reason: "payload is not a JSON object", Err: err}
	}
	return obj, nil
}

// Elements returns the items of an array payload.
func (p Payload) Elements() ([]Payload, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(p.raw, &items); err != nil {
		return nil, &apierror.MalformedResponseError{Reason: "payload is not a JSON array", Err: err}
	}

	out := make([]Payload, len(items))
	for i, item := range items {
		out[i] = Payload{raw: item}
	}
	return out, nil
}

// Object is a decoded JSON object whose values are still raw.
// Every accessor treats a missing or mistyped field as a malformed response.
type Object map[string]json.RawMessage

// Has reports whether key is present and not null.
func (o Object) Has(key string) bool {
	raw, ok := o[key]
	return ok && !isNull(raw)
}

// Get returns the raw value of key.
func (o Object) Get(key string) (json.RawMessage, error) {
	raw, ok := o[key]
	if !ok {
		return nil, missing(key)
	}
	return raw, nil
}

// String returns the string value of key.
func (o Object) String(key string) (string, error) {
	raw, err := o.Get(key)
	if err != nil {
		return "", err
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", mistyped(key, "a string", err)
	}
	return s, nil
}

// Int returns the integer value of key. Numeric strings are accepted since the
// website often serialises database columns as strings.
func (o Object) Int(key string) (int64, error) {
	raw, err := o.Get(key)
	if err != nil {
		return 0, err
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, mistyped(key, "an integer", err)
	}

	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, mistyped(key, "an integer", err)
	}
	return v, nil
}

// Bool returns the boolean value of key. 0/1 and their string forms are accepted.
func (o Object) Bool(key string) (bool, error) {
	raw, err := o.Get(key)
	if err != nil {
		return false, err
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}

	var s json.Number
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s.String() {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, err := strconv.ParseBool(str); err == nil {
			return v, nil
		}
	}

	return false, mistyped(key, "a boolean", nil)
}

// Strings returns the string array value of key.
func (o Object) Strings(key string) ([]string, error) {
	raw, err := o.Get(key)
	if err != nil {
		return nil, err
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, mistyped(key, "an array of strings", err)
	}
	return list, nil
}

// Array returns the array value of key as payloads.
func (o Object) Array(key string) ([]Payload, error) {
	raw, err := o.Get(key)
	if err != nil {
		return nil, err
	}

	items, err := Payload{raw: raw}.Elements()
	if err != nil {
		return nil, mistyped(key, "an array", err)
	}
	return items, nil
}

// Object returns the nested object value of key.
func (o Object) Object(key string) (Object, error) {
	raw, err := o.Get(key)
	if err != nil {
		return nil, err
	}

	obj, err := Payload{raw: raw}.Object()
	if err != nil {
		return nil, mistyped(key, "an object", err)
	}
	return obj, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func missing(key string) error {
	return &apierror.MalformedResponseError{Reason: "missing field " + strconv.Quote(key)}
}

func mistyped(key, want string, cause error) error {
	return &apierror.MalformedResponseError{Reason: "field " + strconv.Quote(key) + " is not " + want, Err: cause}
}
