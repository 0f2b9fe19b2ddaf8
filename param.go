package nameless

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/oapi-codegen/runtime"

	"github.com/namelessmc/go-nameless/apierror"
)

// Param is one name/value pair of a call. Parameter lists are ordered and may
// repeat a name; every pair is sent and the website decides which one wins.
type Param struct {
	Name  string
	Value string

	// raw is the JSON form used in request bodies. Nil means Value as a JSON string.
	raw json.RawMessage
}

// String returns a string parameter.
func String(name, value string) Param {
	return Param{Name: name, Value: value}
}

// Int returns an integer parameter, sent as a JSON number in request bodies.
func Int(name string, value int64) Param {
	s := strconv.FormatInt(value, 10)
	return Param{Name: name, Value: s, raw: json.RawMessage(s)}
}

// Bool returns a boolean parameter, sent as a JSON boolean in request bodies.
func Bool(name string, value bool) Param {
	s := strconv.FormatBool(value)
	return Param{Name: name, Value: s, raw: json.RawMessage(s)}
}

// JSONParam returns a parameter carrying structured JSON, such as an array of
// group ids. In query strings the compact JSON text is sent as the value.
func JSONParam(name string, raw json.RawMessage) (Param, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return Param{}, &apierror.InvalidFormatError{What: "JSON parameter " + name, Value: string(raw), Reason: err.Error()}
	}
	return Param{Name: name, Value: compact.String(), raw: json.RawMessage(compact.Bytes())}, nil
}

// MarshalParam marshals v with encoding/json and wraps it with JSONParam.
func MarshalParam(name string, v any) (Param, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Param{}, errors.Wrapf(err, "marshal parameter %s", name)
	}
	return JSONParam(name, raw)
}

// ObjectParams splits a JSON object into one parameter per member, keeping member
// order and duplicates.
func ObjectParams(object json.RawMessage) ([]Param, error) {
	dec := json.NewDecoder(bytes.NewReader(object))

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, &apierror.InvalidFormatError{What: "JSON object", Value: abbreviate(object), Reason: "expected a JSON object"}
	}

	var params []Param
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &apierror.InvalidFormatError{What: "JSON object", Value: abbreviate(object), Reason: err.Error()}
		}
		name, ok := tok.(string)
		if !ok {
			return nil, &apierror.InvalidFormatError{What: "JSON object", Value: abbreviate(object), Reason: "member name is not a string"}
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &apierror.InvalidFormatError{What: "JSON object", Value: abbreviate(object), Reason: err.Error()}
		}

		p, err := JSONParam(name, value)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &apierror.InvalidFormatError{What: "JSON object", Value: abbreviate(object), Reason: err.Error()}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &apierror.InvalidFormatError{What: "JSON object", Value: abbreviate(object), Reason: "unexpected data after the object"}
	}

	return params, nil
}

// JSON returns the value as it appears in a request body.
func (p Param) JSON() json.RawMessage {
	if p.raw != nil {
		return p.raw
	}
	quoted, _ := json.Marshal(p.Value) //nolint:errchkjson // strings always marshal
	return quoted
}

// encodeQuery renders params as form style query fragments joined in order.
func encodeQuery(params []Param) (string, error) {
	frags := make([]string, 0, len(params))
	for _, p := range params {
		frag, err := runtime.StyleParamWithLocation("form", true, p.Name, runtime.ParamLocationQuery, p.Value)
		if err != nil {
			return "", errors.Wrapf(err, "encode query parameter %s", p.Name)
		}
		frags = append(frags, frag)
	}
	return strings.Join(frags, "&"), nil
}

// encodeBody renders params as a JSON object. Members are written in order and a
// repeated name is written twice.
func encodeBody(params []Param) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range params {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(p.Name) //nolint:errchkjson // strings always marshal
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(p.JSON())
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func abbreviate(raw []byte) string {
	const limit = 64
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
