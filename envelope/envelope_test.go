package envelope_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/envelope"
)

func TestDecodeSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "object payload", body: `{"error":false,"users":[{"id":1,"username":"Notch"}]}`},
		{name: "empty object payload", body: `{"error":false}`},
		{name: "top level array", body: `[{"id":1},{"id":2}]`},
		{name: "empty array", body: `[]`},
		{name: "surrounding whitespace", body: "\n  {\"error\": false, \"a\": 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, err := envelope.Decode("listUsers", []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(payload.Raw()), "payload must be returned byte for byte")
		})
	}
}

func TestDecodeErrorEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantMessage string
		wantDetails []string
	}{
		{
			name:     "errorCode",
			body:     `{"error":true,"errorCode":"invalid username"}`,
			wantCode: "invalid username",
		},
		{
			name:     "unknown code preserved",
			body:     `{"error":true,"errorCode":"totally_new_code"}`,
			wantCode: "totally_new_code",
		},
		{
			name:        "code field with message",
			body:        `{"error":true,"code":"core:invalid_username","message":"Invalid username"}`,
			wantCode:    "core:invalid_username",
			wantMessage: "Invalid username",
		},
		{
			name:     "numeric code",
			body:     `{"error":true,"code":16}`,
			wantCode: "16",
		},
		{
			name:        "message only",
			body:        `{"error":true,"message":"unknown error"}`,
			wantCode:    "unknown error",
			wantMessage: "unknown error",
		},
		{
			name:        "details list",
			body:        `{"error":true,"errorCode":"invalid post contents","errors":["username","email"]}`,
			wantCode:    "invalid post contents",
			wantDetails: []string{"username", "email"},
		},
		{
			name:        "details by field are sorted",
			body:        `{"error":true,"errorCode":"invalid post contents","errors":{"username":"too short","email":"missing"}}`,
			wantCode:    "invalid post contents",
			wantDetails: []string{"email: missing", "username: too short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, err := envelope.Decode("register", []byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, payload.Raw())

			decoded, ok := envelope.IsDecodedError(err)
			require.True(t, ok, "expected DecodedError, got %T", err)
			assert.Equal(t, tt.wantCode, decoded.Code)
			assert.Equal(t, tt.wantMessage, decoded.Message)
			assert.Equal(t, tt.wantDetails, decoded.Details)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantReason string
	}{
		{name: "empty", body: "", wantReason: "empty body"},
		{name: "html error page", body: "<html><body>Fatal error</body></html>", wantReason: "not valid JSON"},
		{name: "truncated", body: `{"error":false,"users":[`, wantReason: "not valid JSON"},
		{name: "scalar", body: `"ok"`, wantReason: "object or array"},
		{name: "missing error field", body: `{"users":[]}`, wantReason: `missing "error"`},
		{name: "string error field", body: `{"error":"false"}`, wantReason: "not a boolean"},
		{name: "numeric error field", body: `{"error":1}`, wantReason: "not a boolean"},
		{name: "error without code", body: `{"error":true}`, wantReason: "neither a code nor a message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := envelope.Decode("info", []byte(tt.body))
			require.Error(t, err)

			var malformed *apierror.MalformedResponseError
			require.True(t, errors.As(err, &malformed), "expected MalformedResponseError, got %T", err)
			assert.Equal(t, "info", malformed.Action)
			assert.Contains(t, malformed.Reason, tt.wantReason)

			_, isDecoded := envelope.IsDecodedError(err)
			assert.False(t, isDecoded)
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	body := []byte(`{"error":false,"users":[{"id":1,"username":"Notch","uuid":"069a79f444e94726a5befca90e38aaf5"}]}`)

	b.ResetTimer()
	for range b.N {
		_, _ = envelope.Decode("listUsers", body)
	}
}
