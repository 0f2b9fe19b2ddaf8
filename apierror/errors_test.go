package apierror_test

import (
	"context"
	"net"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelessmc/go-nameless/apierror"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestNewApplicationError(t *testing.T) {
	t.Parallel()

	t.Run("known code", func(t *testing.T) {
		t.Parallel()

		err := apierror.NewApplicationError("register", "invalid username", "", nil)
		assert.Equal(t, apierror.KindInvalidUsername, err.Kind)
		assert.False(t, err.IsUnknown())
		assert.Equal(t, "application error from register: invalid username", err.Error())
	})

	t.Run("unknown code keeps raw string", func(t *testing.T) {
		t.Parallel()

		err := apierror.NewApplicationError("info", "totally_new_code", "something odd", []string{"a", "b"})
		assert.Equal(t, apierror.KindUnknown, err.Kind)
		assert.True(t, err.IsUnknown())
		assert.Equal(t, "totally_new_code", err.Code)
		assert.Equal(t, []string{"a", "b"}, err.Details)
		assert.Contains(t, err.Error(), "totally_new_code")
		assert.Contains(t, err.Error(), "something odd")
	})
}

func TestHasKind(t *testing.T) {
	t.Parallel()

	appErr := apierror.NewApplicationError("register", "core:email_already_exists", "", nil)
	wrapped := errors.Wrap(appErr, "register user")

	assert.True(t, apierror.HasKind(wrapped, apierror.KindEmailAlreadyExists))
	assert.True(t, apierror.HasKind(wrapped, apierror.KindInvalidEmail, apierror.KindEmailAlreadyExists))
	assert.False(t, apierror.HasKind(wrapped, apierror.KindInvalidUsername))
	assert.False(t, apierror.HasKind(errors.New("plain"), apierror.KindUnknown))
	assert.False(t, apierror.HasKind(nil, apierror.KindUnknown))
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	t.Run("status", func(t *testing.T) {
		t.Parallel()

		err := &apierror.TransportError{Action: "info", StatusCode: 502}
		assert.Equal(t, "transport error calling info: unexpected HTTP status 502", err.Error())
		assert.False(t, err.Timeout())
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		err := &apierror.TransportError{Action: "info", Err: timeoutErr{}}
		assert.True(t, err.Timeout())
		assert.Contains(t, err.Error(), "i/o timeout")

		var target *apierror.TransportError
		require.True(t, errors.As(errors.Wrap(err, "outer"), &target))
		assert.Equal(t, "info", target.Action)
	})
}

func TestMalformedResponseError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected end of JSON input")
	err := &apierror.MalformedResponseError{Action: "listUsers", Reason: "body is not valid JSON", Err: cause}

	assert.Equal(t, "malformed response from listUsers: body is not valid JSON: unexpected end of JSON input", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestErrCanceledMark(t *testing.T) {
	t.Parallel()

	err := errors.Mark(errors.Wrap(context.Canceled, "call info"), apierror.ErrCanceled)

	assert.True(t, errors.Is(err, apierror.ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))

	var transportErr *apierror.TransportError
	assert.False(t, errors.As(err, &transportErr))
}

func TestInvalidFormatError(t *testing.T) {
	t.Parallel()

	err := &apierror.InvalidFormatError{What: "uuid", Value: "xyz", Reason: "expected 32 hex characters"}
	assert.Equal(t, `invalid uuid "xyz": expected 32 hex characters`, err.Error())
}
