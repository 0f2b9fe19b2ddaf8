package main

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelessmc/go-nameless"
	"github.com/namelessmc/go-nameless/apierror"
)

func TestParseRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg       string
		wantKind  nameless.RefKind
		wantValue string
	}{
		{arg: "Notch", wantKind: nameless.RefUsername, wantValue: "Notch"},
		{arg: "username:id:weird", wantKind: nameless.RefUsername, wantValue: "id:weird"},
		{arg: "id:42", wantKind: nameless.RefID, wantValue: "42"},
		{arg: "uuid:069a79f4-44e9-4726-a5be-fca90e38aaf5", wantKind: nameless.RefUUID, wantValue: "069a79f444e94726a5befca90e38aaf5"},
		{arg: "069a79f444e94726a5befca90e38aaf5", wantKind: nameless.RefUUID, wantValue: "069a79f444e94726a5befca90e38aaf5"},
		{arg: "discord:175928847299117063", wantKind: nameless.RefDiscordID, wantValue: "175928847299117063"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			ref, err := parseRef(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind())
			assert.Equal(t, tt.wantValue, ref.Value())
		})
	}
}

func TestParseRefErrors(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"id:abc", "id:0", "uuid:nope", "discord:x", "email:a@b.c"} {
		_, err := parseRef(arg)
		assert.Error(t, err, arg)
	}

	_, err := parseRefs([]string{"Notch", "id:-1"})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	badKey := apierror.NewApplicationError("info", "nameless:invalid_api_key", "", nil)
	assert.Contains(t, describe(badKey).Error(), "API key")

	canceled := errors.Mark(errors.New("call info"), apierror.ErrCanceled)
	assert.Equal(t, "canceled", describe(canceled).Error())

	other := apierror.NewApplicationError("register", "core:invalid_username", "", nil)
	assert.Same(t, other, describe(other))
}
