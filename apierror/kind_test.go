package apierror_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/namelessmc/go-nameless/apierror"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want apierror.ErrorKind
	}{
		{code: "invalid username", want: apierror.KindInvalidUsername},
		{code: "core:invalid_username", want: apierror.KindInvalidUsername},
		{code: "unable to send registration email", want: apierror.KindUnableToSendRegistrationEmail},
		{code: "invalid api key", want: apierror.KindInvalidAPIKey},
		{code: "nameless:invalid_api_key", want: apierror.KindInvalidAPIKey},
		{code: "user not found", want: apierror.KindUserNotFound},
		{code: "nameless:cannot_find_user", want: apierror.KindUserNotFound},
		{code: "core:username_already_exists", want: apierror.KindUsernameAlreadyExists},
		{code: "discord_integration:discord_integration_disabled", want: apierror.KindDiscordIntegrationDisabled},
		{code: "totally_new_code", want: apierror.KindUnknown},
		{code: "", want: apierror.KindUnknown},
		// Matching is exact: neither case folding nor substring matching.
		{code: "Invalid Username", want: apierror.KindUnknown},
		{code: "the invalid username was rejected", want: apierror.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, apierror.Classify(tt.code))
			assert.Equal(t, tt.want != apierror.KindUnknown, apierror.Known(tt.code))
		})
	}
}

func TestErrorKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid_username", apierror.KindInvalidUsername.String())
	assert.Equal(t, "unknown", apierror.KindUnknown.String())
	assert.Equal(t, "unknown", apierror.ErrorKind(9999).String())
}

func TestEveryKindHasName(t *testing.T) {
	t.Parallel()

	for kind := apierror.KindUnknown; kind <= apierror.KindInvalidDiscordBotSettings; kind++ {
		if kind != apierror.KindUnknown {
			assert.NotEqual(t, "unknown", kind.String(), "kind %d has no name", int(kind))
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	b.Run("known", func(b *testing.B) {
		for range b.N {
			apierror.Classify("core:invalid_username")
		}
	})

	b.Run("unknown", func(b *testing.B) {
		for range b.N {
			apierror.Classify("totally_new_code")
		}
	})
}
