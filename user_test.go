package nameless_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelessmc/go-nameless"
	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/internal/testutil"
	"github.com/namelessmc/go-nameless/testdata"
)

var notchUUID = uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")

func TestListUsers(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("listUsers", http.StatusOK, testdata.LoadFixture(t, "users/list.json"))

	users, err := newClient(t, site).ListUsers(context.Background(), nameless.Bool("banned", false))
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "admin", users[0].Username)
	assert.Nil(t, users[0].UUID, `"none" means no linked account`)

	require.NotNil(t, users[1].UUID)
	assert.Equal(t, notchUUID, *users[1].UUID)
	assert.Equal(t, nameless.UserID(2), users[1].Ref())

	assert.Nil(t, users[2].UUID)

	assert.Equal(t, []string{"false"}, site.LastRequest(t).Query["banned"])
}

func TestResolveUser(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("userInfo", http.StatusOK, testdata.LoadFixture(t, "users/info.json"))

	user, err := newClient(t, site).ResolveUser(context.Background(), nameless.UserUUID(notchUUID))
	require.NoError(t, err)

	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, "Notch", user.Username)
	assert.Equal(t, "Notch (Markus)", user.DisplayName)
	require.NotNil(t, user.UUID)
	assert.Equal(t, notchUUID, *user.UUID)
	assert.Equal(t, int64(3), user.GroupID)
	assert.Equal(t, []string{"Member", "VIP"}, user.Groups)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), user.Registered)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), user.LastOnline)
	assert.Equal(t, int64(12), user.Reputation)
	assert.True(t, user.Validated)
	assert.False(t, user.Banned)
	require.NotNil(t, user.DiscordID)
	assert.Equal(t, snowflake.ID(175928847299117063), *user.DiscordID)
	assert.Equal(t, nameless.UserID(2), user.Ref())

	assert.Equal(t, []string{"069a79f444e94726a5befca90e38aaf5"}, site.LastRequest(t).Query["uuid"])
}

func TestResolveUserMinimalPayload(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("userInfo", http.StatusOK, `{"error":false,"id":9,"username":"jeb_","groups":["Member"]}`)

	user, err := newClient(t, site).ResolveUser(context.Background(), nameless.Username("jeb_"))
	require.NoError(t, err)

	assert.Equal(t, "jeb_", user.DisplayName, "display name falls back to username")
	assert.Equal(t, []string{"Member"}, user.Groups)
	assert.Nil(t, user.UUID)
	assert.Nil(t, user.DiscordID)
	assert.True(t, user.Registered.IsZero())
}

func TestResolveUserNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		fixture string
	}{
		{name: "exists false", status: http.StatusOK, fixture: "users/info_missing.json"},
		{name: "error envelope", status: http.StatusNotFound, fixture: "errors/cannot_find_user.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			site := testutil.NewWebsite(t, testAPIKey)
			site.HandleJSON("userInfo", tt.status, testdata.LoadFixture(t, tt.fixture))

			user, err := newClient(t, site).ResolveUser(context.Background(), nameless.Username("nobody"))
			assert.Nil(t, user)
			assert.True(t, apierror.HasKind(err, apierror.KindUserNotFound), "got %v", err)
		})
	}
}

func TestResolveUserMalformed(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("userInfo", http.StatusOK, `{"error":false,"exists":true,"username":"Notch"}`)

	_, err := newClient(t, site).ResolveUser(context.Background(), nameless.Username("Notch"))

	var malformed *apierror.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "userInfo", malformed.Action)
	assert.Contains(t, malformed.Reason, `"id"`)
}

func TestResolveUserRejectsInvalidRefs(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	client := newClient(t, site)

	for _, ref := range []nameless.UserRef{{}, nameless.UserID(0), nameless.Username(""), nameless.DiscordID(-1)} {
		_, err := client.ResolveUser(context.Background(), ref)
		var formatErr *apierror.InvalidFormatError
		assert.True(t, errors.As(err, &formatErr), "ref %s", ref)
	}
	assert.Empty(t, site.Requests())
}

func TestResolveUsers(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.Handle("userInfo", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		testutil.WriteJSON(t, w, http.StatusOK, fmt.Sprintf(`{"error":false,"exists":true,"id":%s,"username":"user%s"}`, id, id))
	})

	refs := make([]nameless.UserRef, 20)
	for i := range refs {
		refs[i] = nameless.UserID(int64(i + 1))
	}

	users, err := newClient(t, site).ResolveUsers(context.Background(), refs)
	require.NoError(t, err)
	require.Len(t, users, len(refs))
	for i, user := range users {
		assert.Equal(t, int64(i+1), user.ID, "results keep the order of refs")
	}
}

func TestResolveUsersFailsFast(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.Handle("userInfo", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "ghost" {
			testutil.WriteJSON(t, w, http.StatusOK, `{"error":false,"exists":false}`)
			return
		}
		testutil.WriteJSON(t, w, http.StatusOK, `{"error":false,"exists":true,"id":1,"username":"Notch"}`)
	})

	users, err := newClient(t, site).ResolveUsers(context.Background(), []nameless.UserRef{
		nameless.Username("Notch"),
		nameless.Username("ghost"),
	})
	assert.Nil(t, users)
	assert.True(t, apierror.HasKind(err, apierror.KindUserNotFound))
}

func TestNotifications(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("getNotifications", http.StatusOK, testdata.LoadFixture(t, "users/notifications.json"))

	n, err := newClient(t, site).Notifications(context.Background(), nameless.DiscordID(175928847299117063))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Alerts)
	assert.Equal(t, int64(1), n.Messages)

	assert.Equal(t, []string{"175928847299117063"}, site.LastRequest(t).Query["discord_id"])
}

func TestUpdateUsername(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("updateUsername", http.StatusOK, `{"error":false}`)
	client := newClient(t, site)

	require.NoError(t, client.UpdateUsername(context.Background(), nameless.UserID(2), "Notch2"))
	assert.Equal(t, `{"id":2,"new_username":"Notch2"}`, string(site.LastRequest(t).Body))

	require.Error(t, client.UpdateUsername(context.Background(), nameless.UserID(2), ""))
	assert.Equal(t, 1, site.Hits("updateUsername"))
}

func TestVerifyMinecraft(t *testing.T) {
	t.Parallel()

	site := testutil.NewWebsite(t, testAPIKey)
	site.HandleJSON("verifyMinecraft", http.StatusOK, `{"error":true,"errorCode":"core:invalid_code"}`)

	err := newClient(t, site).VerifyMinecraft(context.Background(), nameless.UserUUID(notchUUID), "ABC123")
	assert.True(t, apierror.HasKind(err, apierror.KindInvalidValidationCode))
	assert.Equal(t, `{"uuid":"069a79f444e94726a5befca90e38aaf5","code":"ABC123"}`, string(site.LastRequest(t).Body))
}
