package nameless

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"golang.org/x/sync/errgroup"

	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/envelope"
)

// resolveConcurrency bounds parallel lookups in ResolveUsers.
const resolveConcurrency = 8

// UserSummary is a row of the user list.
type UserSummary struct {
	ID       int64
	Username string
	// UUID is nil for accounts without a linked Minecraft account.
	UUID *openapi_types.UUID
}

// Ref returns a reference to the summarised user.
func (s UserSummary) Ref() UserRef { return UserID(s.ID) }

// User is a fully resolved website account.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	UUID        *openapi_types.UUID
	GroupID     int64
	Groups      []string
	Registered  time.Time
	LastOnline  time.Time
	Reputation  int64
	Validated   bool
	Banned      bool
	DiscordID   *snowflake.ID
}

// Ref returns a reference to the user by account id.
func (u *User) Ref() UserRef { return UserID(u.ID) }

// Notifications holds the unread counters of a user.
type Notifications struct {
	Alerts   int64
	Messages int64
}

// ListUsers returns every registered user. Filters are passed through as query
// parameters, e.g. nameless.Bool("banned", false).
func (c *Client) ListUsers(ctx context.Context, filters ...Param) ([]UserSummary, error) {
	payload, err := c.Call(ctx, ActionListUsers, filters...)
	if err != nil {
		return nil, err
	}

	users, err := parseUserList(payload)
	if err != nil {
		return nil, malformed(ActionListUsers, err)
	}
	return users, nil
}

func parseUserList(payload envelope.Payload) ([]UserSummary, error) {
	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	items, err := obj.Array("users")
	if err != nil {
		return nil, err
	}

	users := make([]UserSummary, 0, len(items))
	for _, item := range items {
		row, err := item.Object()
		if err != nil {
			return nil, err
		}

		var u UserSummary
		if u.ID, err = row.Int("id"); err != nil {
			return nil, err
		}
		if u.Username, err = row.String("username"); err != nil {
			return nil, err
		}
		if u.UUID, err = optionalUUID(row, "uuid"); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// ResolveUser fetches the account behind ref. A missing account is reported as an
// *apierror.ApplicationError of kind KindUserNotFound.
func (c *Client) ResolveUser(ctx context.Context, ref UserRef) (*User, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}

	payload, err := c.Call(ctx, ActionUserInfo, ref.Param())
	if err != nil {
		return nil, err
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, malformed(ActionUserInfo, err)
	}

	if obj.Has("exists") {
		exists, err := obj.Bool("exists")
		if err != nil {
			return nil, malformed(ActionUserInfo, err)
		}
		if !exists {
			return nil, apierror.NewApplicationError(ActionUserInfo.Route(), "nameless:cannot_find_user", ref.String()+" does not exist", nil)
		}
	}

	user, err := parseUser(obj)
	if err != nil {
		return nil, malformed(ActionUserInfo, err)
	}
	return user, nil
}

// ResolveUsers resolves refs concurrently. Results keep the order of refs. The
// first failure cancels the remaining lookups and is returned.
func (c *Client) ResolveUsers(ctx context.Context, refs []UserRef) ([]*User, error) {
	users := make([]*User, len(refs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(resolveConcurrency)

	for i, ref := range refs {
		group.Go(func() error {
			user, err := c.ResolveUser(ctx, ref)
			if err != nil {
				return err
			}
			users[i] = user
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // typed errors are returned unchanged
	}
	return users, nil
}

func parseUser(obj envelope.Object) (*User, error) {
	u := &User{}
	var err error

	if u.ID, err = obj.Int("id"); err != nil {
		return nil, err
	}
	if u.Username, err = obj.String("username"); err != nil {
		return nil, err
	}

	u.DisplayName = u.Username
	if obj.Has("displayname") {
		if u.DisplayName, err = obj.String("displayname"); err != nil {
			return nil, err
		}
	}
	if u.UUID, err = optionalUUID(obj, "uuid"); err != nil {
		return nil, err
	}
	if obj.Has("group_id") {
		if u.GroupID, err = obj.Int("group_id"); err != nil {
			return nil, err
		}
	}
	if obj.Has("groups") {
		if u.Groups, err = groupNames(obj); err != nil {
			return nil, err
		}
	}
	if u.Registered, err = optionalUnix(obj, "registered"); err != nil {
		return nil, err
	}
	if u.LastOnline, err = optionalUnix(obj, "last_online"); err != nil {
		return nil, err
	}
	if obj.Has("reputation") {
		if u.Reputation, err = obj.Int("reputation"); err != nil {
			return nil, err
		}
	}
	if obj.Has("validated") {
		if u.Validated, err = obj.Bool("validated"); err != nil {
			return nil, err
		}
	}
	if obj.Has("banned") {
		if u.Banned, err = obj.Bool("banned"); err != nil {
			return nil, err
		}
	}
	if obj.Has("discord_id") {
		raw, err := obj.Int("discord_id")
		if err != nil {
			return nil, err
		}
		id := snowflake.ID(raw)
		u.DiscordID = &id
	}

	return u, nil
}

// groupNames reads "groups" as either a list of names or a list of group objects.
func groupNames(obj envelope.Object) ([]string, error) {
	if names, err := obj.Strings("groups"); err == nil {
		return names, nil
	}

	items, err := obj.Array("groups")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		group, err := item.Object()
		if err != nil {
			return nil, err
		}
		name, err := group.String("name")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func optionalUUID(obj envelope.Object, key string) (*openapi_types.UUID, error) {
	if !obj.Has(key) {
		return nil, nil //nolint:nilnil // absent is not an error
	}
	s, err := obj.String(key)
	if err != nil || s == "" || s == "none" {
		return nil, err
	}
	id, err := ParseWebsiteUUID(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalUnix(obj envelope.Object, key string) (time.Time, error) {
	if !obj.Has(key) {
		return time.Time{}, nil
	}
	secs, err := obj.Int(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

// Notifications returns the unread alert and message counts of user.
func (c *Client) Notifications(ctx context.Context, user UserRef) (*Notifications, error) {
	if err := user.validate(); err != nil {
		return nil, err
	}

	payload, err := c.Call(ctx, ActionGetNotifications, user.Param())
	if err != nil {
		return nil, err
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, malformed(ActionGetNotifications, err)
	}

	n := &Notifications{}
	if n.Alerts, err = obj.Int("alerts"); err != nil {
		return nil, malformed(ActionGetNotifications, err)
	}
	if n.Messages, err = obj.Int("messages"); err != nil {
		return nil, malformed(ActionGetNotifications, err)
	}
	return n, nil
}

// UpdateUsername renames user on the website. The website does not check whether
// the new name is taken by a Minecraft account.
func (c *Client) UpdateUsername(ctx context.Context, user UserRef, newUsername string) error {
	if err := user.validate(); err != nil {
		return err
	}
	if newUsername == "" {
		return &apierror.InvalidFormatError{What: "username", Value: newUsername, Reason: "must not be empty"}
	}

	_, err := c.Call(ctx, ActionUpdateUsername, user.Param(), String("new_username", newUsername))
	return err
}

// VerifyMinecraft completes account validation with the code shown to the player
// on the website.
func (c *Client) VerifyMinecraft(ctx context.Context, user UserRef, code string) error {
	if err := user.validate(); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionVerifyMinecraft, user.Param(), String("code", code))
	return err
}
