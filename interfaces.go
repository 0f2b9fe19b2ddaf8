package nameless

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/bwmarrin/snowflake"

	"github.com/namelessmc/go-nameless/envelope"
)

// API lists the operations of Client. Plugins and bots can depend on it and
// substitute a mock in their tests.
//
// Example usage with testify/mock:
//
//	type MockWebsite struct {
//	    mock.Mock
//	}
//
//	func (m *MockWebsite) ResolveUser(ctx context.Context, ref nameless.UserRef) (*nameless.User, error) {
//	    args := m.Called(ctx, ref)
//	    return args.Get(0).(*nameless.User), args.Error(1)
//	}
type API interface {
	// Call performs a raw action.
	Call(ctx context.Context, action Action, params ...Param) (envelope.Payload, error)

	// Website

	CheckConnection(ctx context.Context) error
	Website(ctx context.Context) (*Website, error)
	SubmitServerInfo(ctx context.Context, info json.RawMessage) error
	Announcements(ctx context.Context) ([]Announcement, error)
	AnnouncementsFor(ctx context.Context, user UserRef) ([]Announcement, error)

	// Users

	ListUsers(ctx context.Context, filters ...Param) ([]UserSummary, error)
	ResolveUser(ctx context.Context, ref UserRef) (*User, error)
	ResolveUsers(ctx context.Context, refs []UserRef) ([]*User, error)
	Notifications(ctx context.Context, user UserRef) (*Notifications, error)
	UpdateUsername(ctx context.Context, user UserRef, newUsername string) error
	VerifyMinecraft(ctx context.Context, user UserRef, code string) error
	RegisterUser(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	CreateReport(ctx context.Context, reporter, reported UserRef, reason string) error

	// Groups

	Groups(ctx context.Context, filter GroupFilter) ([]Group, error)
	AddGroups(ctx context.Context, user UserRef, groupIDs ...int64) error
	RemoveGroups(ctx context.Context, user UserRef, groupIDs ...int64) error

	// Discord integration

	SetDiscordID(ctx context.Context, user UserRef, discordID snowflake.ID) error
	VerifyDiscord(ctx context.Context, token string, discordUser DiscordUser) error
	SetDiscordBotURL(ctx context.Context, botURL *url.URL) error
	SetDiscordGuildID(ctx context.Context, guildID snowflake.ID) error
	SetDiscordBotUser(ctx context.Context, username string, userID snowflake.ID) error
	UpdateDiscordBotSettings(ctx context.Context, settings DiscordBotSettings) error
	SubmitDiscordRoleList(ctx context.Context, roles []DiscordRole) error
	UpdateDiscordUsernames(ctx context.Context, usernames map[snowflake.ID]string) error
}
