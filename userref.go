package nameless

import (
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/namelessmc/go-nameless/apierror"
)

// RefKind tells which identity a UserRef carries.
type RefKind int

const (
	RefNone RefKind = iota
	RefID
	RefUsername
	RefUUID
	RefDiscordID
)

func (k RefKind) String() string {
	switch k {
	case RefID:
		return "id"
	case RefUsername:
		return "username"
	case RefUUID:
		return "uuid"
	case RefDiscordID:
		return "discord_id"
	default:
		return "none"
	}
}

// UserRef addresses a website user by one known identity. Building a ref does no
// I/O; call Client.ResolveUser to fetch the account behind it.
type UserRef struct {
	kind    RefKind
	id      int64
	name    string
	uuid    openapi_types.UUID
	discord snowflake.ID
}

// UserID refers to a user by website account id.
func UserID(id int64) UserRef { return UserRef{kind: RefID, id: id} }

// Username refers to a user by website username.
func Username(name string) UserRef { return UserRef{kind: RefUsername, name: name} }

// UserUUID refers to a user by Minecraft UUID.
func UserUUID(id openapi_types.UUID) UserRef { return UserRef{kind: RefUUID, uuid: id} }

// DiscordID refers to a user by linked Discord account.
func DiscordID(id snowflake.ID) UserRef { return UserRef{kind: RefDiscordID, discord: id} }

// ParseUserUUID builds a UUID ref from either UUID form.
func ParseUserUUID(s string) (UserRef, error) {
	id, err := ParseWebsiteUUID(s)
	if err != nil {
		return UserRef{}, err
	}
	return UserUUID(id), nil
}

// ParseDiscordID builds a Discord ref from a decimal snowflake.
func ParseDiscordID(s string) (UserRef, error) {
	id, err := parseSnowflake(s)
	if err != nil {
		return UserRef{}, err
	}
	return DiscordID(id), nil
}

// Kind returns the identity carried by r.
func (r UserRef) Kind() RefKind { return r.kind }

// IsZero reports whether r carries no identity.
func (r UserRef) IsZero() bool { return r.kind == RefNone }

// Value returns the identity in the form the website expects.
func (r UserRef) Value() string {
	switch r.kind {
	case RefID:
		return strconv.FormatInt(r.id, 10)
	case RefUsername:
		return r.name
	case RefUUID:
		return WebsiteUUID(r.uuid)
	case RefDiscordID:
		return r.discord.String()
	default:
		return ""
	}
}

// Param returns the filter parameter selecting the user, e.g. id=5 or uuid=<hex>.
func (r UserRef) Param() Param { return r.param(r.kind.String()) }

// prefixedParam names the filter after role, e.g. reporter_uuid.
func (r UserRef) prefixedParam(role string) Param { return r.param(role + "_" + r.kind.String()) }

func (r UserRef) param(name string) Param {
	switch r.kind {
	case RefID:
		return Int(name, r.id)
	case RefDiscordID:
		return Int(name, r.discord.Int64())
	default:
		return String(name, r.Value())
	}
}

func (r UserRef) String() string {
	if r.IsZero() {
		return "user(none)"
	}
	return "user(" + r.kind.String() + "=" + r.Value() + ")"
}

func (r UserRef) validate() error {
	switch r.kind {
	case RefNone:
		return &apierror.InvalidFormatError{What: "user reference", Value: "", Reason: "no identity set"}
	case RefUsername:
		if r.name == "" {
			return &apierror.InvalidFormatError{What: "username", Value: "", Reason: "must not be empty"}
		}
	case RefID:
		if r.id <= 0 {
			return &apierror.InvalidFormatError{What: "user id", Value: strconv.FormatInt(r.id, 10), Reason: "must be positive"}
		}
	case RefDiscordID:
		if r.discord <= 0 {
			return &apierror.InvalidFormatError{What: "discord id", Value: r.discord.String(), Reason: "must be positive"}
		}
	case RefUUID:
	}
	return nil
}

// discordEpoch is the first millisecond of 2015, the epoch of Discord snowflakes.
const discordEpoch = 1420070400000

// DiscordCreatedAt returns when the Discord entity behind id was created.
// snowflake.ID.Time assumes the package-wide epoch, which is Twitter's by default.
func DiscordCreatedAt(id snowflake.ID) time.Time {
	return time.UnixMilli((id.Int64() >> 22) + discordEpoch).UTC()
}

func parseSnowflake(s string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(s)
	if err != nil {
		return 0, &apierror.InvalidFormatError{What: "discord id", Value: s, Reason: "expected a decimal snowflake"}
	}
	if id <= 0 {
		return 0, &apierror.InvalidFormatError{What: "discord id", Value: s, Reason: "must be positive"}
	}
	return id, nil
}
