package nameless

import (
	"cmp"
	"context"
	"net/url"
	"slices"

	"github.com/bwmarrin/snowflake"

	"github.com/namelessmc/go-nameless/apierror"
)

// DiscordBotSettings is everything the website needs to reach its Discord bot.
type DiscordBotSettings struct {
	URL         *url.URL
	GuildID     snowflake.ID
	BotUsername string
	BotUserID   snowflake.ID
}

// DiscordRole is a role of the linked Discord guild.
type DiscordRole struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

type discordName struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

// SetDiscordID links user to a Discord account.
func (c *Client) SetDiscordID(ctx context.Context, user UserRef, discordID snowflake.ID) error {
	if err := user.validate(); err != nil {
		return err
	}
	if err := validSnowflake("discord id", discordID); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionSetDiscordID, user.Param(), Int("discord_id", discordID.Int64()))
	return err
}

// VerifyDiscord completes linking with the token the website showed the user.
func (c *Client) VerifyDiscord(ctx context.Context, token string, discordUser DiscordUser) error {
	if token == "" {
		return &apierror.InvalidFormatError{What: "verification token", Value: token, Reason: "must not be empty"}
	}
	if err := validSnowflake("discord id", discordUser.ID); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionVerifyDiscord,
		String("token", token),
		Int("discord_id", discordUser.ID.Int64()),
		String("discord_username", discordUser.Username),
	)
	return err
}

// SetDiscordBotURL tells the website where its Discord bot listens.
func (c *Client) SetDiscordBotURL(ctx context.Context, botURL *url.URL) error {
	if err := validBotURL(botURL); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionSetDiscordBotURL, String("url", botURL.String()))
	return err
}

// SetDiscordGuildID sets the Discord guild linked to the website.
func (c *Client) SetDiscordGuildID(ctx context.Context, guildID snowflake.ID) error {
	if err := validSnowflake("guild id", guildID); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionSetDiscordGuildID, Int("guild_id", guildID.Int64()))
	return err
}

// SetDiscordBotUser sets the Discord account the bot runs as.
func (c *Client) SetDiscordBotUser(ctx context.Context, username string, userID snowflake.ID) error {
	if err := validSnowflake("bot user id", userID); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionSetDiscordBotUser,
		String("username", username),
		Int("user_id", userID.Int64()),
	)
	return err
}

// UpdateDiscordBotSettings sets every bot setting in one call.
func (c *Client) UpdateDiscordBotSettings(ctx context.Context, settings DiscordBotSettings) error {
	if err := validBotURL(settings.URL); err != nil {
		return err
	}
	if err := validSnowflake("guild id", settings.GuildID); err != nil {
		return err
	}
	if err := validSnowflake("bot user id", settings.BotUserID); err != nil {
		return err
	}

	_, err := c.Call(ctx, ActionUpdateDiscordBotSettings,
		String("url", settings.URL.String()),
		Int("guild_id", settings.GuildID.Int64()),
		String("bot_username", settings.BotUsername),
		Int("bot_user_id", settings.BotUserID.Int64()),
	)
	return err
}

// SubmitDiscordRoleList replaces the website's copy of the guild's roles.
// Roles are sent sorted by id.
func (c *Client) SubmitDiscordRoleList(ctx context.Context, roles []DiscordRole) error {
	sorted := slices.Clone(roles)
	slices.SortFunc(sorted, func(a, b DiscordRole) int { return cmp.Compare(a.ID, b.ID) })

	param, err := MarshalParam("roles", sorted)
	if err != nil {
		return err
	}

	_, err = c.Call(ctx, ActionSubmitDiscordRoleList, param)
	return err
}

// UpdateDiscordUsernames pushes the current Discord usernames of linked users,
// keyed by Discord id. Users are sent sorted by id.
func (c *Client) UpdateDiscordUsernames(ctx context.Context, usernames map[snowflake.ID]string) error {
	users := make([]discordName, 0, len(usernames))
	for id, name := range usernames {
		users = append(users, discordName{ID: id, Name: name})
	}
	slices.SortFunc(users, func(a, b discordName) int { return cmp.Compare(a.ID, b.ID) })

	param, err := MarshalParam("users", users)
	if err != nil {
		return err
	}

	_, err = c.Call(ctx, ActionUpdateDiscordUsernames, param)
	return err
}

func validSnowflake(what string, id snowflake.ID) error {
	if id <= 0 {
		return &apierror.InvalidFormatError{What: what, Value: id.String(), Reason: "must be a positive snowflake"}
	}
	return nil
}

func validBotURL(u *url.URL) error {
	if u == nil {
		return &apierror.InvalidFormatError{What: "bot url", Value: "", Reason: "must not be empty"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &apierror.InvalidFormatError{What: "bot url", Value: u.String(), Reason: "must use http or https"}
	}
	return nil
}
