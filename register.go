package nameless

import (
	"context"
	"net/mail"

	"github.com/bwmarrin/snowflake"
	"github.com/cockroachdb/errors"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/namelessmc/go-nameless/apierror"
)

// ErrInvalidRegistration marks registration failures caused by the submitted
// details rather than the website. The marked error is still an
// *apierror.ApplicationError.
var ErrInvalidRegistration = errors.New("invalid registration")

// registrationKinds are the error kinds that mean "fix the input and try again".
var registrationKinds = []apierror.ErrorKind{
	apierror.KindInvalidUsername,
	apierror.KindUsernameAlreadyExists,
	apierror.KindInvalidEmail,
	apierror.KindEmailAlreadyExists,
	apierror.KindInvalidUUID,
	apierror.KindUUIDAlreadyExists,
}

// RegisterRequest describes a new website account.
type RegisterRequest struct {
	Username string
	Email    string
	// UUID links a Minecraft account (optional).
	UUID *openapi_types.UUID
	// Discord links a Discord account (optional).
	Discord *DiscordUser
}

// DiscordUser is a Discord account by id and username.
type DiscordUser struct {
	ID       snowflake.ID
	Username string
}

// RegisterResult is the outcome of a registration.
type RegisterResult struct {
	// Link is the address where the user completes registration by choosing a
	// password. It is empty when the website sends a verification email instead.
	Link string
}

// EmailSent reports whether the website emailed the completion link.
func (r *RegisterResult) EmailSent() bool { return r.Link == "" }

// RegisterUser creates a website account.
//
// Errors caused by the submitted details match ErrInvalidRegistration:
//
//	_, err := client.RegisterUser(ctx, req)
//	if errors.Is(err, nameless.ErrInvalidRegistration) {
//	    // ask the player for other details
//	}
func (c *Client) RegisterUser(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if req.Username == "" {
		return nil, &apierror.InvalidFormatError{What: "username", Value: req.Username, Reason: "must not be empty"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, &apierror.InvalidFormatError{What: "email", Value: req.Email, Reason: "not an email address"}
	}

	params := []Param{
		String("username", req.Username),
		String("email", req.Email),
	}
	if req.UUID != nil {
		params = append(params, String("uuid", WebsiteUUID(*req.UUID)))
	}
	if req.Discord != nil {
		params = append(params,
			Int("discord_id", req.Discord.ID.Int64()),
			String("discord_username", req.Discord.Username),
		)
	}

	payload, err := c.Call(ctx, ActionRegister, params...)
	if err != nil {
		if apierror.HasKind(err, registrationKinds...) {
			return nil, errors.Mark(err, ErrInvalidRegistration)
		}
		return nil, err
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, malformed(ActionRegister, err)
	}

	result := &RegisterResult{}
	if obj.Has("link") {
		if result.Link, err = obj.String("link"); err != nil {
			return nil, malformed(ActionRegister, err)
		}
	}
	return result, nil
}
