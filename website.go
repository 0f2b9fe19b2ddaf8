package nameless

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/envelope"
)

// Website describes the NamelessMC installation behind the endpoint.
type Website struct {
	Version string
	Modules []string
	// Update is nil when the website reports no pending update.
	Update *Update
}

// Update is a NamelessMC release the website could upgrade to.
type Update struct {
	Version string
	Urgent  bool
}

// CheckConnection verifies that the endpoint answers like a NamelessMC website.
func (c *Client) CheckConnection(ctx context.Context) error {
	payload, err := c.Call(ctx, ActionInfo)
	if err != nil {
		return err
	}

	obj, err := payload.Object()
	if err != nil {
		return malformed(ActionInfo, err)
	}
	if !obj.Has("nameless_version") {
		return &apierror.MalformedResponseError{Action: ActionInfo.Route(), Reason: `missing field "nameless_version"`}
	}
	return nil
}

// Website returns the version, enabled modules and pending update of the website.
func (c *Client) Website(ctx context.Context) (*Website, error) {
	payload, err := c.Call(ctx, ActionInfo)
	if err != nil {
		return nil, err
	}

	site, err := parseWebsite(payload)
	if err != nil {
		return nil, malformed(ActionInfo, err)
	}
	return site, nil
}

func parseWebsite(payload envelope.Payload) (*Website, error) {
	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}

	site := &Website{}
	if site.Version, err = obj.String("nameless_version"); err != nil {
		return nil, err
	}
	if site.Modules, err = obj.Strings("modules"); err != nil {
		return nil, err
	}

	if !obj.Has("version_update") {
		return site, nil
	}
	update, err := obj.Object("version_update")
	if err != nil {
		return nil, err
	}
	available, err := update.Bool("update")
	if err != nil {
		return nil, err
	}
	if !available {
		return site, nil
	}

	site.Update = &Update{}
	if site.Update.Version, err = update.String("version"); err != nil {
		return nil, err
	}
	if site.Update.Urgent, err = update.Bool("urgent"); err != nil {
		return nil, err
	}
	return site, nil
}

// malformed attaches the action to a payload accessor error.
func malformed(action Action, err error) error {
	var malformedErr *apierror.MalformedResponseError
	if errors.As(err, &malformedErr) && malformedErr.Action == "" {
		scoped := *malformedErr
		scoped.Action = action.Route()
		return &scoped
	}
	return err
}

// SubmitServerInfo sends a status snapshot of a game server, e.g. online players
// and their groups, as a JSON object. Member order is kept.
func (c *Client) SubmitServerInfo(ctx context.Context, info json.RawMessage) error {
	params, err := ObjectParams(info)
	if err != nil {
		return err
	}

	_, err = c.Call(ctx, ActionServerInfo, params...)
	return err
}
