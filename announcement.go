package nameless

import (
	"context"

	"github.com/namelessmc/go-nameless/envelope"
)

// Announcement is a site announcement.
type Announcement struct {
	ID      int64
	Header  string
	Content string
	// Display lists the pages the announcement is shown on.
	Display []string
	// Permissions lists the groups allowed to see it.
	Permissions []string
}

// Announcements returns every current announcement.
func (c *Client) Announcements(ctx context.Context) ([]Announcement, error) {
	return c.announcements(ctx)
}

// AnnouncementsFor returns the announcements visible to user.
func (c *Client) AnnouncementsFor(ctx context.Context, user UserRef) ([]Announcement, error) {
	if err := user.validate(); err != nil {
		return nil, err
	}
	return c.announcements(ctx, user.Param())
}

func (c *Client) announcements(ctx context.Context, params ...Param) ([]Announcement, error) {
	payload, err := c.Call(ctx, ActionGetAnnouncements, params...)
	if err != nil {
		return nil, err
	}

	list, err := parseAnnouncements(payload)
	if err != nil {
		return nil, malformed(ActionGetAnnouncements, err)
	}
	return list, nil
}

// parseAnnouncements accepts both a bare array and an object with an
// "announcements" array; websites differ.
func parseAnnouncements(payload envelope.Payload) ([]Announcement, error) {
	var items []envelope.Payload
	var err error
	if payload.IsArray() {
		items, err = payload.Elements()
	} else {
		var obj envelope.Object
		if obj, err = payload.Object(); err == nil {
			items, err = obj.Array("announcements")
		}
	}
	if err != nil {
		return nil, err
	}

	list := make([]Announcement, 0, len(items))
	for _, item := range items {
		obj, err := item.Object()
		if err != nil {
			return nil, err
		}

		var a Announcement
		if a.Content, err = obj.String("content"); err != nil {
			return nil, err
		}
		if a.Display, err = obj.Strings("display"); err != nil {
			return nil, err
		}
		if a.Permissions, err = obj.Strings("permissions"); err != nil {
			return nil, err
		}
		if obj.Has("id") {
			if a.ID, err = obj.Int("id"); err != nil {
				return nil, err
			}
		}
		if obj.Has("header") {
			if a.Header, err = obj.String("header"); err != nil {
				return nil, err
			}
		}
		list = append(list, a)
	}
	return list, nil
}
