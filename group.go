package nameless

import (
	"context"

	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/envelope"
)

// Group is a website user group.
type Group struct {
	ID    int64
	Name  string
	Staff bool
	Order int64
}

// GroupFilter selects the groups returned by Client.Groups.
type GroupFilter struct {
	params []Param
}

// AllGroups selects every group.
func AllGroups() GroupFilter { return GroupFilter{} }

// GroupByID selects the group with the given id.
func GroupByID(id int64) GroupFilter { return GroupFilter{params: []Param{Int("id", id)}} }

// GroupByName selects the group with the given name.
func GroupByName(name string) GroupFilter {
	return GroupFilter{params: []Param{String("name", name)}}
}

// Groups returns the groups matching filter.
func (c *Client) Groups(ctx context.Context, filter GroupFilter) ([]Group, error) {
	payload, err := c.Call(ctx, ActionGroupInfo, filter.params...)
	if err != nil {
		return nil, err
	}

	groups, err := parseGroups(payload)
	if err != nil {
		return nil, malformed(ActionGroupInfo, err)
	}
	return groups, nil
}

func parseGroups(payload envelope.Payload) ([]Group, error) {
	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	items, err := obj.Array("groups")
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(items))
	for _, item := range items {
		row, err := item.Object()
		if err != nil {
			return nil, err
		}

		var g Group
		if g.ID, err = row.Int("id"); err != nil {
			return nil, err
		}
		if g.Name, err = row.String("name"); err != nil {
			return nil, err
		}
		if row.Has("staff") {
			if g.Staff, err = row.Bool("staff"); err != nil {
				return nil, err
			}
		}
		if row.Has("order") {
			if g.Order, err = row.Int("order"); err != nil {
				return nil, err
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// AddGroups adds user to the groups with the given ids.
func (c *Client) AddGroups(ctx context.Context, user UserRef, groupIDs ...int64) error {
	return c.changeGroups(ctx, ActionAddGroups, user, groupIDs)
}

// RemoveGroups removes user from the groups with the given ids.
func (c *Client) RemoveGroups(ctx context.Context, user UserRef, groupIDs ...int64) error {
	return c.changeGroups(ctx, ActionRemoveGroups, user, groupIDs)
}

func (c *Client) changeGroups(ctx context.Context, action Action, user UserRef, groupIDs []int64) error {
	if err := user.validate(); err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return &apierror.InvalidFormatError{What: "group list", Value: "", Reason: "at least one group id is required"}
	}

	groups, err := MarshalParam("groups", groupIDs)
	if err != nil {
		return err
	}

	_, err = c.Call(ctx, action, user.Param(), groups)
	return err
}
