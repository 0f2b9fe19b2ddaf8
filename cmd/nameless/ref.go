package main

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/namelessmc/go-nameless"
)

// parseRef reads a user reference given on the command line:
//
//	id:5  uuid:<uuid>  discord:<snowflake>  username:<name>  <name>
//
// A bare argument that is a UUID in either form is taken as one.
func parseRef(arg string) (nameless.UserRef, error) {
	kind, value, found := strings.Cut(arg, ":")
	if !found {
		if ref, err := nameless.ParseUserUUID(arg); err == nil {
			return ref, nil
		}
		return nameless.Username(arg), nil
	}

	switch kind {
	case "id":
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return nameless.UserRef{}, errors.Newf("invalid user id %q", value)
		}
		return nameless.UserID(id), nil
	case "uuid":
		return nameless.ParseUserUUID(value)
	case "discord":
		return nameless.ParseDiscordID(value)
	case "username", "name":
		return nameless.Username(value), nil
	default:
		return nameless.UserRef{}, errors.Newf("unknown reference kind %q, expected id, uuid, discord or username", kind)
	}
}

func parseRefs(args []string) ([]nameless.UserRef, error) {
	refs := make([]nameless.UserRef, 0, len(args))
	for _, arg := range args {
		ref, err := parseRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
