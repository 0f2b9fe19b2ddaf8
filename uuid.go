package nameless

import (
	"strings"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/namelessmc/go-nameless/apierror"
)

// DashUUID converts the 32 hex character form the website uses into the
// 8-4-4-4-12 dashed form. Letter case is kept.
func DashUUID(s string) (string, error) {
	if len(s) != 32 {
		return "", &apierror.InvalidFormatError{What: "uuid", Value: s, Reason: "expected 32 hex characters"}
	}
	if !isHex(s) {
		return "", &apierror.InvalidFormatError{What: "uuid", Value: s, Reason: "contains non-hex characters"}
	}
	return s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32], nil
}

// UndashUUID converts a dashed 8-4-4-4-12 UUID into the 32 hex character form the
// website expects. Letter case is kept.
func UndashUUID(s string) (string, error) {
	if len(s) != 36 {
		return "", &apierror.InvalidFormatError{What: "uuid", Value: s, Reason: "expected 36 characters in 8-4-4-4-12 form"}
	}
	for _, i := range [...]int{8, 13, 18, 23} {
		if s[i] != '-' {
			return "", &apierror.InvalidFormatError{What: "uuid", Value: s, Reason: "dashes must separate 8-4-4-4-12 groups"}
		}
	}
	undashed := strings.ReplaceAll(s, "-", "")
	if len(undashed) != 32 || !isHex(undashed) {
		return "", &apierror.InvalidFormatError{What: "uuid", Value: s, Reason: "contains non-hex characters"}
	}
	return undashed, nil
}

// ParseWebsiteUUID parses a UUID sent by the website, dashed or not.
func ParseWebsiteUUID(s string) (openapi_types.UUID, error) {
	dashed := s
	if len(s) == 32 {
		var err error
		if dashed, err = DashUUID(s); err != nil {
			return openapi_types.UUID{}, err
		}
	} else if _, err := UndashUUID(s); err != nil {
		return openapi_types.UUID{}, err
	}

	id, err := uuid.Parse(dashed)
	if err != nil {
		return openapi_types.UUID{}, &apierror.InvalidFormatError{What: "uuid", Value: s, Reason: err.Error()}
	}
	return id, nil
}

// WebsiteUUID renders id in the undashed lower case form the website stores.
func WebsiteUUID(id openapi_types.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}

func isHex(s string) bool {
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
