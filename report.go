package nameless

import (
	"context"
	"strings"

	"github.com/namelessmc/go-nameless/apierror"
)

// CreateReport files a report by reporter against reported. Both refs are sent
// with role prefixed names such as reporter_uuid and reported_username.
func (c *Client) CreateReport(ctx context.Context, reporter, reported UserRef, reason string) error {
	if err := reporter.validate(); err != nil {
		return err
	}
	if err := reported.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return &apierror.InvalidFormatError{What: "report reason", Value: reason, Reason: "must not be empty"}
	}

	_, err := c.Call(ctx, ActionCreateReport,
		reporter.prefixedParam("reporter"),
		reported.prefixedParam("reported"),
		String("content", reason),
	)
	return err
}
