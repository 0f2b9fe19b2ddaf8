package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/namelessmc/go-nameless"
	"github.com/namelessmc/go-nameless/apierror"
)

var (
	announcementsUser string
	usersBanned       bool
	groupID           int64
	groupName         string
	registerEmail     string
	registerUUID      string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the configured website answers API calls",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := client.CheckConnection(cmd.Context()); err != nil {
			return describe(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Connection OK")
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the NamelessMC version and enabled modules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		site, err := client.Website(cmd.Context())
		if err != nil {
			return describe(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Version: %s\n", site.Version)
		fmt.Fprintf(out, "Modules: %s\n", strings.Join(site.Modules, ", "))
		if site.Update != nil {
			urgent := ""
			if site.Update.Urgent {
				urgent = " (urgent)"
			}
			fmt.Fprintf(out, "Update available: %s%s\n", site.Update.Version, urgent)
		}
		return nil
	},
}

var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "List current announcements",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			list []nameless.Announcement
			err  error
		)
		if announcementsUser != "" {
			ref, refErr := parseRef(announcementsUser)
			if refErr != nil {
				return refErr
			}
			list, err = client.AnnouncementsFor(cmd.Context(), ref)
		} else {
			list, err = client.Announcements(cmd.Context())
		}
		if err != nil {
			return describe(err)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No announcements.")
			return nil
		}
		for _, a := range list {
			if a.Header != "" {
				fmt.Fprintf(out, "• %s\n  %s\n", a.Header, a.Content)
			} else {
				fmt.Fprintf(out, "• %s\n", a.Content)
			}
			fmt.Fprintf(out, "  Pages: %s\n", strings.Join(a.Display, ", "))
		}
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var filters []nameless.Param
		if cmd.Flags().Changed("banned") {
			filters = append(filters, nameless.Bool("banned", usersBanned))
		}

		users, err := client.ListUsers(cmd.Context(), filters...)
		if err != nil {
			return describe(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d users:\n", len(users))
		for _, u := range users {
			if u.UUID != nil {
				fmt.Fprintf(out, "%6d  %-16s %s\n", u.ID, u.Username, u.UUID)
			} else {
				fmt.Fprintf(out, "%6d  %s\n", u.ID, u.Username)
			}
		}
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user <ref>...",
	Short: "Show one or more users",
	Long: `Show one or more users. A reference is a username or one of
id:<n>, uuid:<uuid>, discord:<snowflake>, username:<name>.
Several users are looked up concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := parseRefs(args)
		if err != nil {
			return err
		}

		users, err := client.ResolveUsers(cmd.Context(), refs)
		if err != nil {
			return describe(err)
		}

		out := cmd.OutOrStdout()
		for _, u := range users {
			fmt.Fprintf(out, "%s (#%d)\n", u.DisplayName, u.ID)
			fmt.Fprintf(out, "  Username:   %s\n", u.Username)
			if u.UUID != nil {
				fmt.Fprintf(out, "  UUID:       %s\n", u.UUID)
			}
			if len(u.Groups) > 0 {
				fmt.Fprintf(out, "  Groups:     %s\n", strings.Join(u.Groups, ", "))
			}
			if !u.Registered.IsZero() {
				fmt.Fprintf(out, "  Registered: %s\n", u.Registered.Format("2006-01-02"))
			}
			if u.DiscordID != nil {
				fmt.Fprintf(out, "  Discord:    %s (since %s)\n", u.DiscordID, nameless.DiscordCreatedAt(*u.DiscordID).Format("2006-01-02"))
			}
			if u.Banned {
				fmt.Fprintln(out, "  [BANNED]")
			}
		}
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter := nameless.AllGroups()
		switch {
		case cmd.Flags().Changed("id"):
			filter = nameless.GroupByID(groupID)
		case groupName != "":
			filter = nameless.GroupByName(groupName)
		}

		groups, err := client.Groups(cmd.Context(), filter)
		if err != nil {
			return describe(err)
		}

		out := cmd.OutOrStdout()
		for _, g := range groups {
			staff := ""
			if g.Staff {
				staff = " [STAFF]"
			}
			fmt.Fprintf(out, "%4d  %s%s\n", g.ID, g.Name, staff)
		}
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications <ref>",
	Short: "Show unread alerts and messages of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0])
		if err != nil {
			return err
		}

		n, err := client.Notifications(cmd.Context(), ref)
		if err != nil {
			return describe(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Alerts: %d\nMessages: %d\n", n.Alerts, n.Messages)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a website account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := nameless.RegisterRequest{Username: args[0], Email: registerEmail}
		if registerUUID != "" {
			id, err := nameless.ParseWebsiteUUID(registerUUID)
			if err != nil {
				return err
			}
			req.UUID = &id
		}

		result, err := client.RegisterUser(cmd.Context(), req)
		if err != nil {
			return describe(err)
		}

		if result.EmailSent() {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered. The website emailed a link to complete the registration.")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Registered. Complete the registration at %s\n", result.Link)
		}
		return nil
	},
}

func init() {
	announcementsCmd.Flags().StringVarP(&announcementsUser, "user", "u", "", "only announcements visible to this user")
	usersCmd.Flags().BoolVar(&usersBanned, "banned", false, "filter by ban status")
	groupsCmd.Flags().Int64Var(&groupID, "id", 0, "only the group with this id")
	groupsCmd.Flags().StringVar(&groupName, "name", "", "only the group with this name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email address of the new account")
	registerCmd.Flags().StringVar(&registerUUID, "uuid", "", "Minecraft UUID to link")
	_ = registerCmd.MarkFlagRequired("email")
}

// describe turns API errors into messages meant for a terminal.
func describe(err error) error {
	var appErr *apierror.ApplicationError
	var transportErr *apierror.TransportError

	switch {
	case errors.Is(err, apierror.ErrCanceled):
		return errors.New("canceled")
	case errors.As(err, &appErr) && appErr.Kind == apierror.KindInvalidAPIKey:
		return errors.New("the website rejected the API key; check website.api_key")
	case errors.As(err, &appErr) && appErr.Kind == apierror.KindInvalidAPIMethod:
		return errors.Newf("the website does not support %s; it may need an update", appErr.Action)
	case errors.As(err, &transportErr) && transportErr.Timeout():
		return errors.Wrap(err, "the website did not answer in time")
	default:
		return err
	}
}
