package apierror

// ErrorKind is the classification of a server error code.
type ErrorKind int

const (
	// KindUnknown is used for codes missing from the registry. The raw code is kept
	// on ApplicationError.Code.
	KindUnknown ErrorKind = iota

	// Request errors
	KindInvalidAPIKey
	KindInvalidAPIMethod
	KindNotAuthorized
	KindInvalidPostContents
	KindInvalidGetContents
	KindUnknownError

	// Lookup errors
	KindUserNotFound
	KindGroupNotFound
	KindAnnouncementNotFound

	// Registration and account errors
	KindInvalidUsername
	KindUsernameAlreadyExists
	KindInvalidEmail
	KindEmailAlreadyExists
	KindInvalidUUID
	KindUUIDAlreadyExists
	KindUnableToSendRegistrationEmail
	KindUnableToCreateAccount
	KindUnableToUpdateUsername
	KindInvalidValidationCode
	KindUserAlreadyActive

	// Report errors
	KindUnableToCreateReport
	KindReportAlreadyOpen
	KindCannotReportSelf

	// Group errors
	KindInvalidGroupID
	KindUnableToUpdateGroups

	// Discord integration errors
	KindDiscordIntegrationDisabled
	KindInvalidDiscordID
	KindUnableToSetDiscordID
	KindUnableToSetDiscordBotURL
	KindUnableToSetDiscordGuildID
	KindUnableToSetDiscordBotUser
	KindInvalidDiscordBotSettings
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                       "unknown",
	KindInvalidAPIKey:                 "invalid_api_key",
	KindInvalidAPIMethod:              "invalid_api_method",
	KindNotAuthorized:                 "not_authorized",
	KindInvalidPostContents:           "invalid_post_contents",
	KindInvalidGetContents:            "invalid_get_contents",
	KindUnknownError:                  "unknown_error",
	KindUserNotFound:                  "user_not_found",
	KindGroupNotFound:                 "group_not_found",
	KindAnnouncementNotFound:          "announcement_not_found",
	KindInvalidUsername:               "invalid_username",
	KindUsernameAlreadyExists:         "username_already_exists",
	KindInvalidEmail:                  "invalid_email",
	KindEmailAlreadyExists:            "email_already_exists",
	KindInvalidUUID:                   "invalid_uuid",
	KindUUIDAlreadyExists:             "uuid_already_exists",
	KindUnableToSendRegistrationEmail: "unable_to_send_registration_email",
	KindUnableToCreateAccount:         "unable_to_create_account",
	KindUnableToUpdateUsername:        "unable_to_update_username",
	KindInvalidValidationCode:         "invalid_validation_code",
	KindUserAlreadyActive:             "user_already_active",
	KindUnableToCreateReport:          "unable_to_create_report",
	KindReportAlreadyOpen:             "report_already_open",
	KindCannotReportSelf:              "cannot_report_self",
	KindInvalidGroupID:                "invalid_group_id",
	KindUnableToUpdateGroups:          "unable_to_update_groups",
	KindDiscordIntegrationDisabled:    "discord_integration_disabled",
	KindInvalidDiscordID:              "invalid_discord_id",
	KindUnableToSetDiscordID:          "unable_to_set_discord_id",
	KindUnableToSetDiscordBotURL:      "unable_to_set_discord_bot_url",
	KindUnableToSetDiscordGuildID:     "unable_to_set_discord_guild_id",
	KindUnableToSetDiscordBotUser:     "unable_to_set_discord_bot_user",
	KindInvalidDiscordBotSettings:     "invalid_discord_bot_settings",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// registry maps the codes the website emits to their kind. Older websites send
// human readable codes, newer ones send namespaced codes; both are listed.
var registry = map[string]ErrorKind{
	"invalid api key":          KindInvalidAPIKey,
	"nameless:invalid_api_key": KindInvalidAPIKey,

	"invalid api method":          KindInvalidAPIMethod,
	"nameless:invalid_api_method": KindInvalidAPIMethod,

	"not authorized":          KindNotAuthorized,
	"nameless:not_authorized": KindNotAuthorized,

	"invalid post contents":          KindInvalidPostContents,
	"nameless:invalid_post_contents": KindInvalidPostContents,

	"invalid get contents":          KindInvalidGetContents,
	"nameless:invalid_get_contents": KindInvalidGetContents,

	"unknown error":          KindUnknownError,
	"nameless:unknown_error": KindUnknownError,

	"user not found":             KindUserNotFound,
	"unable to find user":        KindUserNotFound,
	"nameless:cannot_find_user":  KindUserNotFound,
	"group not found":            KindGroupNotFound,
	"nameless:cannot_find_group": KindGroupNotFound,

	"announcement not found":        KindAnnouncementNotFound,
	"core:cannot_find_announcement": KindAnnouncementNotFound,

	"invalid username":             KindInvalidUsername,
	"core:invalid_username":        KindInvalidUsername,
	"username already exists":      KindUsernameAlreadyExists,
	"core:username_already_exists": KindUsernameAlreadyExists,

	"invalid email":              KindInvalidEmail,
	"invalid email address":      KindInvalidEmail,
	"core:invalid_email_address": KindInvalidEmail,
	"email already exists":       KindEmailAlreadyExists,
	"core:email_already_exists":  KindEmailAlreadyExists,

	"invalid uuid":             KindInvalidUUID,
	"core:invalid_uuid":        KindInvalidUUID,
	"uuid already exists":      KindUUIDAlreadyExists,
	"core:uuid_already_exists": KindUUIDAlreadyExists,

	"unable to send registration email":      KindUnableToSendRegistrationEmail,
	"core:unable_to_send_registration_email": KindUnableToSendRegistrationEmail,
	"unable to create account":               KindUnableToCreateAccount,
	"core:unable_to_create_account":          KindUnableToCreateAccount,
	"unable to update username":              KindUnableToUpdateUsername,
	"core:unable_to_update_username":         KindUnableToUpdateUsername,

	"invalid validation code":  KindInvalidValidationCode,
	"core:invalid_code":        KindInvalidValidationCode,
	"user already active":      KindUserAlreadyActive,
	"core:user_already_active": KindUserAlreadyActive,

	"unable to create report":      KindUnableToCreateReport,
	"core:unable_to_create_report": KindUnableToCreateReport,
	"report already open":          KindReportAlreadyOpen,
	"core:open_report_already":     KindReportAlreadyOpen,
	"cannot report yourself":       KindCannotReportSelf,
	"core:cannot_report_yourself":  KindCannotReportSelf,

	"invalid group id":             KindInvalidGroupID,
	"core:invalid_group_id":        KindInvalidGroupID,
	"unable to update groups":      KindUnableToUpdateGroups,
	"core:unable_to_update_groups": KindUnableToUpdateGroups,

	"discord integration disabled":                       KindDiscordIntegrationDisabled,
	"discord_integration:discord_integration_disabled":   KindDiscordIntegrationDisabled,
	"invalid discord id":                                 KindInvalidDiscordID,
	"discord_integration:invalid_discord_id":             KindInvalidDiscordID,
	"unable to set discord id":                           KindUnableToSetDiscordID,
	"discord_integration:unable_to_set_discord_id":       KindUnableToSetDiscordID,
	"unable to set discord bot url":                      KindUnableToSetDiscordBotURL,
	"discord_integration:unable_to_set_discord_bot_url":  KindUnableToSetDiscordBotURL,
	"unable to set discord guild id":                     KindUnableToSetDiscordGuildID,
	"discord_integration:unable_to_set_discord_guild_id": KindUnableToSetDiscordGuildID,
	"unable to set discord bot user":                     KindUnableToSetDiscordBotUser,
	"discord_integration:unable_to_set_discord_bot_user": KindUnableToSetDiscordBotUser,
	"invalid discord bot settings":                       KindInvalidDiscordBotSettings,
	"discord_integration:invalid_bot_settings":           KindInvalidDiscordBotSettings,
}

// Classify returns the kind registered for code, or KindUnknown.
// Codes are matched exactly; free text is never inspected.
func Classify(code string) ErrorKind {
	if kind, ok := registry[code]; ok {
		return kind
	}
	return KindUnknown
}

// Known reports whether code is present in the registry.
func Known(code string) bool {
	_, ok := registry[code]
	return ok
}
