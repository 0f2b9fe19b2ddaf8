package nameless

import "net/http"

// Action is one API route of the website. The set is closed; unknown values are
// rejected by the dispatcher.
type Action int

const (
	ActionInfo Action = iota + 1
	ActionGetAnnouncements
	ActionListUsers
	ActionUserInfo
	ActionGroupInfo
	ActionGetNotifications
	ActionRegister
	ActionServerInfo
	ActionUpdateUsername
	ActionVerifyMinecraft
	ActionCreateReport
	ActionAddGroups
	ActionRemoveGroups
	ActionSetDiscordID
	ActionVerifyDiscord
	ActionSetDiscordBotURL
	ActionSetDiscordGuildID
	ActionSetDiscordBotUser
	ActionUpdateDiscordBotSettings
	ActionSubmitDiscordRoleList
	ActionUpdateDiscordUsernames
)

type actionInfo struct {
	route  string
	method string
}

var actionTable = map[Action]actionInfo{
	ActionInfo:                     {route: "info", method: http.MethodGet},
	ActionGetAnnouncements:         {route: "getAnnouncements", method: http.MethodGet},
	ActionListUsers:                {route: "listUsers", method: http.MethodGet},
	ActionUserInfo:                 {route: "userInfo", method: http.MethodGet},
	ActionGroupInfo:                {route: "groupInfo", method: http.MethodGet},
	ActionGetNotifications:         {route: "getNotifications", method: http.MethodGet},
	ActionRegister:                 {route: "register", method: http.MethodPost},
	ActionServerInfo:               {route: "serverInfo", method: http.MethodPost},
	ActionUpdateUsername:           {route: "updateUsername", method: http.MethodPost},
	ActionVerifyMinecraft:          {route: "verifyMinecraft", method: http.MethodPost},
	ActionCreateReport:             {route: "createReport", method: http.MethodPost},
	ActionAddGroups:                {route: "addGroups", method: http.MethodPost},
	ActionRemoveGroups:             {route: "removeGroups", method: http.MethodPost},
	ActionSetDiscordID:             {route: "setDiscordId", method: http.MethodPost},
	ActionVerifyDiscord:            {route: "verifyDiscord", method: http.MethodPost},
	ActionSetDiscordBotURL:         {route: "setDiscordBotUrl", method: http.MethodPost},
	ActionSetDiscordGuildID:        {route: "setDiscordGuildId", method: http.MethodPost},
	ActionSetDiscordBotUser:        {route: "setDiscordBotUser", method: http.MethodPost},
	ActionUpdateDiscordBotSettings: {route: "updateDiscordBotSettings", method: http.MethodPost},
	ActionSubmitDiscordRoleList:    {route: "submitDiscordRoleList", method: http.MethodPost},
	ActionUpdateDiscordUsernames:   {route: "updateDiscordUsernames", method: http.MethodPost},
}

// Actions returns every known action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, len(actionTable))
	for a := ActionInfo; a <= ActionUpdateDiscordUsernames; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	_, ok := actionTable[a]
	return ok
}

// Route is the path segment the website serves the action under.
func (a Action) Route() string { return actionTable[a].route }

// Method is the HTTP method used for the action.
func (a Action) Method() string { return actionTable[a].method }

// HasBody reports whether parameters travel as a JSON body rather than the query string.
func (a Action) HasBody() bool { return a.Method() == http.MethodPost }

func (a Action) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return a.Route()
}
