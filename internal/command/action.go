package command

import "strings"

// Action is the closed set of lab sub-commands. Keeping it an enum (rather
// than dispatching on raw strings) makes the handler table exhaustive: a new
// action does not exist until it has an entry in handlers.
type Action int

const (
	ActionBook Action = iota
	ActionView
	ActionCancel
	ActionStatus
)

func (a Action) String() string {
	switch a {
	case ActionBook:
		return "book"
	case ActionView:
		return "view"
	case ActionCancel:
		return "cancel"
	case ActionStatus:
		return "status"
	default:
		return "unknown"
	}
}

// ParseAction matches the first argument token, case-insensitively.
func ParseAction(token string) (Action, bool) {
	switch strings.ToLower(token) {
	case "book":
		return ActionBook, true
	case "view":
		return ActionView, true
	case "cancel":
		return ActionCancel, true
	case "status":
		return ActionStatus, true
	default:
		return 0, false
	}
}
