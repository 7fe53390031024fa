package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/model"
)

type Type string

const (
	TypeStatus   Type = "status"
	TypeNew      Type = "new"
	TypeClear    Type = "clear"
	TypeDismiss  Type = "dismiss"
	TypePresence Type = "presence"
	TypeGoto     Type = "goto"
	TypeFilter   Type = "filter"
	TypeRemind   Type = "remind"
	TypeLogout   Type = "logout"
)

// Types lists every command in palette order.
var Types = []Type{TypeStatus, TypeNew, TypeClear, TypeDismiss, TypePresence, TypeGoto, TypeFilter, TypeRemind, TypeLogout}

// Views are the screens goto accepts.
var Views = []string{"dashboard", "clients", "tasks", "calendar", "workspaces"}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type StatusArgs struct {
	TaskID string
	Status model.TaskStatus
}

type NewArgs struct {
	Title string
}

type PresenceArgs struct {
	Status model.UserStatus
}

type GotoArgs struct {
	View string
}

type FilterArgs struct {
	Filter insights.CalendarFilter
}

type Command struct {
	Type     Type
	Raw      string
	Status   *StatusArgs
	New      *NewArgs
	Presence *PresenceArgs
	Goto     *GotoArgs
	Filter   *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeStatus:
		return parseStatus(input, args)
	case TypeNew:
		return parseNew(input, args)
	case TypePresence:
		return parsePresence(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeClear, TypeDismiss, TypeRemind, TypeLogout:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// Complete returns the command names starting with prefix, for the palette
// hint line.
func Complete(prefix string) []Type {
	p := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(prefix), "/"))
	var out []Type
	for _, t := range Types {
		if strings.HasPrefix(string(t), p) {
			out = append(out, t)
		}
	}
	return out
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("status requires a task id and a status")
	}
	status, err := model.ParseTaskStatus(strings.Join(args[1:], " "))
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{TaskID: args[0], Status: status}}, nil
}

func parseNew(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, invalid("new requires a title")
	}
	return Command{Type: TypeNew, Raw: raw, New: &NewArgs{Title: title}}, nil
}

func parsePresence(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("presence requires a status")
	}
	status, err := model.ParseUserStatus(strings.Join(args, " "))
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypePresence, Raw: raw, Presence: &PresenceArgs{Status: status}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires one of %s", strings.Join(Views, ", "))
	}
	view := strings.ToLower(args[0])
	if !slices.Contains(Views, view) {
		return Command{}, invalid("unknown view %q", args[0])
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{View: view}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires all, meetings or tasks")
	}
	f, err := insights.ParseCalendarFilter(args[0])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}
