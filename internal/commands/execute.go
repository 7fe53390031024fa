package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Status   func(StatusArgs) (Result, error)
	New      func(NewArgs) (Result, error)
	Clear    func() (Result, error)
	Dismiss  func() (Result, error)
	Presence func(PresenceArgs) (Result, error)
	Goto     func(GotoArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Remind   func() (Result, error)
	Logout   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeStatus:
		if handlers.Status == nil {
			return missing(cmd.Type)
		}
		return handlers.Status(*cmd.Status)
	case TypeNew:
		if handlers.New == nil {
			return missing(cmd.Type)
		}
		return handlers.New(*cmd.New)
	case TypePresence:
		if handlers.Presence == nil {
			return missing(cmd.Type)
		}
		return handlers.Presence(*cmd.Presence)
	case TypeGoto:
		if handlers.Goto == nil {
			return missing(cmd.Type)
		}
		return handlers.Goto(*cmd.Goto)
	case TypeFilter:
		if handlers.Filter == nil {
			return missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeClear:
		return runNoArg(cmd.Type, handlers.Clear)
	case TypeDismiss:
		return runNoArg(cmd.Type, handlers.Dismiss)
	case TypeRemind:
		return runNoArg(cmd.Type, handlers.Remind)
	case TypeLogout:
		return runNoArg(cmd.Type, handlers.Logout)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func runNoArg(t Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return missing(t)
	}
	return fn()
}

func missing(t Type) (Result, error) {
	return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
