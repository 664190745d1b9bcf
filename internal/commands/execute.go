package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Remove func(TargetArgs) (Result, error)
	Toggle func(TargetArgs) (Result, error)
	Search func(SearchArgs) (Result, error)
	List   func(SearchArgs) (Result, error)
}

// Execute routes cmd to its handler. Commands built without Parse may lack
// their payload; those are rejected instead of dereferenced.
func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return call(cmd.Type, handlers.Add, cmd.Add)
	case TypeRemove:
		return call(cmd.Type, handlers.Remove, cmd.Target)
	case TypeToggle:
		return call(cmd.Type, handlers.Toggle, cmd.Target)
	case TypeSearch:
		return call(cmd.Type, handlers.Search, cmd.Search)
	case TypeList:
		return call(cmd.Type, handlers.List, cmd.Search)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call[A any](typ Type, handler func(A) (Result, error), args *A) (Result, error) {
	if handler == nil {
		return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", typ)}
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s command has no arguments", typ)}
	}
	return handler(*args)
}
