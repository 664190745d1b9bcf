package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRemove Type = "remove"
	TypeToggle Type = "toggle"
	TypeSearch Type = "search"
	TypeList   Type = "list"
)

var aliases = map[string]Type{
	"rm":     TypeRemove,
	"del":    TypeRemove,
	"done":   TypeToggle,
	"find":   TypeSearch,
	"ls":     TypeList,
	"add":    TypeAdd,
	"remove": TypeRemove,
	"toggle": TypeToggle,
	"search": TypeSearch,
	"list":   TypeList,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeRejected        ErrorCode = "rejected"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Name string
}

type TargetArgs struct {
	ID string
}

type SearchArgs struct {
	Text string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Search *SearchArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	typ, ok := aliases[strings.ToLower(head)]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", strings.ToLower(head))}
	}
	rest = strings.TrimSpace(rest)

	switch typ {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeRemove, TypeToggle:
		return parseTarget(input, typ, rest)
	default:
		return Command{Type: typ, Raw: input, Search: &SearchArgs{Text: rest}}, nil
	}
}

// Names keep their inner spacing; only the ends are trimmed.
func parseAdd(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: rest}}, nil
}

func parseTarget(raw string, typ Type, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one task id", typ)}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: strings.TrimPrefix(fields[0], "#")}}, nil
}
