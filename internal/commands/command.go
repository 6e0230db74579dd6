package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/daybook/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeRemind   Type = "remind"
	TypeBookmark Type = "bookmark"
	TypeDone     Type = "done"
	TypeAdvance  Type = "advance"
	TypeNote     Type = "note"
)

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
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CommandError) Unwrap() error { return e.Err }

type AddArgs struct {
	Content string
}

type RemindArgs struct {
	Cycle   model.Cycle
	Target  model.Date
	Content string
}

type BookmarkArgs struct {
	URL     string
	Comment string
}

// TargetArgs names an existing task or reminder by id.
type TargetArgs struct {
	ID string
}

type NoteArgs struct {
	Title string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Remind   *RemindArgs
	Bookmark *BookmarkArgs
	Done     *TargetArgs
	Advance  *TargetArgs
	Note     *NoteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeBookmark:
		return parseBookmark(input, args)
	case TypeDone:
		id, err := parseID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: &TargetArgs{ID: id}}, nil
	case TypeAdvance:
		id, err := parseID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeAdvance, Raw: input, Advance: &TargetArgs{ID: id}}, nil
	case TypeNote:
		return parseNote(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func invalidArg(msg string, err error) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: msg, Err: err}
}

func parseAdd(raw string, args []string) (Command, error) {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		return Command{}, invalidArg("add requires a task", nil)
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Content: content}}, nil
}

// remind <cycle> <YYYY-MM-DD> <content...>
func parseRemind(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, invalidArg("remind requires cycle, date and content", nil)
	}
	cycle, err := model.ParseCycle(args[0])
	if err != nil {
		return Command{}, invalidArg(err.Error(), err)
	}
	target, err := model.ParseDate(args[1])
	if err != nil {
		return Command{}, invalidArg(err.Error(), err)
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{
		Cycle:   cycle,
		Target:  target,
		Content: strings.Join(args[2:], " "),
	}}, nil
}

func parseBookmark(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalidArg("bookmark requires a url", nil)
	}
	return Command{Type: TypeBookmark, Raw: raw, Bookmark: &BookmarkArgs{
		URL:     args[0],
		Comment: strings.Join(args[1:], " "),
	}}, nil
}

func parseID(head string, args []string) (string, error) {
	if len(args) != 1 {
		return "", invalidArg(head+" requires exactly one id", nil)
	}
	return args[0], nil
}

func parseNote(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, invalidArg("note requires a title", nil)
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Title: title}}, nil
}
