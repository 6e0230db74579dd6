package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Remind   func(RemindArgs) (Result, error)
	Bookmark func(BookmarkArgs) (Result, error)
	Done     func(TargetArgs) (Result, error)
	Advance  func(TargetArgs) (Result, error)
	Note     func(NoteArgs) (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeRemind:
		if handlers.Remind == nil {
			return Result{}, missing("remind")
		}
		return handlers.Remind(*cmd.Remind)
	case TypeBookmark:
		if handlers.Bookmark == nil {
			return Result{}, missing("bookmark")
		}
		return handlers.Bookmark(*cmd.Bookmark)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing("done")
		}
		return handlers.Done(*cmd.Done)
	case TypeAdvance:
		if handlers.Advance == nil {
			return Result{}, missing("advance")
		}
		return handlers.Advance(*cmd.Advance)
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, missing("note")
		}
		return handlers.Note(*cmd.Note)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
