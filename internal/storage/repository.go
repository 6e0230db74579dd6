package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/daybook/internal/model"
)

var (
	ErrNotFound = errors.New("storage: not found")
	// ErrConflict means a reminder target changed between read and write.
	ErrConflict = errors.New("storage: concurrent update")
)

type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	CreateBookmark(ctx context.Context, in model.Bookmark) error
	GetBookmark(ctx context.Context, id string) (model.Bookmark, error)
	UpdateBookmark(ctx context.Context, in model.Bookmark) error
	DeleteBookmark(ctx context.Context, id string) error
	ListBookmarks(ctx context.Context, filter BookmarkListFilter) ([]model.Bookmark, error)

	CreateNote(ctx context.Context, in model.Note) error
	GetNote(ctx context.Context, id string) (model.Note, error)
	UpdateNote(ctx context.Context, in model.Note) error
	DeleteNote(ctx context.Context, id string) error
	ListNotes(ctx context.Context, filter NoteListFilter) ([]model.Note, error)

	CreateReminder(ctx context.Context, in model.Reminder) error
	GetReminder(ctx context.Context, id string) (model.Reminder, error)
	UpdateReminder(ctx context.Context, in model.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	ListReminders(ctx context.Context, filter ReminderListFilter) ([]model.Reminder, error)
	AdvanceReminderTarget(ctx context.Context, id, from, to string) error
}
