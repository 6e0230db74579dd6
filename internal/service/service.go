package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/daybook/internal/metrics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/stats"
	"github.com/sandeepkv93/daybook/internal/storage"
	"github.com/sandeepkv93/daybook/internal/urgency"
)

// ErrInvalidInput marks caller mistakes; the underlying model error is
// wrapped alongside it.
var ErrInvalidInput = errors.New("service: invalid input")

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCloseThreshold(days int) Option {
	return func(s *Service) { s.aggregator = stats.NewAggregator(days) }
}

// WithClock sets the source of creation and completion timestamps. It never
// decides what "today" is; callers pass that in.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

func WithIDGenerator(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newID = next
		}
	}
}

type Service struct {
	repo       storage.Repository
	log        *zap.Logger
	metrics    *metrics.Metrics
	aggregator stats.Aggregator
	clock      func() time.Time
	newID      func() string
}

func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		log:        zap.NewNop(),
		aggregator: stats.NewAggregator(urgency.DefaultCloseThreshold),
		clock:      time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CloseThreshold() int {
	return s.aggregator.CloseThreshold
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func (s *Service) CreateTask(ctx context.Context, content string) (model.Task, error) {
	task := model.Task{
		ID:        s.newID(),
		Content:   strings.TrimSpace(content),
		CreatedAt: s.clock().UTC(),
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, invalid(err)
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.log.Debug("task created", zap.String("task_id", task.ID))
	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id string) (model.Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) UpdateTask(ctx context.Context, id, content string) (model.Task, error) {
	return s.mutateTask(ctx, id, func(t model.Task) model.Task {
		t.Content = strings.TrimSpace(content)
		return t
	})
}

func (s *Service) CompleteTask(ctx context.Context, id string) (model.Task, error) {
	at := s.clock()
	return s.mutateTask(ctx, id, func(t model.Task) model.Task { return t.Complete(at) })
}

func (s *Service) ReopenTask(ctx context.Context, id string) (model.Task, error) {
	return s.mutateTask(ctx, id, func(t model.Task) model.Task { return t.Reopen() })
}

func (s *Service) mutateTask(ctx context.Context, id string, fn func(model.Task) model.Task) (model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task = fn(task)
	if err := task.Validate(); err != nil {
		return model.Task{}, invalid(err)
	}
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.repo.DeleteTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, done *bool) ([]model.Task, error) {
	return s.repo.ListTasks(ctx, storage.TaskListFilter{Done: done})
}

func (s *Service) CreateBookmark(ctx context.Context, content, comment string) (model.Bookmark, error) {
	bm := model.Bookmark{
		ID:        s.newID(),
		Content:   strings.TrimSpace(content),
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.clock().UTC(),
	}
	if err := bm.Validate(); err != nil {
		return model.Bookmark{}, invalid(err)
	}
	if err := s.repo.CreateBookmark(ctx, bm); err != nil {
		return model.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	return bm, nil
}

func (s *Service) UpdateBookmark(ctx context.Context, id, content, comment string) (model.Bookmark, error) {
	bm, err := s.repo.GetBookmark(ctx, id)
	if err != nil {
		return model.Bookmark{}, err
	}
	bm.Content = strings.TrimSpace(content)
	bm.Comment = strings.TrimSpace(comment)
	if err := bm.Validate(); err != nil {
		return model.Bookmark{}, invalid(err)
	}
	if err := s.repo.UpdateBookmark(ctx, bm); err != nil {
		return model.Bookmark{}, fmt.Errorf("update bookmark: %w", err)
	}
	return bm, nil
}

func (s *Service) DeleteBookmark(ctx context.Context, id string) error {
	return s.repo.DeleteBookmark(ctx, id)
}

func (s *Service) ListBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	return s.repo.ListBookmarks(ctx, storage.BookmarkListFilter{})
}

func (s *Service) CreateNote(ctx context.Context, title, body string) (model.Note, error) {
	now := s.clock().UTC()
	note := model.Note{
		ID:        s.newID(),
		Title:     strings.TrimSpace(title),
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, invalid(err)
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *Service) GetNote(ctx context.Context, id string) (model.Note, error) {
	return s.repo.GetNote(ctx, id)
}

func (s *Service) UpdateNote(ctx context.Context, id, title, body string) (model.Note, error) {
	note, err := s.repo.GetNote(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	note.Title = strings.TrimSpace(title)
	note.Body = body
	if now := s.clock().UTC(); now.After(note.UpdatedAt) {
		note.UpdatedAt = now
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, invalid(err)
	}
	if err := s.repo.UpdateNote(ctx, note); err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.repo.DeleteNote(ctx, id)
}

func (s *Service) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.repo.ListNotes(ctx, storage.NoteListFilter{})
}

// Dashboard collects every entity and summarizes it as of now.
func (s *Service) Dashboard(ctx context.Context, now model.Date) (stats.Snapshot, error) {
	tasks, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("list tasks: %w", err)
	}
	reminders, err := s.repo.ListReminders(ctx, storage.ReminderListFilter{})
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("list reminders: %w", err)
	}
	bookmarks, err := s.repo.ListBookmarks(ctx, storage.BookmarkListFilter{})
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("list bookmarks: %w", err)
	}
	notes, err := s.repo.ListNotes(ctx, storage.NoteListFilter{})
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("list notes: %w", err)
	}

	snap := s.aggregator.Summarize(tasks, reminders, bookmarks, notes, now)
	s.reportItemErrors(snap.ReminderErrors)
	s.metrics.SetCloseReminders(len(snap.CloseReminders))
	return snap, nil
}
