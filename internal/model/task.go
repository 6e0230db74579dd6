package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Content) == "" {
		return fmt.Errorf("%w: task", ErrEmptyContent)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Done && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is done")
	}
	if !t.Done && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is open")
	}
	return nil
}

// Complete marks the task done at the given instant. Completing a done task
// keeps its original completion time.
func (t Task) Complete(at time.Time) Task {
	if t.Done {
		return t
	}
	at = at.UTC()
	t.Done = true
	t.CompletedAt = &at
	return t
}

func (t Task) Reopen() Task {
	t.Done = false
	t.CompletedAt = nil
	return t
}

type Bookmark struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (b Bookmark) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("model: bookmark id is required")
	}
	if strings.TrimSpace(b.Content) == "" {
		return fmt.Errorf("%w: bookmark", ErrEmptyContent)
	}
	if b.CreatedAt.IsZero() {
		return errors.New("model: bookmark created_at is required")
	}
	return nil
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: note title", ErrEmptyContent)
	}
	if n.CreatedAt.IsZero() {
		return errors.New("model: note created_at is required")
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		return errors.New("model: note updated_at precedes created_at")
	}
	return nil
}
