package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/daybook/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenDB opens the sqlite file at path without touching its schema.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// OpenSQLite opens the database at path and brings its schema up to date.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, content, done, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Content, boolInt(in.Done), mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, content, done, created_at, completed_at
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET content = ?, done = ?, completed_at = ?
		WHERE id = ?`,
		in.Content, boolInt(in.Done), nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT id, content, done, created_at, completed_at FROM tasks`
	args := make([]any, 0, 3)
	if filter.Done != nil {
		query += ` WHERE done = ?`
		args = append(args, boolInt(*filter.Done))
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateBookmark(ctx context.Context, in model.Bookmark) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, content, comment, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.Content, in.Comment, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetBookmark(ctx context.Context, id string) (model.Bookmark, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, content, comment, created_at FROM bookmarks WHERE id = ?`, id)
	item, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Bookmark{}, ErrNotFound
		}
		return model.Bookmark{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateBookmark(ctx context.Context, in model.Bookmark) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookmarks SET content = ?, comment = ? WHERE id = ?`, in.Content, in.Comment, in.ID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteBookmark(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListBookmarks(ctx context.Context, filter BookmarkListFilter) ([]model.Bookmark, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, content, comment, created_at FROM bookmarks ORDER BY created_at ASC, id ASC` +
		applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Bookmark, 0)
	for rows.Next() {
		item, scanErr := scanBookmark(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateNote(ctx context.Context, in model.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Body, mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetNote(ctx context.Context, id string) (model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, body, created_at, updated_at FROM notes WHERE id = ?`, id)
	item, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, ErrNotFound
		}
		return model.Note{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateNote(ctx context.Context, in model.Note) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE id = ?`,
		in.Title, in.Body, mustTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteNote(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListNotes(ctx context.Context, filter NoteListFilter) ([]model.Note, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, title, body, created_at, updated_at FROM notes ORDER BY updated_at DESC, id ASC` +
		applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Note, 0)
	for rows.Next() {
		item, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateReminder(ctx context.Context, in model.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, content, cycle, target_date, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Content, string(in.Cycle), in.TargetDate, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetReminder(ctx context.Context, id string) (model.Reminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, content, cycle, target_date, created_at
		FROM reminders WHERE id = ?`, id)
	item, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reminder{}, ErrNotFound
		}
		return model.Reminder{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateReminder(ctx context.Context, in model.Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET content = ?, cycle = ?, target_date = ?
		WHERE id = ?`,
		in.Content, string(in.Cycle), in.TargetDate, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteReminder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListReminders(ctx context.Context, filter ReminderListFilter) ([]model.Reminder, error) {
	query := `SELECT id, content, cycle, target_date, created_at FROM reminders`
	args := make([]any, 0, 3)
	if filter.Cycle != "" {
		query += ` WHERE cycle = ?`
		args = append(args, filter.Cycle)
	}
	query += ` ORDER BY target_date ASC, created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reminder, 0)
	for rows.Next() {
		item, scanErr := scanReminder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// AdvanceReminderTarget moves the target from one value to another only if
// the row still holds from. A missing row is ErrNotFound, a moved one ErrConflict.
func (r *SQLiteRepository) AdvanceReminderTarget(ctx context.Context, id, from, to string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET target_date = ?
		WHERE id = ? AND target_date = ?`, to, id, from)
	if err != nil {
		return err
	}
	err = checkRowsAffected(res)
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	var exists int
	if scanErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM reminders WHERE id = ?`, id).Scan(&exists); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return ErrNotFound
		}
		return scanErr
	}
	return ErrConflict
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var done int
	var created string
	var completed sql.NullString
	if err := s.Scan(&out.ID, &out.Content, &done, &created, &completed); err != nil {
		return model.Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Task{}, err
	}
	completedAt, err := parseNullableTime(completed)
	if err != nil {
		return model.Task{}, err
	}
	out.Done = done == 1
	out.CreatedAt = createdAt
	out.CompletedAt = completedAt
	return out, nil
}

func scanBookmark(s scanner) (model.Bookmark, error) {
	var out model.Bookmark
	var created string
	if err := s.Scan(&out.ID, &out.Content, &out.Comment, &created); err != nil {
		return model.Bookmark{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Bookmark{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanNote(s scanner) (model.Note, error) {
	var out model.Note
	var created, updated string
	if err := s.Scan(&out.ID, &out.Title, &out.Body, &created, &updated); err != nil {
		return model.Note{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Note{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return model.Note{}, err
	}
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

// target_date is returned as stored; callers parse it.
func scanReminder(s scanner) (model.Reminder, error) {
	var out model.Reminder
	var cycle string
	var created string
	if err := s.Scan(&out.ID, &out.Content, &cycle, &out.TargetDate, &created); err != nil {
		return model.Reminder{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return model.Reminder{}, err
	}
	out.Cycle = model.Cycle(cycle)
	out.CreatedAt = createdAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
