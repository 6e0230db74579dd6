package storage

type TaskListFilter struct {
	Done   *bool
	Limit  int
	Offset int
}

type BookmarkListFilter struct {
	Limit  int
	Offset int
}

type NoteListFilter struct {
	Limit  int
	Offset int
}

type ReminderListFilter struct {
	Cycle  string
	Limit  int
	Offset int
}
