package domain

import "context"

// Task is a single entry of the task list.
type Task struct {
	ID          int64
	Titulo      string
	Descripcion string
}

// TaskRepository defines persistence operations for tasks.
// GetByID, Update and Delete return ErrNotFound for unknown IDs.
type TaskRepository interface {
	List(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	Create(ctx context.Context, task *Task) error
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int64) error
}
