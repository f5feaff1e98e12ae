package jsonfile

import (
	"context"

	"github.com/msomdec/tareas/internal/domain"
)

type taskRecord struct {
	ID          int64  `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}

func (rec taskRecord) toDomain() domain.Task {
	return domain.Task{ID: rec.ID, Titulo: rec.Titulo, Descripcion: rec.Descripcion}
}

// TaskRepository implements domain.TaskRepository over a JSON file.
type TaskRepository struct {
	path string
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	records, err := load[taskRecord](ctx, r.path)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, len(records))
	for i, rec := range records {
		tasks[i] = rec.toDomain()
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	records, err := load[taskRecord](ctx, r.path)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec.ID == id {
			t := rec.toDomain()
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	records, err := load[taskRecord](ctx, r.path)
	if err != nil {
		return err
	}

	task.ID = int64(len(records)) + 1
	records = append(records, taskRecord{
		ID:          task.ID,
		Titulo:      task.Titulo,
		Descripcion: task.Descripcion,
	})

	return save(ctx, r.path, records)
}

// Update replaces the first task with a matching ID.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	records, err := load[taskRecord](ctx, r.path)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == task.ID {
			records[i].Titulo = task.Titulo
			records[i].Descripcion = task.Descripcion
			return save(ctx, r.path, records)
		}
	}
	return domain.ErrNotFound
}

// Delete removes every task with the given ID. Duplicate IDs can exist
// after a delete followed by a create.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	records, err := load[taskRecord](ctx, r.path)
	if err != nil {
		return err
	}

	kept := make([]taskRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return domain.ErrNotFound
	}

	return save(ctx, r.path, kept)
}
