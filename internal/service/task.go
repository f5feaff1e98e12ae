package service

import (
	"context"
	"fmt"

	"github.com/msomdec/tareas/internal/domain"
)

// TaskService handles task list operations.
type TaskService struct {
	tasks domain.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// List returns every task in store order.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create adds a task. Both fields are required.
func (s *TaskService) Create(ctx context.Context, titulo, descripcion string) (*domain.Task, error) {
	if titulo == "" || descripcion == "" {
		return nil, fmt.Errorf("%w: titulo and descripcion are required", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		Titulo:      titulo,
		Descripcion: descripcion,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update changes the fields that are non-nil and keeps the rest.
func (s *TaskService) Update(ctx context.Context, id int64, titulo, descripcion *string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if titulo != nil {
		task.Titulo = *titulo
	}
	if descripcion != nil {
		task.Descripcion = *descripcion
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}
