package handler

import "github.com/msomdec/tareas/internal/domain"

// TaskDTO is the JSON representation of a task.
type TaskDTO struct {
	ID          int64  `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}

func toTaskDTO(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Titulo:      t.Titulo,
		Descripcion: t.Descripcion,
	}
}

func toTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = toTaskDTO(&tasks[i])
	}
	return dtos
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createTaskRequest struct {
	Titulo      string `json:"titulo" validate:"required"`
	Descripcion string `json:"descripcion" validate:"required"`
}

// updateTaskRequest fields are optional; nil keeps the stored value.
type updateTaskRequest struct {
	Titulo      *string `json:"titulo"`
	Descripcion *string `json:"descripcion"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type taskResponse struct {
	Message string  `json:"message"`
	Tarea   TaskDTO `json:"tarea"`
}
