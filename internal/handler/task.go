package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/msomdec/tareas/internal/domain"
	"github.com/msomdec/tareas/internal/service"
)

// TaskHandler handles the /tareas endpoints.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleList returns every task. Mounted behind RequireAuth.
// GET /tareas
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		writeInternalError(w, r, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleCreate adds a task.
// POST /tareas
// Request:  {"titulo":"...","descripcion":"..."}
// Response: 201 {"message":"task created","tarea":{...}}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := readJSON(r, &req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "titulo and descripcion are required")
			return
		}
		writeInternalError(w, r, "decode create task request", err)
		return
	}

	task, err := h.tasks.Create(r.Context(), req.Titulo, req.Descripcion)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "titulo and descripcion are required")
			return
		}
		writeInternalError(w, r, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, taskResponse{
		Message: "task created",
		Tarea:   toTaskDTO(task),
	})
}

// HandleUpdate patches a task; absent fields keep their stored value.
// PUT /tareas/{id}
// Response: 200 {"message":"task updated","tarea":{...}}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "task not found")
		return
	}

	var req updateTaskRequest
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req.Titulo, req.Descripcion)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "task not found")
			return
		}
		writeInternalError(w, r, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		Message: "task updated",
		Tarea:   toTaskDTO(task),
	})
}

// HandleDelete removes a task.
// DELETE /tareas/{id}
// Response: 200 {"message":"task deleted"}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "task not found")
			return
		}
		writeInternalError(w, r, "delete task", err)
		return
	}

	writeMessage(w, http.StatusOK, "task deleted")
}

// parseTaskID reads the {id} path value. Anything that is not a positive
// integer matches no task.
func parseTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
