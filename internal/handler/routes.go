package handler

import (
	"net/http"

	"github.com/msomdec/tareas/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
//
// Only GET /tareas sits behind RequireAuth; task writes are reachable
// without a token.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, tasks *service.TaskService) {
	authHandler := NewAuthHandler(auth)
	taskHandler := NewTaskHandler(tasks)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)

	mux.Handle("GET /tareas", RequireAuth(auth, http.HandlerFunc(taskHandler.HandleList)))
	mux.HandleFunc("POST /tareas", taskHandler.HandleCreate)
	mux.HandleFunc("PUT /tareas/{id}", taskHandler.HandleUpdate)
	mux.HandleFunc("DELETE /tareas/{id}", taskHandler.HandleDelete)

	mux.HandleFunc("/", HandleNotFound)
}
