package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gonotes/handlers"
	"gonotes/middleware"
)

func setupRouter(gdb *gorm.DB, store sessions.Store, logger *zap.Logger, templatesDir string) http.Handler {
	h := handlers.New(gdb, store, logger, handlers.NewRenderer(templatesDir, store, logger))

	r := mux.NewRouter()

	fs := http.FileServer(http.Dir("static"))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/sign_up", h.SignUp).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/log_in", h.LogIn).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/log_out", h.LogOut).Methods(http.MethodGet, http.MethodDelete)

	notes := r.PathPrefix("/notes").Subrouter()
	notes.Use(middleware.RequireLogin)
	notes.HandleFunc("", h.ListNotes).Methods(http.MethodGet)
	notes.HandleFunc("/new", h.NewNote).Methods(http.MethodGet, http.MethodPost)
	notes.HandleFunc("/{id:[0-9]+}/edit", h.EditNote).Methods(http.MethodGet, http.MethodPost)
	notes.HandleFunc("/{id:[0-9]+}/delete", h.DeleteNote).Methods(http.MethodPost)

	// Outermost first: recovery wraps logging wraps user resolution.
	var handler http.Handler = r
	handler = middleware.CurrentUser(gdb, store)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	return handler
}
