// Package handlers implements the route handlers and the template renderer.
package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gonotes/middleware"
)

type Handler struct {
	DB       *gorm.DB
	Store    sessions.Store
	Log      *zap.Logger
	Renderer *Renderer
}

func New(db *gorm.DB, store sessions.Store, log *zap.Logger, renderer *Renderer) *Handler {
	return &Handler{DB: db, Store: store, Log: log, Renderer: renderer}
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	session.AddFlash(message)
	session.Save(r, w)
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.Log.Error(msg, zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
