package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/sessions"
	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"
	"go.uber.org/zap"

	"gonotes/middleware"
)

// Renderer executes gonja templates from a directory, merging the
// per-request context (current user, pending flashes) into the data.
type Renderer struct {
	dir   string
	store sessions.Store
	log   *zap.Logger
}

func NewRenderer(dir string, store sessions.Store, log *zap.Logger) *Renderer {
	return &Renderer{dir: dir, store: store, log: log}
}

// Render executes <dir>/<name> with data. Templates always see
// "current_user" (nil when anonymous) and "flashes"; consuming the flashes
// saves the session so each message is shown once.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tpl, err := gonja.FromFile(filepath.Join(rd.dir, name))
	if err != nil {
		rd.log.Error("parse template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, ok := data["current_user"]; !ok {
		data["current_user"] = middleware.UserFrom(r.Context())
	}
	if _, ok := data["flashes"]; !ok {
		data["flashes"] = rd.flashes(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, exec.NewContext(data)); err != nil {
		rd.log.Error("render template", zap.String("template", name), zap.Error(err))
	}
}

func (rd *Renderer) flashes(w http.ResponseWriter, r *http.Request) []interface{} {
	session, _ := rd.store.Get(r, middleware.SessionName)
	flashes := session.Flashes()
	session.Save(r, w)
	return flashes
}
