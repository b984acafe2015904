package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"gonotes/middleware"
	"gonotes/models"
)

// noteView is what the listing template sees: the body already converted
// from Markdown.
type noteView struct {
	ID        uint
	Title     string
	BodyHTML  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, "index.html", map[string]interface{}{})
}

// GET /notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var notes []models.Note
	err := h.DB.Where("user_id = ?", user.ID).Order("created_at DESC, id DESC").Find(&notes).Error
	if err != nil {
		h.serverError(w, "list notes", err)
		return
	}

	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, noteView{
			ID:        n.ID,
			Title:     n.Title,
			BodyHTML:  renderMarkdown(n.Body),
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}

	h.Renderer.Render(w, r, "notes.html", map[string]interface{}{
		"notes": views,
	})
}

// GET + POST /notes/new
func (h *Handler) NewNote(w http.ResponseWriter, r *http.Request) {
	errorMsg := ""
	if r.Method == http.MethodPost {
		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			errorMsg = "You have to enter a title"
		} else {
			user := middleware.UserFrom(r.Context())
			note := models.Note{Title: title, Body: r.FormValue("body"), UserID: user.ID}
			if err := h.DB.Create(&note).Error; err != nil {
				h.serverError(w, "create note", err)
				return
			}
			h.flash(w, r, "Your note was saved")
			http.Redirect(w, r, "/notes", http.StatusFound)
			return
		}
	}

	h.Renderer.Render(w, r, "new_note.html", map[string]interface{}{
		"error": errorMsg,
	})
}

// GET + POST /notes/{id}/edit
func (h *Handler) EditNote(w http.ResponseWriter, r *http.Request) {
	note, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	errorMsg := ""
	if r.Method == http.MethodPost {
		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			errorMsg = "You have to enter a title"
		} else {
			note.Title = title
			note.Body = r.FormValue("body")
			if err := h.DB.Save(note).Error; err != nil {
				h.serverError(w, "update note", err)
				return
			}
			h.flash(w, r, "Your note was updated")
			http.Redirect(w, r, "/notes", http.StatusFound)
			return
		}
	}

	h.Renderer.Render(w, r, "edit_note.html", map[string]interface{}{
		"error": errorMsg,
		"note":  note,
	})
}

// POST /notes/{id}/delete
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	note, ok := h.ownedNote(w, r)
	if !ok {
		return
	}
	if err := h.DB.Delete(note).Error; err != nil {
		h.serverError(w, "delete note", err)
		return
	}
	h.flash(w, r, "Your note was deleted")
	http.Redirect(w, r, "/notes", http.StatusFound)
}

// ownedNote loads the {id} note when it belongs to the current user;
// otherwise it writes a 404 and reports false. A note owned by someone else
// gets the same 404 as a missing id.
func (h *Handler) ownedNote(w http.ResponseWriter, r *http.Request) (*models.Note, bool) {
	user := middleware.UserFrom(r.Context())

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	var note models.Note
	err = h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		h.serverError(w, "load note", err)
		return nil, false
	}
	return &note, true
}
