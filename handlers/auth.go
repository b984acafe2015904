package handlers

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gonotes/middleware"
	"gonotes/models"
)

// One message for both unknown username and wrong password, so the form
// never leaks which field was wrong.
const genericLogInError = "Username or password are incorrect"

// dummyHash keeps the unknown-username path doing the same bcrypt work as a
// real comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("-"), bcrypt.DefaultCost)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GET + POST /sign_up
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	errorMsg := ""
	if r.Method == http.MethodPost {
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		if username == "" {
			errorMsg = "You have to enter a username"
		} else if password == "" {
			errorMsg = "You have to enter a password"
		} else if h.usernameTaken(username) {
			errorMsg = "The username is already taken"
		} else {
			hash, err := hashPassword(password)
			if err != nil {
				h.serverError(w, "hash password", err)
				return
			}
			err = h.DB.Create(&models.User{Username: username, PasswordHash: hash}).Error
			switch {
			case errors.Is(err, gorm.ErrDuplicatedKey):
				// Two sign-ups raced past the taken check; the UNIQUE
				// constraint decides, the loser sees the same message.
				errorMsg = "The username is already taken"
			case err != nil:
				h.serverError(w, "create user", err)
				return
			default:
				h.flash(w, r, "You were successfully signed up and can log in now")
				http.Redirect(w, r, "/log_in", http.StatusFound)
				return
			}
		}
	}

	h.Renderer.Render(w, r, "sign_up.html", map[string]interface{}{
		"error": errorMsg,
	})
}

func (h *Handler) usernameTaken(username string) bool {
	var count int64
	h.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// GET + POST /log_in
func (h *Handler) LogIn(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	errorMsg := ""
	if r.Method == http.MethodPost {
		username := r.FormValue("username")
		password := r.FormValue("password")

		var user models.User
		err := h.DB.Where("username = ?", username).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			checkPassword(string(dummyHash), password)
			errorMsg = genericLogInError
		case err != nil:
			h.serverError(w, "look up user", err)
			return
		case !checkPassword(user.PasswordHash, password):
			errorMsg = genericLogInError
		default:
			session, _ := h.Store.Get(r, middleware.SessionName)
			for k := range session.Values {
				delete(session.Values, k)
			}
			session.Values["user_id"] = user.ID
			session.Save(r, w)
			h.flash(w, r, "You were logged in")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}

	h.Renderer.Render(w, r, "log_in.html", map[string]interface{}{
		"error": errorMsg,
	})
}

// GET + DELETE /log_out — clears the session whether or not anyone was
// logged in.
func (h *Handler) LogOut(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, middleware.SessionName)
	for k := range session.Values {
		delete(session.Values, k)
	}
	session.Save(r, w)
	h.flash(w, r, "You were logged out")
	http.Redirect(w, r, "/log_in", http.StatusFound)
}
