package handlers

import (
	"net/http"
	"strings"

	"github.com/movehub/moving-app/internal/auth"
	"github.com/movehub/moving-app/internal/metrics"
	"github.com/movehub/moving-app/internal/middleware"
	"github.com/movehub/moving-app/internal/models"
	"github.com/movehub/moving-app/internal/view"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Explicit constant for 303 See Other (Post/Redirect/Get)
const statusSeeOther = 303

const minPasswordLen = 8

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
}

// renderTemplate uses the shared view.Render so layout, partials and caching
// stay consistent across handlers.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "signup", nil)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	pass1 := r.FormValue("password1")
	pass2 := r.FormValue("password2")

	var count int64
	if err := h.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		renderTemplate(w, r, "signup", map[string]any{"Error": "Username already exists. Please choose a different one."})
		return
	}
	if pass1 != pass2 {
		renderTemplate(w, r, "signup", map[string]any{"Error": "Passwords do not match."})
		return
	}
	if len(pass1) < minPasswordLen {
		renderTemplate(w, r, "signup", map[string]any{"Error": "Password must be at least 8 characters long."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass1), bcrypt.DefaultCost)
	if err != nil {
		renderTemplate(w, r, "signup", map[string]any{"Error": "Could not create account."})
		return
	}
	user := models.User{Username: username, Email: email, Password: string(hash), IsStaff: false}
	if err := h.DB.Create(&user).Error; err != nil {
		renderTemplate(w, r, "signup", map[string]any{"Error": "Could not create account."})
		return
	}
	auth.CreateSession(w, user.ID)
	middleware.Flash(w, "Account created successfully! Welcome, "+username+"!")
	http.Redirect(w, r, "/", statusSeeOther)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "login", map[string]any{"Next": r.URL.Query().Get("next")})
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	metrics.AuthAttemptsCounter.Inc()
	username := strings.TrimSpace(r.FormValue("username"))
	pass := r.FormValue("password")

	// One generic failure message: never reveal which field was wrong.
	var user models.User
	if err := h.DB.Where("username = ?", username).First(&user).Error; err != nil {
		metrics.AuthErrorsCounter.Inc()
		renderTemplate(w, r, "login", map[string]any{"Error": "Invalid username or password."})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(pass)) != nil {
		metrics.AuthErrorsCounter.Inc()
		renderTemplate(w, r, "login", map[string]any{"Error": "Invalid username or password."})
		return
	}
	metrics.AuthSuccessCounter.Inc()
	auth.CreateSession(w, user.ID)
	if user.IsStaff {
		middleware.Flash(w, "Welcome back, Admin "+user.Username+"!")
	} else {
		middleware.Flash(w, "Welcome back, "+user.Username+"!")
	}
	next := r.FormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	http.Redirect(w, r, next, statusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		middleware.Flash(w, "You have been successfully logged out.")
	}
	auth.ClearSession(w)
	http.Redirect(w, r, "/", statusSeeOther)
}
