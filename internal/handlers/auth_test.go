package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/movehub/moving-app/internal/models"
)

func signupForm(username, pass1, pass2 string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"password1": {pass1},
		"password2": {pass2},
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.signup(rec, formRequest("/signup", signupForm("newuser", "short77", "short77")))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected re-rendered form, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Password must be at least 8 characters long.") {
		t.Fatal("expected password length error in response")
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("no account should exist, got %d", count)
	}
}

func TestSignupAcceptsEightCharPassword(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.signup(rec, formRequest("/signup", signupForm("newuser", "exactly8", "exactly8")))

	if rec.Code != statusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	var user models.User
	if err := db.Where("username = ?", "newuser").First(&user).Error; err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if user.IsStaff {
		t.Fatal("self-signup must never grant staff")
	}

	var gotSession bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			gotSession = true
		}
	}
	if !gotSession {
		t.Fatal("signup should log the new account in")
	}
}

func TestSignupRejectsPasswordMismatch(t *testing.T) {
	db := setupDB(t)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.signup(rec, formRequest("/signup", signupForm("newuser", "password123", "password124")))

	if !strings.Contains(rec.Body.String(), "Passwords do not match.") {
		t.Fatal("expected mismatch error in response")
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatal("mismatched passwords must not create an account")
	}
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "taken", false)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.signup(rec, formRequest("/signup", signupForm("taken", "password123", "password123")))

	if !strings.Contains(rec.Body.String(), "Username already exists. Please choose a different one.") {
		t.Fatal("expected duplicate username error in response")
	}
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected only the seeded account, got %d", count)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "alice", false)
	h := NewAuthHandler(db)

	cases := []url.Values{
		{"username": {"nosuchuser"}, "password": {"password123"}},
		{"username": {"alice"}, "password": {"wrongpass"}},
	}
	for _, form := range cases {
		rec := httptest.NewRecorder()
		h.login(rec, formRequest("/login", form))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected re-rendered form, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid username or password.") {
			t.Fatal("expected the single generic failure message")
		}
	}
}

func TestLoginSetsSessionAndRedirects(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "alice", false)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.login(rec, formRequest("/login", url.Values{"username": {"alice"}, "password": {"password123"}}))

	if rec.Code != statusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if msg := flashValue(t, rec); !strings.Contains(msg, "Welcome back, alice!") {
		t.Fatalf("unexpected flash %q", msg)
	}
}

func TestLoginStaffGetsAdminGreeting(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "boss", true)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	h.login(rec, formRequest("/login", url.Values{"username": {"boss"}, "password": {"password123"}}))

	if msg := flashValue(t, rec); !strings.Contains(msg, "Welcome back, Admin boss!") {
		t.Fatalf("unexpected flash %q", msg)
	}
}

func TestLoginHonoursNextRedirect(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "alice", false)
	h := NewAuthHandler(db)

	rec := httptest.NewRecorder()
	form := url.Values{"username": {"alice"}, "password": {"password123"}, "next": {"/schedule"}}
	h.login(rec, formRequest("/login", form))
	if loc := rec.Header().Get("Location"); loc != "/schedule" {
		t.Fatalf("expected redirect to /schedule, got %q", loc)
	}
}

func TestLoginSanitisesNextRedirect(t *testing.T) {
	db := setupDB(t)
	seedUser(t, db, "alice", false)
	h := NewAuthHandler(db)

	for _, next := range []string{"https://evil.example", "//evil.example", "evil"} {
		rec := httptest.NewRecorder()
		form := url.Values{"username": {"alice"}, "password": {"password123"}, "next": {next}}
		h.login(rec, formRequest("/login", form))
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Fatalf("next %q should fall back to /, got %q", next, loc)
		}
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := setupDB(t)
	user := seedUser(t, db, "alice", false)
	h := NewAuthHandler(db)

	req := asUser(httptest.NewRequest(http.MethodGet, "/logout", nil), user.ID)
	rec := httptest.NewRecorder()
	h.logout(rec, req)

	if rec.Code != statusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout must expire the session cookie")
	}
	if msg := flashValue(t, rec); !strings.Contains(msg, "successfully logged out") {
		t.Fatalf("unexpected flash %q", msg)
	}
}
