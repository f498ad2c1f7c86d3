package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/movehub/moving-app/internal/auth"
	"github.com/movehub/moving-app/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a per-test shared-memory sqlite database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Quote{},
		&models.InventoryItem{},
		&models.ScheduleEntry{},
		&models.InsuranceClaim{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, staff bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Username: username, Email: username + "@example.com", Password: string(hash), IsStaff: staff}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedQuote(t *testing.T, db *gorm.DB, email string) models.Quote {
	t.Helper()
	customer := models.Customer{Name: "Seed Customer", Phone: "555-0100", Email: email, Address: "1 Seed St"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	quote := models.Quote{
		CustomerID:    customer.ID,
		MoveDate:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Items:         3,
		DistanceKM:    10,
		EstimatedCost: 800,
		Status:        models.QuoteStatusPending,
	}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return quote
}

// formRequest builds a POST with url-encoded form data, as the browser sends.
func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// asUser attaches a session user id the way auth.Middleware would.
func asUser(r *http.Request, uid uint) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), uid))
}

func flashValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			v, err := url.QueryUnescape(c.Value)
			if err != nil {
				t.Fatalf("unescape flash: %v", err)
			}
			return v
		}
	}
	return ""
}
