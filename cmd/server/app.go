package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/movehub/moving-app/internal/auth"
	"github.com/movehub/moving-app/internal/middleware"
	"github.com/movehub/moving-app/internal/models"
	"github.com/movehub/moving-app/internal/server"
	"github.com/movehub/moving-app/internal/view"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentQuoteLimit = 10

// NewApp bundles static assets, the public dashboard and the routed
// application into one handler, so e2e tests can drive the whole app.
func NewApp(dbConn *gorm.DB, log *zap.Logger) http.Handler {
	rootAPI := server.New(dbConn)

	fs := http.FileServer(http.Dir("static"))
	staticHandler := http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Ext(r.URL.Path) {
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}
		if os.Getenv("DEV") == "1" {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		}
		fs.ServeHTTP(w, r)
	}))

	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			staticHandler.ServeHTTP(w, r)
			return
		}
		if r.URL.Path == "/" {
			dashboard(dbConn, w, r)
			return
		}
		rootAPI.ServeHTTP(w, r)
	})

	return middleware.RequestID(middleware.Logging(log)(middleware.Metrics(base)))
}

// dashboard renders the public home page: recent quotes and counters, plus
// the logged-in user when a session is present.
func dashboard(dbConn *gorm.DB, w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Flash": middleware.PopFlash(w, r)}

	if uid, ok := auth.ParseSession(r); ok {
		var user models.User
		if err := dbConn.First(&user, uid).Error; err == nil {
			data["User"] = user
		}
	}

	var quotes []models.Quote
	dbConn.Preload("Customer").Order("created_at desc").Limit(recentQuoteLimit).Find(&quotes)
	data["Quotes"] = quotes

	var total, pending, completed int64
	dbConn.Model(&models.Quote{}).Count(&total)
	dbConn.Model(&models.Quote{}).Where("status = ?", models.QuoteStatusPending).Count(&pending)
	dbConn.Model(&models.Quote{}).Where("status = ?", models.QuoteStatusCompleted).Count(&completed)
	data["TotalQuotes"] = total
	data["PendingQuotes"] = pending
	data["CompletedQuotes"] = completed

	if err := view.Render(w, r, "home.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("render error")); werr != nil {
			_ = werr
		}
	}
}
