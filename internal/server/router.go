package server

import (
	"context"
	"net/http"
	"time"

	"github.com/movehub/moving-app/internal/auth"
	"github.com/movehub/moving-app/internal/handlers"
	"github.com/movehub/moving-app/internal/httpx"
	"github.com/movehub/moving-app/internal/policy"
	"github.com/movehub/moving-app/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const staffCacheTTL = 5 * time.Minute

// New constructs the application router with all routes and middleware.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	gate := policy.NewAuthGate(db, staffCacheTTL)

	// RequireAuth drops sessions whose account no longer exists.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		ident, err := policy.NewDBResolver(db).Resolve(ctx, uid)
		return err == nil && !ident.Anonymous()
	})

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter
	mux.Handle("/metrics", promhttp.Handler())

	// Accounts
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	authed := func(h http.HandlerFunc) http.Handler {
		return auth.RequireAuth(h)
	}

	// Quotes
	qh := handlers.NewQuoteHandler(db, services.NewQuoteService(db, services.NewPricingService()), gate)
	mux.Handle("/quote", authed(qh.Handle))
	mux.Handle("/quote/{id}", authed(qh.Detail))
	mux.Handle("POST /quote/{id}/update-status",
		gate.Require(policy.ResourceQuote, policy.ActionUpdateStatus)(http.HandlerFunc(qh.UpdateStatus)))

	// Inventory
	ih := handlers.NewInventoryHandler(db)
	mux.Handle("/inventory", authed(ih.Index))
	mux.Handle("/inventory/{id}", authed(ih.Detail))

	// Scheduling (staff only, both list and create)
	sh := handlers.NewScheduleHandler(db)
	mux.Handle("/schedule",
		gate.Require(policy.ResourceSchedule, policy.ActionView)(http.HandlerFunc(sh.Handle)))

	// Insurance
	insh := handlers.NewInsuranceHandler(db, gate)
	mux.Handle("/insurance", authed(insh.Handle))
	mux.Handle("POST /insurance/{id}/update-status",
		gate.Require(policy.ResourceClaim, policy.ActionUpdateStatus)(http.HandlerFunc(insh.UpdateStatus)))

	return auth.Middleware(withRecover(mux))
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.WriteHeader(http.StatusInternalServerError)
				if _, werr := w.Write([]byte("internal error")); werr != nil {
					_ = werr
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
