package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/movehub/moving-app/internal/metrics"
	"github.com/movehub/moving-app/internal/middleware"
	"github.com/movehub/moving-app/internal/models"
	"github.com/movehub/moving-app/internal/policy"
	"github.com/movehub/moving-app/internal/services"
	"gorm.io/gorm"
)

type QuoteHandler struct {
	DB   *gorm.DB
	Svc  *services.QuoteService
	Gate *policy.AuthGate
}

func NewQuoteHandler(db *gorm.DB, svc *services.QuoteService, gate *policy.AuthGate) *QuoteHandler {
	return &QuoteHandler{DB: db, Svc: svc, Gate: gate}
}

// Handle serves GET /quote (form) and POST /quote (create).
func (h *QuoteHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderTemplate(w, r, "quote_form", map[string]any{"Flash": middleware.PopFlash(w, r)})
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	// Numeric fields fall back to zero on malformed input, like the form's
	// empty defaults.
	items, _ := strconv.Atoi(r.FormValue("items"))
	distance, _ := strconv.ParseFloat(r.FormValue("distance_km"), 64)
	moveDate, _ := time.Parse("2006-01-02", r.FormValue("move_date"))

	in := services.QuoteInput{
		CustomerName: strings.TrimSpace(r.FormValue("customer_name")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Address:      strings.TrimSpace(r.FormValue("address")),
		MoveDate:     moveDate,
		Items:        items,
		DistanceKM:   distance,
	}
	quote, err := h.Svc.Submit(in)
	if err != nil {
		if errors.Is(err, services.ErrMissingEmail) {
			renderTemplate(w, r, "quote_form", map[string]any{"Error": "Customer email is required."})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("could not create quote")); werr != nil {
			_ = werr
		}
		return
	}
	metrics.RecordQuoteOperation("create")
	middleware.Flash(w, fmt.Sprintf("Quote created successfully! Estimated cost: %.2f", quote.EstimatedCost))
	http.Redirect(w, r, "/quote/"+strconv.FormatUint(uint64(quote.ID), 10), statusSeeOther)
}

// Detail serves GET /quote/{id}.
func (h *QuoteHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	var quote models.Quote
	err = h.DB.Preload("Customer").
		Preload("InventoryItems").
		Preload("Schedules").
		Preload("InsuranceClaims").
		First(&quote, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	ident := h.Gate.IdentityFrom(r.Context())
	renderTemplate(w, r, "quote_detail", map[string]any{
		"Quote": quote,
		"Staff": h.Gate.Gate.Can(ident, policy.ActionUpdateStatus, policy.ResourceQuote),
		"Flash": middleware.PopFlash(w, r),
	})
}

// UpdateStatus serves POST /quote/{id}/update-status (staff only, enforced by
// the router's gate middleware). The new status overwrites the row as-is: the
// transition is not validated.
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	var quote models.Quote
	if err := h.DB.First(&quote, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	newStatus := r.FormValue("status")
	if err := h.DB.Model(&quote).Update("status", newStatus).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	metrics.RecordQuoteOperation("update-status")
	middleware.Flash(w, "Quote status updated to "+newStatus)
	http.Redirect(w, r, "/quote/"+strconv.Itoa(id), statusSeeOther)
}
