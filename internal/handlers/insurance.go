package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/movehub/moving-app/internal/metrics"
	"github.com/movehub/moving-app/internal/middleware"
	"github.com/movehub/moving-app/internal/models"
	"github.com/movehub/moving-app/internal/policy"
	"gorm.io/gorm"
)

type InsuranceHandler struct {
	DB   *gorm.DB
	Gate *policy.AuthGate
}

func NewInsuranceHandler(db *gorm.DB, gate *policy.AuthGate) *InsuranceHandler {
	return &InsuranceHandler{DB: db, Gate: gate}
}

// Handle serves /insurance: GET lists claims newest-first, POST files a claim.
func (h *InsuranceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.create(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var claims []models.InsuranceClaim
	if err := h.DB.Preload("Quote.Customer").Order("created_at desc").Find(&claims).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var quotes []models.Quote
	if err := h.DB.Preload("Customer").Find(&quotes).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	ident := h.Gate.IdentityFrom(r.Context())
	renderTemplate(w, r, "insurance", map[string]any{
		"Claims": claims,
		"Quotes": quotes,
		"Staff":  h.Gate.Gate.Can(ident, policy.ActionUpdateStatus, policy.ResourceClaim),
		"Flash":  middleware.PopFlash(w, r),
	})
}

func (h *InsuranceHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	quoteID, err := strconv.Atoi(r.FormValue("quote_id"))
	if err != nil || quoteID <= 0 {
		http.NotFound(w, r)
		return
	}
	var quote models.Quote
	if err := h.DB.First(&quote, quoteID).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	// Staff may choose the initial status; everyone else is forced to
	// Pending no matter what the form carried.
	ident := h.Gate.IdentityFrom(r.Context())
	claimStatus := models.ClaimStatusPending
	if ident.Staff {
		if v := r.FormValue("claim_status"); v != "" {
			claimStatus = v
		}
	}

	var amount *float64
	if v := strings.TrimSpace(r.FormValue("claim_amount")); v != "" {
		if f, convErr := strconv.ParseFloat(v, 64); convErr == nil {
			amount = &f
		}
	}
	claim := models.InsuranceClaim{
		QuoteID:          quote.ID,
		ClaimStatus:      claimStatus,
		ClaimAmount:      amount,
		ClaimDescription: r.FormValue("claim_description"),
	}
	if err := h.DB.Create(&claim).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	metrics.RecordClaimOperation("create")
	if ident.Staff {
		middleware.Flash(w, "Insurance claim created with status: "+claimStatus)
	} else {
		middleware.Flash(w, "Insurance claim submitted successfully! It will be reviewed by admin.")
	}
	http.Redirect(w, r, "/insurance", statusSeeOther)
}

// UpdateStatus serves POST /insurance/{id}/update-status (staff only via the
// router's gate). Overwrites the status and, when posted, the amount.
func (h *InsuranceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	var claim models.InsuranceClaim
	if err := h.DB.First(&claim, id).Error; err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	claim.ClaimStatus = r.FormValue("status")
	if v := strings.TrimSpace(r.FormValue("claim_amount")); v != "" {
		if f, convErr := strconv.ParseFloat(v, 64); convErr == nil {
			claim.ClaimAmount = &f
		}
	}
	if err := h.DB.Save(&claim).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	metrics.RecordClaimOperation("update-status")
	middleware.Flash(w, "Insurance claim status updated to "+claim.ClaimStatus)
	http.Redirect(w, r, "/insurance", statusSeeOther)
}
