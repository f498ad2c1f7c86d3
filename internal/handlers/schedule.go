package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/movehub/moving-app/internal/middleware"
	"github.com/movehub/moving-app/internal/models"
	"gorm.io/gorm"
)

type ScheduleHandler struct{ DB *gorm.DB }

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler { return &ScheduleHandler{DB: db} }

// Handle serves /schedule (staff only, enforced by the router's gate):
// GET lists entries by (date, time) plus quotes still eligible for
// scheduling, POST creates an entry for the posted quote_id.
func (h *ScheduleHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.create(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET,POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var entries []models.ScheduleEntry
	if err := h.DB.Preload("Quote.Customer").
		Order("scheduled_date, scheduled_time").
		Find(&entries).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var quotes []models.Quote
	if err := h.DB.Preload("Customer").
		Where("status IN ?", []string{models.QuoteStatusPending, models.QuoteStatusApproved}).
		Find(&quotes).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "schedule", map[string]any{
		"Schedules": entries,
		"Quotes":    quotes,
		"Flash":     middleware.PopFlash(w, r),
	})
}

func (h *ScheduleHandler) create(w http.ResponseWriter, r *http.Request) {
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
	scheduledDate, _ := time.Parse("2006-01-02", r.FormValue("scheduled_date"))
	entry := models.ScheduleEntry{
		QuoteID:       quote.ID,
		ScheduledDate: scheduledDate,
		ScheduledTime: strings.TrimSpace(r.FormValue("scheduled_time")),
		DriverName:    strings.TrimSpace(r.FormValue("driver_name")),
		VehicleNumber: strings.TrimSpace(r.FormValue("vehicle_number")),
		Notes:         r.FormValue("notes"),
		Status:        models.ScheduleStatusScheduled,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	middleware.Flash(w, "Move scheduled for "+r.FormValue("scheduled_date")+" at "+entry.ScheduledTime)
	http.Redirect(w, r, "/schedule", statusSeeOther)
}
