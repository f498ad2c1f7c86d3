package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/movehub/moving-app/internal/middleware"
	"github.com/movehub/moving-app/internal/models"
	"gorm.io/gorm"
)

type InventoryHandler struct{ DB *gorm.DB }

func NewInventoryHandler(db *gorm.DB) *InventoryHandler { return &InventoryHandler{DB: db} }

// Index serves GET /inventory: no quote selected yet, list all quotes.
func (h *InventoryHandler) Index(w http.ResponseWriter, r *http.Request) {
	var quotes []models.Quote
	if err := h.DB.Preload("Customer").Order("id desc").Find(&quotes).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "inventory", map[string]any{
		"Quotes": quotes,
		"Flash":  middleware.PopFlash(w, r),
	})
}

// Detail serves /inventory/{id}: GET lists the quote's items, POST appends one.
func (h *InventoryHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	var quote models.Quote
	if err := h.DB.Preload("Customer").First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		itemName := strings.TrimSpace(r.FormValue("item_name"))
		quantity, convErr := strconv.Atoi(r.FormValue("quantity"))
		if convErr != nil {
			quantity = 1
		}
		item := models.InventoryItem{
			QuoteID:  quote.ID,
			ItemName: itemName,
			Quantity: quantity,
			Fragile:  r.FormValue("fragile") == "on",
		}
		if err := h.DB.Create(&item).Error; err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		middleware.Flash(w, "Item \""+itemName+"\" added to inventory.")
		http.Redirect(w, r, "/inventory/"+strconv.Itoa(id), statusSeeOther)
		return
	}

	var items []models.InventoryItem
	if err := h.DB.Where("quote_id = ?", quote.ID).Find(&items).Error; err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "inventory", map[string]any{
		"Quote": quote,
		"Items": items,
		"Flash": middleware.PopFlash(w, r),
	})
}
