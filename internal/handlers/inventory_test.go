package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/movehub/moving-app/internal/models"
)

func TestInventoryIndexListsQuotes(t *testing.T) {
	db := setupDB(t)
	seedQuote(t, db, "asha@example.com")
	h := NewInventoryHandler(db)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/inventory", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Seed Customer") {
		t.Fatal("quote list should show the customer name")
	}
}

func TestInventoryAddItem(t *testing.T) {
	db := setupDB(t)
	quote := seedQuote(t, db, "asha@example.com")
	h := NewInventoryHandler(db)

	form := url.Values{
		"item_name": {"Piano"},
		"quantity":  {"2"},
		"fragile":   {"on"},
	}
	req := formRequest("/inventory/1", form)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	if rec.Code != statusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	var item models.InventoryItem
	if err := db.Where("quote_id = ?", quote.ID).First(&item).Error; err != nil {
		t.Fatalf("item not created: %v", err)
	}
	if item.ItemName != "Piano" || item.Quantity != 2 || !item.Fragile {
		t.Fatalf("unexpected item %+v", item)
	}
	if msg := flashValue(t, rec); !strings.Contains(msg, `Item "Piano" added to inventory.`) {
		t.Fatalf("unexpected flash %q", msg)
	}
}

func TestInventoryBadQuantityDefaultsToOne(t *testing.T) {
	db := setupDB(t)
	seedQuote(t, db, "asha@example.com")
	h := NewInventoryHandler(db)

	req := formRequest("/inventory/1", url.Values{"item_name": {"Lamp"}, "quantity": {"lots"}})
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	var item models.InventoryItem
	if err := db.Where("item_name = ?", "Lamp").First(&item).Error; err != nil {
		t.Fatalf("item not created: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", item.Quantity)
	}
	if item.Fragile {
		t.Fatal("unchecked box must mean not fragile")
	}
}

func TestInventoryDetailListsItems(t *testing.T) {
	db := setupDB(t)
	quote := seedQuote(t, db, "asha@example.com")
	for _, name := range []string{"Sofa", "Bookshelf"} {
		item := models.InventoryItem{QuoteID: quote.ID, ItemName: name, Quantity: 1}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("seed item: %v", err)
		}
	}
	h := NewInventoryHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/inventory/1", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sofa") || !strings.Contains(body, "Bookshelf") {
		t.Fatal("item list should show every item")
	}
}

func TestInventoryDetailUnknownQuote(t *testing.T) {
	db := setupDB(t)
	h := NewInventoryHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/inventory/42", nil)
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.Detail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
