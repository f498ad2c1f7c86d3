package models

// InventoryItem belongs to a quote. Quantity >= 1 expected but not enforced.
type InventoryItem struct {
	ID       uint   `gorm:"primaryKey"`
	QuoteID  uint   `gorm:"not null;index"`
	ItemName string `gorm:"not null"`
	Quantity int    `gorm:"not null"`
	Fragile  bool   `gorm:"not null;default:false"`
}
