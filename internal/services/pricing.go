package services

// Fixed pricing rates. Currency formatting is left to the templates.
const (
	BaseFee     = 500.0
	PerKMRate   = 15.0
	PerItemRate = 50.0
)

// PricingService computes move estimates. Pure and total: any non-negative
// input yields a value, there are no failure modes.
type PricingService struct{}

func NewPricingService() *PricingService { return &PricingService{} }

// Estimate returns base fee + per-kilometer rate * distance + per-item rate * items.
func (s *PricingService) Estimate(items int, distanceKM float64) float64 {
	return BaseFee + PerKMRate*distanceKM + PerItemRate*float64(items)
}
