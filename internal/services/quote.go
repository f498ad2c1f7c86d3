package services

import (
	"errors"
	"time"

	"github.com/movehub/moving-app/internal/models"
	"gorm.io/gorm"
)

// QuoteInput carries the parsed quote form.
type QuoteInput struct {
	CustomerName string
	Phone        string
	Email        string
	Address      string
	MoveDate     time.Time
	Items        int
	DistanceKM   float64
}

var ErrMissingEmail = errors.New("missing_customer_email")

// QuoteService creates quotes and maintains the customer book.
type QuoteService struct {
	DB      *gorm.DB
	Pricing *PricingService
}

func NewQuoteService(db *gorm.DB, pricing *PricingService) *QuoteService {
	return &QuoteService{DB: db, Pricing: pricing}
}

// Submit computes the estimate, upserts the customer by email and creates the
// quote, all in one transaction. The upsert is an explicit lookup then
// conditional write: an existing customer's name/phone/address are
// overwritten, a new one is inserted. The unique index on customer email
// turns the lookup/insert race between identical concurrent submissions into
// a constraint error instead of a duplicate row.
func (s *QuoteService) Submit(in QuoteInput) (*models.Quote, error) {
	if in.Email == "" {
		return nil, ErrMissingEmail
	}
	quote := models.Quote{
		MoveDate:      in.MoveDate,
		Items:         in.Items,
		DistanceKM:    in.DistanceKM,
		EstimatedCost: s.Pricing.Estimate(in.Items, in.DistanceKM),
		Status:        models.QuoteStatusPending,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		err := tx.Where("email = ?", in.Email).First(&customer).Error
		switch {
		case err == nil:
			customer.Name = in.CustomerName
			customer.Phone = in.Phone
			customer.Address = in.Address
			if err := tx.Save(&customer).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			customer = models.Customer{Name: in.CustomerName, Phone: in.Phone, Email: in.Email, Address: in.Address}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		default:
			return err
		}
		quote.CustomerID = customer.ID
		return tx.Create(&quote).Error
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
