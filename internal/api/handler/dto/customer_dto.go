package dto

import (
	"time"

	"loan-ledger/internal/domain/customer"

	"github.com/shopspring/decimal"
)

type CustomerRequest struct {
	Name        string           `json:"name" example:"Asha Rao"`
	Phone       string           `json:"phone" example:"9876543210"`
	Address     string           `json:"address" example:"12 Market Road"`
	TrustScore  *int             `json:"trustScore" example:"8"`
	CreditLimit *decimal.Decimal `json:"creditLimit" swaggertype:"string" example:"5000.00"`
}

func (r CustomerRequest) ToFields() customer.Fields {
	return customer.Fields{
		Name:        r.Name,
		Phone:       r.Phone,
		Address:     r.Address,
		TrustScore:  r.TrustScore,
		CreditLimit: decimalToFloat(r.CreditLimit),
	}
}

type CustomerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	TrustScore  int       `json:"trustScore"`
	CreditLimit string    `json:"creditLimit"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	if c == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:          formatID(c.ID),
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		TrustScore:  c.TrustScore,
		CreditLimit: formatMoney(c.CreditLimit),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCustomerListResponse(cs []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

// decimalToFloat keeps a missing value missing so the validator can report it.
func decimalToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.Round(2).InexactFloat64()
	return &f
}
