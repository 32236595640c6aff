package customer

import (
	"strings"
	"time"
)

type Customer struct {
	ID          int64
	OwnerID     int64
	Name        string
	Phone       string
	Address     string
	TrustScore  int
	CreditLimit float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields are the owner-editable attributes of a customer.
type Fields struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Phone       string   `json:"phone" validate:"required,mobile"`
	Address     string   `json:"address" validate:"required,notblank"`
	TrustScore  *int     `json:"trustScore" validate:"required,min=0,max=10"`
	CreditLimit *float64 `json:"creditLimit" validate:"required,gte=0,lte=999999999999.99,cents"`
}

func (Fields) FieldMessages() map[string]string {
	return map[string]string{
		"name":        "Name is required",
		"phone":       "Phone number must be valid",
		"address":     "Address is required",
		"trustScore":  "Trust score must be between 0 and 10",
		"creditLimit": "Credit limit must be a non-negative number",
	}
}

func (f Fields) normalized() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

// NewCustomer builds an unsaved customer from validated fields.
func NewCustomer(ownerID int64, f Fields) *Customer {
	c := &Customer{OwnerID: ownerID}
	c.apply(f)
	return c
}

func (c *Customer) apply(f Fields) {
	c.Name = f.Name
	c.Phone = f.Phone
	c.Address = f.Address
	if f.TrustScore != nil {
		c.TrustScore = *f.TrustScore
	}
	if f.CreditLimit != nil {
		c.CreditLimit = *f.CreditLimit
	}
}

func (c *Customer) OwnedBy(ownerID int64) bool {
	return c.OwnerID == ownerID
}
