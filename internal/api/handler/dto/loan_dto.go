package dto

import (
	"time"

	"loan-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type IssueLoanRequest struct {
	CustomerID int64            `json:"customerId" example:"7"`
	ItemDesc   string           `json:"itemDesc" example:"Rice 25kg"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string" example:"1000.00"`
	IssueDate  string           `json:"issueDate" example:"2024-01-01"`
	DueDate    string           `json:"dueDate" example:"2024-02-01"`
	Frequency  string           `json:"frequency" example:"monthly"`
	Status     string           `json:"status,omitempty" example:"pending"`
	// UserID is accepted for compatibility and ignored; ownership comes from the token.
	UserID *int64 `json:"userId,omitempty" swaggerignore:"true"`
}

func (r IssueLoanRequest) ToFields() loan.IssueFields {
	return loan.IssueFields{
		CustomerID: r.CustomerID,
		ItemDesc:   r.ItemDesc,
		Amount:     decimalToFloat(r.Amount),
		IssueDate:  r.IssueDate,
		DueDate:    r.DueDate,
		Frequency:  r.Frequency,
		Status:     r.Status,
	}
}

type LoanResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	ItemDesc     string    `json:"itemDesc"`
	Amount       string    `json:"amount"`
	Balance      string    `json:"balance"`
	IssueDate    string    `json:"issueDate"`
	DueDate      string    `json:"dueDate"`
	Frequency    string    `json:"frequency"`
	Status       string    `json:"status"`
	Overdue      bool      `json:"overdue"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewLoanResponse renders l with its overdue flag evaluated at asOf.
func NewLoanResponse(l *loan.Loan, asOf time.Time) LoanResponse {
	if l == nil {
		return LoanResponse{}
	}
	return LoanResponse{
		ID:           formatID(l.ID),
		CustomerID:   formatID(l.CustomerID),
		CustomerName: l.CustomerName,
		ItemDesc:     l.ItemDesc,
		Amount:       formatMoney(l.Amount),
		Balance:      formatMoney(l.Balance),
		IssueDate:    formatDate(l.IssueDate),
		DueDate:      formatDate(l.DueDate),
		Frequency:    string(l.Frequency),
		Status:       string(l.Status),
		Overdue:      l.IsOverdue(asOf),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func NewLoanListResponse(ls []*loan.Loan, asOf time.Time) []LoanResponse {
	out := make([]LoanResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewLoanResponse(l, asOf))
	}
	return out
}
