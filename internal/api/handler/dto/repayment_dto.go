package dto

import (
	"time"

	"loan-ledger/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

type RecordRepaymentRequest struct {
	LoanID int64            `json:"loanId" example:"10"`
	Amount *decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
	Date   string           `json:"date" example:"2024-01-20"`
}

func (r RecordRepaymentRequest) ToFields() repayment.RecordFields {
	return repayment.RecordFields{
		LoanID: r.LoanID,
		Amount: decimalToFloat(r.Amount),
		Date:   r.Date,
	}
}

type RepaymentResponse struct {
	ID        string    `json:"id"`
	LoanID    string    `json:"loanId"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReceiptResponse struct {
	Repayment RepaymentResponse `json:"repayment"`
	Loan      LoanResponse      `json:"loan"`
}

func NewRepaymentResponse(r *repayment.Repayment) RepaymentResponse {
	if r == nil {
		return RepaymentResponse{}
	}
	return RepaymentResponse{
		ID:        formatID(r.ID),
		LoanID:    formatID(r.LoanID),
		Amount:    formatMoney(r.Amount),
		Date:      formatDate(r.Date),
		CreatedAt: r.CreatedAt,
	}
}

func NewRepaymentListResponse(rs []*repayment.Repayment) []RepaymentResponse {
	out := make([]RepaymentResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewRepaymentResponse(r))
	}
	return out
}

func NewReceiptResponse(r *repayment.Receipt, asOf time.Time) ReceiptResponse {
	return ReceiptResponse{
		Repayment: NewRepaymentResponse(r.Repayment),
		Loan:      NewLoanResponse(r.Loan, asOf),
	}
}
