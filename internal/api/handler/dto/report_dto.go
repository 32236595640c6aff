package dto

import "loan-ledger/internal/domain/report"

type SummaryResponse struct {
	TotalLoaned    string `json:"totalLoaned" example:"1500.00"`
	TotalCollected string `json:"totalCollected" example:"400.00"`
	OverdueAmount  string `json:"overdueAmount" example:"500.00"`
	// AverageRepaymentDays is null when nothing has been repaid yet.
	AverageRepaymentDays *float64 `json:"averageRepaymentDays"`
	AsOf                 string   `json:"asOf" example:"2024-03-15"`
}

type OverdueEntryResponse struct {
	LoanID       string `json:"loanId"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	IssueDate    string `json:"issueDate"`
	DueDate      string `json:"dueDate"`
	Balance      string `json:"balance"`
}

func NewSummaryResponse(s *report.Summary) SummaryResponse {
	return SummaryResponse{
		TotalLoaned:          formatMoney(s.TotalLoaned),
		TotalCollected:       formatMoney(s.TotalCollected),
		OverdueAmount:        formatMoney(s.OverdueAmount),
		AverageRepaymentDays: s.AverageRepaymentDays,
		AsOf:                 formatDate(s.AsOf),
	}
}

func NewOverdueListResponse(entries []report.OverdueEntry) []OverdueEntryResponse {
	out := make([]OverdueEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, OverdueEntryResponse{
			LoanID:       formatID(e.LoanID),
			CustomerID:   formatID(e.CustomerID),
			CustomerName: e.CustomerName,
			IssueDate:    formatDate(e.IssueDate),
			DueDate:      formatDate(e.DueDate),
			Balance:      formatMoney(e.Balance),
		})
	}
	return out
}
