package loan

import (
	"fmt"
	"time"

	"loan-ledger/internal/pkg/apperrors"
)

type Frequency string

const (
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Status is the persisted state. Overdue is never stored; see IsOverdue.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// StatusFilter selects loans in List. The zero value matches every loan.
type StatusFilter string

const (
	FilterAll     StatusFilter = ""
	FilterPending StatusFilter = "pending"
	FilterPaid    StatusFilter = "paid"
	FilterOverdue StatusFilter = "overdue"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(s); f {
	case FilterAll, FilterPending, FilterPaid, FilterOverdue:
		return f, nil
	default:
		return "", apperrors.ValidationErrors{}.Add("status", "Status filter must be one of pending, paid, overdue")
	}
}

type Loan struct {
	ID         int64
	CustomerID int64
	// OwnerID and CustomerName come from the customer join and are zero for orphaned loans.
	OwnerID      int64
	CustomerName string
	ItemDesc     string
	Amount       Money
	Balance      Money
	IssueDate    time.Time
	DueDate      time.Time
	Frequency    Frequency
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLoan builds an unsaved pending loan whose balance equals its amount.
func NewLoan(customerID int64, itemDesc string, amount Money, issueDate, dueDate time.Time, freq Frequency) *Loan {
	return &Loan{
		CustomerID: customerID,
		ItemDesc:   itemDesc,
		Amount:     amount,
		Balance:    amount,
		IssueDate:  DateOf(issueDate),
		DueDate:    DateOf(dueDate),
		Frequency:  freq,
		Status:     StatusPending,
	}
}

func (l *Loan) IsSettled() bool {
	return CompareMoney(l.Balance, 0) <= 0
}

// IsOverdue reports whether the loan is still owed and its due date falls strictly before asOf's date.
func (l *Loan) IsOverdue(asOf time.Time) bool {
	return l.Status == StatusPending && !l.IsSettled() && DateOf(l.DueDate).Before(DateOf(asOf))
}

// ApplyRepayment reduces the balance and flips the status to paid once nothing is owed.
func (l *Loan) ApplyRepayment(amount Money) error {
	if l.IsSettled() {
		return fmt.Errorf("%w: loan %d", apperrors.ErrAlreadySettled, l.ID)
	}
	if CompareMoney(amount, l.Balance) > 0 {
		return fmt.Errorf("%w: amount %s exceeds balance %s", apperrors.ErrOverpayment, FormatMoney(amount), FormatMoney(l.Balance))
	}

	l.Balance = SubtractMoney(l.Balance, amount)
	if l.IsSettled() {
		l.Balance = 0
		l.Status = StatusPaid
	} else {
		l.Status = StatusPending
	}
	return nil
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
