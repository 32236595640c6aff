package event

import (
	"context"
	"time"
)

const (
	RoutingKeyLoanIssued        = "loan.issued"
	RoutingKeyRepaymentRecorded = "repayment.recorded"
	RoutingKeyLoanSettled       = "loan.settled"
	publisherAppID              = "loan-ledger"
)

type LoanIssuedEvent struct {
	LoanID     int64     `json:"loanId"`
	OwnerID    int64     `json:"ownerId"`
	CustomerID int64     `json:"customerId"`
	Amount     string    `json:"amount"`
	DueDate    string    `json:"dueDate"`
	Frequency  string    `json:"frequency"`
	Timestamp  time.Time `json:"timestamp"`
}

type RepaymentRecordedEvent struct {
	RepaymentID int64     `json:"repaymentId"`
	LoanID      int64     `json:"loanId"`
	OwnerID     int64     `json:"ownerId"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	NewBalance  string    `json:"newBalance"`
	Timestamp   time.Time `json:"timestamp"`
}

type LoanSettledEvent struct {
	LoanID     int64     `json:"loanId"`
	OwnerID    int64     `json:"ownerId"`
	CustomerID int64     `json:"customerId"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventPublisher emits ledger events after the owning transaction has committed.
type EventPublisher interface {
	PublishLoanIssued(ctx context.Context, event LoanIssuedEvent) error
	PublishRepaymentRecorded(ctx context.Context, event RepaymentRecordedEvent) error
	PublishLoanSettled(ctx context.Context, event LoanSettledEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

var _ EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishLoanIssued(context.Context, LoanIssuedEvent) error { return nil }

func (NoopPublisher) PublishRepaymentRecorded(context.Context, RepaymentRecordedEvent) error {
	return nil
}

func (NoopPublisher) PublishLoanSettled(context.Context, LoanSettledEvent) error { return nil }
