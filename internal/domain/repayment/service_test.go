package repayment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/repayment"
	"loan-ledger/internal/event"
	"loan-ledger/internal/pkg/apperrors"
	"loan-ledger/internal/pkg/validation"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ownerID = int64(1)

var tx pgx.Tx = &repayment.TxMock{}

type recordingPublisher struct {
	event.NoopPublisher
	recorded []event.RepaymentRecordedEvent
	settled  []event.LoanSettledEvent
}

func (p *recordingPublisher) PublishRepaymentRecorded(_ context.Context, e event.RepaymentRecordedEvent) error {
	p.recorded = append(p.recorded, e)
	return nil
}

func (p *recordingPublisher) PublishLoanSettled(_ context.Context, e event.LoanSettledEvent) error {
	p.settled = append(p.settled, e)
	return nil
}

type fixture struct {
	repo  *repayment.MockRepository
	loans *repayment.MockLoanRepository
	pub   *recordingPublisher
	svc   repayment.RepaymentService
}

func setup() fixture {
	f := fixture{
		repo:  new(repayment.MockRepository),
		loans: new(repayment.MockLoanRepository),
		pub:   &recordingPublisher{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = repayment.NewRepaymentService(f.repo, f.loans, validation.New(), f.pub, logger)
	return f
}

func amount(v float64) *float64 { return &v }

func pendingLoan(balance float64) *loan.Loan {
	return &loan.Loan{ID: 10, CustomerID: 3, OwnerID: ownerID, Amount: 1000, Balance: balance, Status: loan.StatusPending}
}

func fields(v float64) repayment.RecordFields {
	return repayment.RecordFields{LoanID: 10, Amount: amount(v), Date: "2024-01-20"}
}

func TestRepaymentService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial payment keeps loan pending", func(t *testing.T) {
		f := setup()
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(10)).Return(pendingLoan(1000), nil).Once()
		f.repo.On("InsertInTx", ctx, tx, mock.MatchedBy(func(r *repayment.Repayment) bool {
			ok := r.LoanID == 10 && r.Amount == 400 && r.Date.Equal(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
			if ok {
				r.ID = 77
			}
			return ok
		})).Return(nil).Once()
		f.loans.On("UpdateBalanceInTx", ctx, tx, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.Balance == 600 && l.Status == loan.StatusPending
		})).Return(nil).Once()
		f.loans.On("CommitTx", ctx, tx).Return(nil).Once()

		receipt, err := f.svc.Record(ctx, ownerID, fields(400))

		require.NoError(t, err)
		assert.Equal(t, int64(77), receipt.Repayment.ID)
		assert.Equal(t, 600.0, receipt.Loan.Balance)
		require.Len(t, f.pub.recorded, 1)
		assert.Equal(t, "600.00", f.pub.recorded[0].NewBalance)
		assert.Empty(t, f.pub.settled)
		f.loans.AssertNotCalled(t, "RollbackTx", mock.Anything, mock.Anything)
		f.loans.AssertExpectations(t)
		f.repo.AssertExpectations(t)
	})

	t.Run("Exact payment settles loan", func(t *testing.T) {
		f := setup()
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(10)).Return(pendingLoan(600), nil).Once()
		f.repo.On("InsertInTx", ctx, tx, mock.Anything).Return(nil).Once()
		f.loans.On("UpdateBalanceInTx", ctx, tx, mock.MatchedBy(func(l *loan.Loan) bool {
			return l.Balance == 0 && l.Status == loan.StatusPaid
		})).Return(nil).Once()
		f.loans.On("CommitTx", ctx, tx).Return(nil).Once()

		receipt, err := f.svc.Record(ctx, ownerID, fields(600))

		require.NoError(t, err)
		assert.Equal(t, loan.StatusPaid, receipt.Loan.Status)
		require.Len(t, f.pub.settled, 1)
		assert.Equal(t, int64(3), f.pub.settled[0].CustomerID)
	})

	rejected := []struct {
		name    string
		loan    *loan.Loan
		findErr error
		amount  float64
		want    error
	}{
		{name: "missing loan", findErr: apperrors.ErrNotFound, amount: 10, want: apperrors.ErrNotFound},
		{name: "other owner's loan", loan: &loan.Loan{ID: 10, OwnerID: 2, Balance: 500, Status: loan.StatusPending}, amount: 10, want: apperrors.ErrForbidden},
		{name: "orphaned loan", loan: &loan.Loan{ID: 10, OwnerID: 0, Balance: 500, Status: loan.StatusPending}, amount: 10, want: apperrors.ErrForbidden},
		{name: "settled loan", loan: &loan.Loan{ID: 10, OwnerID: ownerID, Balance: 0, Status: loan.StatusPaid}, amount: 10, want: apperrors.ErrAlreadySettled},
		{name: "overpayment", loan: pendingLoan(600), amount: 600.01, want: apperrors.ErrOverpayment},
		{name: "store failure", findErr: apperrors.ErrDatabase, amount: 10, want: apperrors.ErrDatabase},
	}
	for _, tc := range rejected {
		t.Run("Rejected - "+tc.name, func(t *testing.T) {
			f := setup()
			f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
			f.loans.On("FindForUpdateInTx", ctx, tx, int64(10)).Return(tc.loan, tc.findErr).Once()
			f.loans.On("RollbackTx", ctx, tx).Return(nil).Once()

			_, err := f.svc.Record(ctx, ownerID, fields(tc.amount))

			assert.ErrorIs(t, err, tc.want)
			f.repo.AssertNotCalled(t, "InsertInTx", mock.Anything, mock.Anything, mock.Anything)
			f.loans.AssertNotCalled(t, "UpdateBalanceInTx", mock.Anything, mock.Anything, mock.Anything)
			f.loans.AssertNotCalled(t, "CommitTx", mock.Anything, mock.Anything)
			f.loans.AssertExpectations(t)
			assert.Empty(t, f.pub.recorded)
		})
	}

	t.Run("Balance update failure rolls back", func(t *testing.T) {
		f := setup()
		f.loans.On("BeginTx", ctx).Return(tx, nil).Once()
		f.loans.On("FindForUpdateInTx", ctx, tx, int64(10)).Return(pendingLoan(1000), nil).Once()
		f.repo.On("InsertInTx", ctx, tx, mock.Anything).Return(nil).Once()
		f.loans.On("UpdateBalanceInTx", ctx, tx, mock.Anything).Return(apperrors.ErrDatabase).Once()
		f.loans.On("RollbackTx", ctx, tx).Return(nil).Once()

		_, err := f.svc.Record(ctx, ownerID, fields(100))

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
		f.loans.AssertNotCalled(t, "CommitTx", mock.Anything, mock.Anything)
		f.loans.AssertExpectations(t)
	})

	t.Run("Invalid input never opens a transaction", func(t *testing.T) {
		f := setup()

		_, err := f.svc.Record(ctx, ownerID, repayment.RecordFields{LoanID: 10, Amount: amount(-5), Date: "yesterday"})

		var errs apperrors.ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Len(t, errs, 2)
		f.loans.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Sub-cent amount never reaches the store", func(t *testing.T) {
		f := setup()

		_, err := f.svc.Record(ctx, ownerID, fields(0.005))

		var errs apperrors.ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Equal(t, "amount", errs[0].Field)
		f.loans.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("Begin failure", func(t *testing.T) {
		f := setup()
		f.loans.On("BeginTx", ctx).Return(nil, apperrors.ErrDatabase).Once()

		_, err := f.svc.Record(ctx, ownerID, fields(100))

		assert.ErrorIs(t, err, apperrors.ErrDatabase)
	})
}

func TestRepaymentService_ListForLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := setup()
		want := []*repayment.Repayment{{ID: 1, LoanID: 10, Amount: 400}}
		f.loans.On("FindByID", ctx, int64(10)).Return(pendingLoan(600), nil).Once()
		f.repo.On("FindByLoanID", ctx, int64(10)).Return(want, nil).Once()

		got, err := f.svc.ListForLoan(ctx, ownerID, 10)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Forbidden", func(t *testing.T) {
		f := setup()
		f.loans.On("FindByID", ctx, int64(10)).Return(&loan.Loan{ID: 10, OwnerID: 99}, nil).Once()

		_, err := f.svc.ListForLoan(ctx, ownerID, 10)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		f.repo.AssertNotCalled(t, "FindByLoanID", mock.Anything, mock.Anything)
	})

	t.Run("Not found", func(t *testing.T) {
		f := setup()
		f.loans.On("FindByID", ctx, int64(10)).Return(nil, apperrors.ErrNotFound).Once()

		_, err := f.svc.ListForLoan(ctx, ownerID, 10)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
