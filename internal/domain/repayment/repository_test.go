package repayment

import (
	"context"
	"time"

	"loan-ledger/internal/domain/loan"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

func (m *MockRepository) InsertInTx(ctx context.Context, tx pgx.Tx, r *Repayment) error {
	args := m.Called(ctx, tx, r)
	if rf, ok := args.Get(0).(func(context.Context, pgx.Tx, *Repayment) error); ok {
		return rf(ctx, tx, r)
	}
	return args.Error(0)
}

func (m *MockRepository) FindByLoanID(ctx context.Context, loanID int64) ([]*Repayment, error) {
	args := m.Called(ctx, loanID)
	var out []*Repayment
	if args.Get(0) != nil {
		out = args.Get(0).([]*Repayment)
	}
	return out, args.Error(1)
}

type TxMock struct {
	pgx.Tx
}

type MockLoanRepository struct {
	mock.Mock
}

var _ loan.Repository = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) FindByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	var l *loan.Loan
	if args.Get(0) != nil {
		l = args.Get(0).(*loan.Loan)
	}
	return l, args.Error(1)
}

func (m *MockLoanRepository) FindByOwner(ctx context.Context, ownerID int64, filter loan.StatusFilter, asOf time.Time) ([]*loan.Loan, error) {
	args := m.Called(ctx, ownerID, filter, asOf)
	var out []*loan.Loan
	if args.Get(0) != nil {
		out = args.Get(0).([]*loan.Loan)
	}
	return out, args.Error(1)
}

func (m *MockLoanRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, tx, loanID)
	var l *loan.Loan
	if args.Get(0) != nil {
		l = args.Get(0).(*loan.Loan)
	}
	return l, args.Error(1)
}

func (m *MockLoanRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) error {
	return m.Called(ctx, tx, l).Error(0)
}

func (m *MockLoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockLoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockLoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}
