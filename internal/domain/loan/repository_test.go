package loan

import (
	"context"
	"time"

	"loan-ledger/internal/domain/customer"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

type TxMock struct {
	pgx.Tx
}

var _ Repository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, loan *Loan) error {
	args := m.Called(ctx, loan)
	if rf, ok := args.Get(0).(func(context.Context, *Loan) error); ok {
		return rf(ctx, loan)
	}
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, loanID int64) (*Loan, error) {
	args := m.Called(ctx, loanID)
	var l *Loan
	if args.Get(0) != nil {
		l = args.Get(0).(*Loan)
	}
	return l, args.Error(1)
}

func (m *MockRepository) FindByOwner(ctx context.Context, ownerID int64, filter StatusFilter, asOf time.Time) ([]*Loan, error) {
	args := m.Called(ctx, ownerID, filter, asOf)
	var loans []*Loan
	if args.Get(0) != nil {
		loans = args.Get(0).([]*Loan)
	}
	return loans, args.Error(1)
}

func (m *MockRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error) {
	args := m.Called(ctx, tx, loanID)
	var l *Loan
	if args.Get(0) != nil {
		l = args.Get(0).(*Loan)
	}
	return l, args.Error(1)
}

func (m *MockRepository) UpdateBalanceInTx(ctx context.Context, tx pgx.Tx, loan *Loan) error {
	args := m.Called(ctx, tx, loan)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func (m *MockCustomerService) Create(ctx context.Context, ownerID int64, fields customer.Fields) (*customer.Customer, error) {
	args := m.Called(ctx, ownerID, fields)
	var c *customer.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*customer.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, ownerID, customerID int64, fields customer.Fields) (*customer.Customer, error) {
	args := m.Called(ctx, ownerID, customerID, fields)
	var c *customer.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*customer.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, ownerID, customerID int64) error {
	return m.Called(ctx, ownerID, customerID).Error(0)
}

func (m *MockCustomerService) Get(ctx context.Context, ownerID, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, ownerID, customerID)
	var c *customer.Customer
	if args.Get(0) != nil {
		c = args.Get(0).(*customer.Customer)
	}
	return c, args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, ownerID int64) ([]*customer.Customer, error) {
	args := m.Called(ctx, ownerID)
	var cs []*customer.Customer
	if args.Get(0) != nil {
		cs = args.Get(0).([]*customer.Customer)
	}
	return cs, args.Error(1)
}
