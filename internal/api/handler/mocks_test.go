package handler_test

import (
	"context"
	"time"

	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/identity"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/repayment"
	"loan-ledger/internal/domain/report"

	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

var _ identity.AccountService = (*MockAccountService)(nil)

func (_m *MockAccountService) Register(ctx context.Context, email, password string) (*identity.Owner, error) {
	ret := _m.Called(ctx, email, password)

	var r0 *identity.Owner
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*identity.Owner)
	}
	return r0, ret.Error(1)
}

func (_m *MockAccountService) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	ret := _m.Called(ctx, email, password)

	var r0 *identity.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*identity.Session)
	}
	return r0, ret.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func (_m *MockCustomerService) Create(ctx context.Context, ownerID int64, fields customer.Fields) (*customer.Customer, error) {
	ret := _m.Called(ctx, ownerID, fields)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) Update(ctx context.Context, ownerID, customerID int64, fields customer.Fields) (*customer.Customer, error) {
	ret := _m.Called(ctx, ownerID, customerID, fields)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) Delete(ctx context.Context, ownerID, customerID int64) error {
	ret := _m.Called(ctx, ownerID, customerID)
	return ret.Error(0)
}

func (_m *MockCustomerService) Get(ctx context.Context, ownerID, customerID int64) (*customer.Customer, error) {
	ret := _m.Called(ctx, ownerID, customerID)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerService) List(ctx context.Context, ownerID int64) ([]*customer.Customer, error) {
	ret := _m.Called(ctx, ownerID)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

type MockLoanService struct {
	mock.Mock
}

var _ loan.LoanService = (*MockLoanService)(nil)

func (m *MockLoanService) Issue(ctx context.Context, ownerID int64, fields loan.IssueFields) (*loan.Loan, error) {
	args := m.Called(ctx, ownerID, fields)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) List(ctx context.Context, ownerID int64, filter loan.StatusFilter, asOf time.Time) ([]*loan.Loan, error) {
	args := m.Called(ctx, ownerID, filter, asOf)
	if ls, ok := args.Get(0).([]*loan.Loan); ok {
		return ls, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) Get(ctx context.Context, ownerID, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, ownerID, loanID)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRepaymentService struct {
	mock.Mock
}

var _ repayment.RepaymentService = (*MockRepaymentService)(nil)

func (m *MockRepaymentService) Record(ctx context.Context, ownerID int64, fields repayment.RecordFields) (*repayment.Receipt, error) {
	args := m.Called(ctx, ownerID, fields)
	if r, ok := args.Get(0).(*repayment.Receipt); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepaymentService) ListForLoan(ctx context.Context, ownerID, loanID int64) ([]*repayment.Repayment, error) {
	args := m.Called(ctx, ownerID, loanID)
	if rs, ok := args.Get(0).([]*repayment.Repayment); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

var _ report.ReportService = (*MockReportService)(nil)

func (m *MockReportService) Summary(ctx context.Context, ownerID int64) (*report.Summary, error) {
	args := m.Called(ctx, ownerID)
	if s, ok := args.Get(0).(*report.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportService) OverdueCustomers(ctx context.Context, ownerID int64, asOf time.Time) ([]report.OverdueEntry, error) {
	args := m.Called(ctx, ownerID, asOf)
	if es, ok := args.Get(0).([]report.OverdueEntry); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}
