package identity

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockOwnerRepository struct {
	mock.Mock
}

func (_m *MockOwnerRepository) Create(ctx context.Context, owner *Owner) error {
	ret := _m.Called(ctx, owner)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Owner) error); ok {
		r0 = rf(ctx, owner)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockOwnerRepository) FindByEmail(ctx context.Context, email string) (*Owner, error) {
	ret := _m.Called(ctx, email)

	var r0 *Owner
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Owner)
	}

	return r0, ret.Error(1)
}

func (_m *MockOwnerRepository) ListIDs(ctx context.Context) ([]int64, error) {
	ret := _m.Called(ctx)

	var r0 []int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]int64)
	}

	return r0, ret.Error(1)
}

type MockTokenProvider struct {
	mock.Mock
}

func (_m *MockTokenProvider) Issue(owner Owner) (string, time.Time, error) {
	ret := _m.Called(owner)
	return ret.String(0), ret.Get(1).(time.Time), ret.Error(2)
}

func (_m *MockTokenProvider) Verify(token string) (Owner, error) {
	ret := _m.Called(token)
	return ret.Get(0).(Owner), ret.Error(1)
}
