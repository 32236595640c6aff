package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"loan-ledger/internal/api/handler"
	"loan-ledger/internal/api/handler/dto"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const customerBody = `{"name":"Asha Rao","phone":"9876543210","address":"12 Market Road","trustScore":8,"creditLimit":"5000"}`

func sampleCustomer() *customer.Customer {
	return &customer.Customer{ID: 7, OwnerID: testOwnerID, Name: "Asha Rao", Phone: "9876543210", Address: "12 Market Road", TrustScore: 8, CreditLimit: 5000}
}

func TestCreateCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())
		svc.On("Create", mock.Anything, testOwnerID, mock.MatchedBy(func(f customer.Fields) bool {
			return f.Name == "Asha Rao" && f.TrustScore != nil && *f.TrustScore == 8 &&
				f.CreditLimit != nil && *f.CreditLimit == 5000
		})).Return(sampleCustomer(), nil).Once()

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, newRequest(http.MethodPost, "/customers", customerBody, nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CustomerResponse
		env := decodeData(t, rec, &resp)
		assert.Equal(t, "Customer added successfully", env.Message)
		assert.Equal(t, "7", resp.ID)
		assert.Equal(t, "5000.00", resp.CreditLimit)
		svc.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, anonymous(newRequest(http.MethodPost, "/customers", customerBody, nil)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())

		rec := httptest.NewRecorder()
		h.CreateCustomer(rec, newRequest(http.MethodPost, "/customers", `{"name":`, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_argument", decodeError(t, rec).Error.Code)
	})
}

func TestListCustomers(t *testing.T) {
	t.Run("empty list is an empty array", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())
		svc.On("List", mock.Anything, testOwnerID).Return([]*customer.Customer{}, nil).Once()

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, newRequest(http.MethodGet, "/customers", "", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())
		svc.On("List", mock.Anything, testOwnerID).Return(nil, apperrors.ErrDatabase).Once()

		rec := httptest.NewRecorder()
		h.ListCustomers(rec, newRequest(http.MethodGet, "/customers", "", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decodeError(t, rec).Error.Message)
	})
}

func TestGetCustomer(t *testing.T) {
	cases := []struct {
		name   string
		param  string
		err    error
		status int
	}{
		{name: "success", param: "7", status: http.StatusOK},
		{name: "invalid customer ID", param: "abc", status: http.StatusBadRequest},
		{name: "other owner's customer", param: "7", err: fmt.Errorf("%w: customer 7", apperrors.ErrForbidden), status: http.StatusForbidden},
		{name: "customer not found", param: "7", err: apperrors.ErrNotFound, status: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockCustomerService)
			h := handler.NewCustomerHandler(svc, testLogger())
			if tc.err != nil {
				svc.On("Get", mock.Anything, testOwnerID, int64(7)).Return(nil, tc.err).Once()
			} else {
				svc.On("Get", mock.Anything, testOwnerID, int64(7)).Return(sampleCustomer(), nil).Once()
			}

			rec := httptest.NewRecorder()
			h.GetCustomer(rec, newRequest(http.MethodGet, "/customers/"+tc.param, "", map[string]string{"customerID": tc.param}))

			assert.Equal(t, tc.status, rec.Code)
			if tc.param == "abc" {
				svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateCustomer(t *testing.T) {
	svc := new(MockCustomerService)
	h := handler.NewCustomerHandler(svc, testLogger())
	updated := sampleCustomer()
	updated.TrustScore = 9
	svc.On("Update", mock.Anything, testOwnerID, int64(7), mock.AnythingOfType("customer.Fields")).Return(updated, nil).Once()

	rec := httptest.NewRecorder()
	h.UpdateCustomer(rec, newRequest(http.MethodPut, "/customers/7", customerBody, map[string]string{"customerID": "7"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CustomerResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, 9, resp.TrustScore)
	svc.AssertExpectations(t)
}

func TestDeleteCustomer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())
		svc.On("Delete", mock.Anything, testOwnerID, int64(7)).Return(nil).Once()

		rec := httptest.NewRecorder()
		h.DeleteCustomer(rec, newRequest(http.MethodDelete, "/customers/7", "", map[string]string{"customerID": "7"}))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("conflict from store", func(t *testing.T) {
		svc := new(MockCustomerService)
		h := handler.NewCustomerHandler(svc, testLogger())
		svc.On("Delete", mock.Anything, testOwnerID, int64(7)).Return(fmt.Errorf("%w: concurrent modification", apperrors.ErrConflict)).Once()

		rec := httptest.NewRecorder()
		h.DeleteCustomer(rec, newRequest(http.MethodDelete, "/customers/7", "", map[string]string{"customerID": "7"}))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
