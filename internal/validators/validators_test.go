package validators

import (
	"errors"
	"testing"

	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/shopspring/decimal"
)

func TestCheckOrderInput(t *testing.T) {
	testCases := []struct {
		TestName      string
		CustomerName  string
		Items         []OrderItemInput
		HasInvoice    bool
		ExpectedError error
	}{
		{
			TestName:      "Error. Empty customer name #1",
			CustomerName:  "",
			Items:         []OrderItemInput{{ProductID: "P1", Quantity: 1}},
			HasInvoice:    true,
			ExpectedError: ErrCustomerNameRequired,
		},
		{
			TestName:      "Error. No items #2",
			CustomerName:  "Ivan",
			Items:         nil,
			HasInvoice:    true,
			ExpectedError: ErrNoItems,
		},
		{
			TestName:      "Error. Item without product #3",
			CustomerName:  "Ivan",
			Items:         []OrderItemInput{{ProductID: "", Quantity: 1}},
			HasInvoice:    true,
			ExpectedError: ErrProductRequired,
		},
		{
			TestName:      "Error. Zero quantity #4",
			CustomerName:  "Ivan",
			Items:         []OrderItemInput{{ProductID: "P1", Quantity: 0}},
			HasInvoice:    true,
			ExpectedError: ErrInvalidQuantity,
		},
		{
			TestName:      "Error. Missing invoice file #5",
			CustomerName:  "Ivan",
			Items:         []OrderItemInput{{ProductID: "P1", Quantity: 1}},
			HasInvoice:    false,
			ExpectedError: ErrInvoiceRequired,
		},
		{
			TestName:      "Success #6",
			CustomerName:  "Ivan",
			Items:         []OrderItemInput{{ProductID: "P1", Quantity: 2}},
			HasInvoice:    true,
			ExpectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			err := CheckOrderInput(tc.CustomerName, tc.Items, tc.HasInvoice)
			if !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error '%v', got '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestCheckNewProduct(t *testing.T) {
	testCases := []struct {
		TestName      string
		Request       models.NewProductRequest
		ExpectedError error
	}{
		{
			TestName:      "Error. Empty name #1",
			Request:       models.NewProductRequest{Category: "Electronics"},
			ExpectedError: ErrProductNameRequired,
		},
		{
			TestName:      "Error. Empty category #2",
			Request:       models.NewProductRequest{Name: "Mouse"},
			ExpectedError: ErrCategoryRequired,
		},
		{
			TestName: "Error. Negative price #3",
			Request: models.NewProductRequest{
				Name: "Mouse", Category: "Electronics", Price: decimal.NewFromInt(-5),
			},
			ExpectedError: ErrNegativePrice,
		},
		{
			TestName: "Error. Negative stock #4",
			Request: models.NewProductRequest{
				Name: "Mouse", Category: "Electronics", Price: decimal.NewFromInt(5), Stock: -1,
			},
			ExpectedError: ErrNegativeStock,
		},
		{
			TestName: "Success. Zero price allowed #5",
			Request: models.NewProductRequest{
				Name: "Sample", Category: "Promo", Price: decimal.Zero, Stock: 0,
			},
			ExpectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			err := CheckNewProduct(tc.Request)
			if !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error '%v', got '%v'", tc.ExpectedError, err)
			}
		})
	}
}
