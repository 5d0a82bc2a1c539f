package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mavdeev/salesdesk/internal/client/mocks"
	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/mavdeev/salesdesk/internal/validators"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestProducts_AddProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockGateway := mocks.NewMockGateway(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.LogLevel); err != nil {
		logger.Panic(err)
	}

	products := NewProducts(mockGateway)

	testCases := []struct {
		TestName      string
		Request       models.NewProductRequest
		SetupMocks    func()
		ExpectedError error
	}{
		{
			TestName:      "Error. Empty name, no network call #1",
			Request:       models.NewProductRequest{Category: "Electronics", Price: decimal.NewFromInt(10)},
			SetupMocks:    func() {},
			ExpectedError: validators.ErrProductNameRequired,
		},
		{
			TestName: "Error. Negative price #2",
			Request: models.NewProductRequest{
				Name: "Mouse", Category: "Electronics", Price: decimal.NewFromInt(-1),
			},
			SetupMocks:    func() {},
			ExpectedError: validators.ErrNegativePrice,
		},
		{
			TestName: "Success #3",
			Request: models.NewProductRequest{
				Name: "Mouse", Category: "Electronics", Price: decimal.NewFromInt(10), Stock: 5,
			},
			SetupMocks: func() {
				mockGateway.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(&models.Product{
					ProductID: "P1", Name: "Mouse",
				}, nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, err := products.AddProduct(ctx, tc.Request)

			if tc.ExpectedError != nil {
				if !errors.Is(err, tc.ExpectedError) {
					t.Errorf("Expected error '%v', got '%v'", tc.ExpectedError, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got '%v'", err)
			}
		})
	}
}

func TestProducts_DeleteProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockGateway := mocks.NewMockGateway(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.LogLevel); err != nil {
		logger.Panic(err)
	}

	products := NewProducts(mockGateway)

	mockGateway.EXPECT().DeleteProduct(gomock.Any(), "P1").Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := products.DeleteProduct(ctx, "P1"); err != nil {
		t.Errorf("Expected no error, got '%v'", err)
	}
}
