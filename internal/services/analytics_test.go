package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mavdeev/salesdesk/internal/client"
	"github.com/mavdeev/salesdesk/internal/client/mocks"
	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"go.uber.org/mock/gomock"
)

func TestAnalytics_GetOrdersByDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockGateway := mocks.NewMockGateway(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.LogLevel); err != nil {
		logger.Panic(err)
	}

	analytics := NewAnalytics(mockGateway)

	backendSeries := []models.DailyOrders{
		{Date: "2026-08-24", Orders: 3},
		{Date: "2026-08-25", Orders: 1},
	}

	testCases := []struct {
		TestName          string
		Summary           *models.AnalyticsSummary
		SetupMocks        func()
		ExpectedSeries    []models.DailyOrders
		ExpectedSynthetic bool
	}{
		{
			TestName: "Success. Backend series passed through #1",
			Summary:  &models.AnalyticsSummary{OrdersToday: 2},
			SetupMocks: func() {
				mockGateway.EXPECT().OrdersByDay(gomock.Any()).Return(backendSeries, nil)
			},
			ExpectedSeries:    backendSeries,
			ExpectedSynthetic: false,
		},
		{
			TestName: "Fallback. Synthetic series from ordersToday #2",
			Summary:  &models.AnalyticsSummary{OrdersToday: 10},
			SetupMocks: func() {
				mockGateway.EXPECT().OrdersByDay(gomock.Any()).Return(nil, client.ErrNotFound)
			},
			ExpectedSeries: []models.DailyOrders{
				{Date: "Mon", Orders: 8},
				{Date: "Tue", Orders: 12},
				{Date: "Wed", Orders: 6},
				{Date: "Thu", Orders: 15},
				{Date: "Fri", Orders: 9},
				{Date: "Sat", Orders: 18},
				{Date: "Sun", Orders: 10},
			},
			ExpectedSynthetic: true,
		},
		{
			TestName: "Fallback. Zero orders today floors at one #3",
			Summary:  &models.AnalyticsSummary{OrdersToday: 0},
			SetupMocks: func() {
				mockGateway.EXPECT().OrdersByDay(gomock.Any()).Return(nil, errors.New("network error"))
			},
			ExpectedSeries: []models.DailyOrders{
				{Date: "Mon", Orders: 1},
				{Date: "Tue", Orders: 1},
				{Date: "Wed", Orders: 1},
				{Date: "Thu", Orders: 1},
				{Date: "Fri", Orders: 1},
				{Date: "Sat", Orders: 1},
				{Date: "Sun", Orders: 1},
			},
			ExpectedSynthetic: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			tc.SetupMocks()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			series, synthetic, err := analytics.GetOrdersByDay(ctx, tc.Summary)
			if err != nil {
				t.Fatalf("Expected no error, got '%v'", err)
			}
			if synthetic != tc.ExpectedSynthetic {
				t.Errorf("Expected synthetic=%v, got %v", tc.ExpectedSynthetic, synthetic)
			}
			diff := cmp.Diff(tc.ExpectedSeries, series)
			if len(diff) != 0 {
				t.Errorf("expected series mismatch:\n %s", diff)
			}
		})
	}
}
