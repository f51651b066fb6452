package controllers_test

import (
	"net/http"

	"github.com/luy-tracker/backend/internal/controllers"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsMonth() {
	tests := []string{
		"http://example.com/v1/months",
		"http://example.com/v1/months/2024-06",
		"http://example.com/v1/months/2024-06/categories",
		"http://example.com/v1/months/2024-06/trend",
	}

	for _, tt := range tests {
		recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, tt, "")
		suite.assertHTTPStatus(&recorder, http.StatusNoContent)
		assert.Equal(suite.T(), "OPTIONS, GET", recorder.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestGetMonths() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(1)})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-04-10", Amount: decimal.NewFromFloat(2)})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-20", Amount: decimal.NewFromFloat(3)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthListResponse
	suite.decodeResponse(&recorder, &response)

	assert.Equal(suite.T(), []string{"2024-06", "2024-04"}, response.Data)
}

func (suite *TestSuiteStandard) TestGetMonth() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(100), Currency: "USD"})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-10", Amount: decimal.NewFromFloat(200000), Currency: "KHR"})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-05-10", Amount: decimal.NewFromFloat(999), Currency: "USD"})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06?day=15", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthResponse
	suite.decodeResponse(&recorder, &response)

	assert.Equal(suite.T(), "2024-06", response.Data.Month.String())
	assert.True(suite.T(), response.Data.Total.Equal(decimal.NewFromFloat(150)), "100 USD + 200000 KHR is not 150 USD, got %s", response.Data.Total)
	assert.True(suite.T(), response.Data.Largest.Equal(decimal.NewFromFloat(100)))

	if assert.NotNil(suite.T(), response.Data.DailyAverage) {
		assert.True(suite.T(), response.Data.DailyAverage.Equal(decimal.NewFromFloat(10)), "150 over 15 days is not 10 per day, got %s", response.Data.DailyAverage)
	}
}

func (suite *TestSuiteStandard) TestGetMonthWithoutDay() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(100)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthResponse
	suite.decodeResponse(&recorder, &response)

	assert.Nil(suite.T(), response.Data.DailyAverage, "Without the day parameter there is no daily average")
}

func (suite *TestSuiteStandard) TestGetMonthEmpty() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthResponse
	suite.decodeResponse(&recorder, &response)

	assert.True(suite.T(), response.Data.Total.IsZero())
	assert.True(suite.T(), response.Data.Largest.IsZero())
}

func (suite *TestSuiteStandard) TestGetMonthErrors() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/June", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06?day=42", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetMonthCategories() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(30), Category: "Food"})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-02", Amount: decimal.NewFromFloat(20), Category: "Food"})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-03", Amount: decimal.NewFromFloat(5), Category: "Travel"})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-05-03", Amount: decimal.NewFromFloat(99), Category: "Shopping"})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06/categories", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthCategoriesResponse
	suite.decodeResponse(&recorder, &response)

	// Categories without expenses in the month are omitted
	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), "Food", response.Data[0].Name)
		assert.True(suite.T(), response.Data[0].Total.Equal(decimal.NewFromFloat(50)))
		assert.Equal(suite.T(), "#007bff", response.Data[0].Color)
		assert.Equal(suite.T(), "Travel", response.Data[1].Name)
	}
}

func (suite *TestSuiteStandard) TestGetMonthTrend() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(10)})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-03-10", Amount: decimal.NewFromFloat(5)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06/trend", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthTrendResponse
	suite.decodeResponse(&recorder, &response)

	// 6 trailing months plus the requested one, empty months included
	if assert.Len(suite.T(), response.Data, 7) {
		assert.Equal(suite.T(), "2023-12", response.Data[0].Month.String())
		assert.True(suite.T(), response.Data[0].Total.IsZero())
		assert.True(suite.T(), response.Data[3].Total.Equal(decimal.NewFromFloat(5)))
		assert.Equal(suite.T(), "2024-06", response.Data[6].Month.String())
		assert.True(suite.T(), response.Data[6].Total.Equal(decimal.NewFromFloat(10)))
	}
}

func (suite *TestSuiteStandard) TestGetMonthTrendCustomLength() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06/trend?months=2", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.MonthTrendResponse
	suite.decodeResponse(&recorder, &response)

	assert.Len(suite.T(), response.Data, 3)
}

func (suite *TestSuiteStandard) TestGetMonthTrendErrors() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/2024-06/trend?months=-1", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/months/nope/trend", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}
