package controllers_test

import (
	"net/http"
	"strings"

	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsExport() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/v1/export", "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetExportEmpty() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	assert.Equal(suite.T(), "Date,Amount,Currency,Category,Money Type,Expense Type,Description\n", recorder.Body.String())
}

func (suite *TestSuiteStandard) TestGetExport() {
	_ = suite.createTestExpense(models.ExpenseEditable{
		Date:     "2024-06-01",
		Amount:   decimal.NewFromFloat(12.5),
		Category: "Food",
		Note:     "lunch",
	})
	_ = suite.createTestExpense(models.ExpenseEditable{
		Date:     "2024-06-02",
		Amount:   decimal.NewFromFloat(40000),
		Currency: "KHR",
		Category: "Travel",
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	assert.Contains(suite.T(), recorder.Header().Get("Content-Disposition"), "expenses.csv")
	assert.Contains(suite.T(), recorder.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSuffix(recorder.Body.String(), "\n"), "\n")
	if assert.Len(suite.T(), lines, 3) {
		assert.Equal(suite.T(), `2024-06-01,12.5,USD,Food,Cash,Cash,"lunch"`, lines[1])
		assert.Equal(suite.T(), `2024-06-02,40000,KHR,Travel,Cash,Cash,""`, lines[2])
	}
}
