package controllers_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/luy-tracker/backend/internal/controllers"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsExpenseList() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/v1/expenses", "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsExpenseDetail() {
	expense := suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(10)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsExpenseDetailErrors() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/v1/expenses/not-a-uuid", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/expenses/%s", uuid.New()), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateExpense() {
	expense := suite.createTestExpense(models.ExpenseEditable{
		Date:     "2024-06-15",
		Amount:   decimal.NewFromFloat(40000),
		Currency: "KHR",
		Category: "Food",
		Note:     "lunch at the market",
	})

	assert.NotEqual(suite.T(), uuid.Nil, expense.Data.ID)
	assert.Equal(suite.T(), models.MoneyTypeCash, expense.Data.MoneyType, "Money type does not default to Cash")
	assert.Equal(suite.T(), "Cash", expense.Data.ExpenseType, "Expense type does not default to Cash")
	assert.True(suite.T(), expense.Data.BaseAmount.Equal(decimal.NewFromFloat(10)), "40000 KHR is not normalized to 10 USD, got %s", expense.Data.BaseAmount)
	assert.Equal(suite.T(), "#007bff", expense.Data.Color, "Color of the first category is wrong")
}

func (suite *TestSuiteStandard) TestCreateExpenseInvalid() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/expenses", models.ExpenseEditable{
		Date:     "15.06.2024",
		Amount:   decimal.NewFromFloat(10),
		Currency: "EUR",
		Category: "Food",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), recorder.Body.Bytes()), "date, currency")
}

func (suite *TestSuiteStandard) TestCreateExpenseNoAmount() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/expenses", map[string]string{
		"date":     "2024-06-15",
		"currency": "USD",
		"category": "Food",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), recorder.Body.Bytes()), "amount")
}

func (suite *TestSuiteStandard) TestCreateExpenseEmptyBody() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "http://example.com/v1/expenses", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetExpenses() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(1)})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-20", Amount: decimal.NewFromFloat(2)})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-05-10", Amount: decimal.NewFromFloat(3)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.ExpenseListResponse
	suite.decodeResponse(&recorder, &response)

	if assert.Len(suite.T(), response.Data, 3) {
		// Newest date first
		assert.Equal(suite.T(), "2024-06-20", response.Data[0].Date)
		assert.Equal(suite.T(), "2024-06-01", response.Data[1].Date)
		assert.Equal(suite.T(), "2024-05-10", response.Data[2].Date)
	}
}

func (suite *TestSuiteStandard) TestGetExpensesEmpty() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	// The list must be an empty list, not null
	assert.Contains(suite.T(), recorder.Body.String(), `"data":[]`)
}

func (suite *TestSuiteStandard) TestGetExpensesFilterMonth() {
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-06-01", Amount: decimal.NewFromFloat(1)})
	_ = suite.createTestExpense(models.ExpenseEditable{Date: "2024-05-10", Amount: decimal.NewFromFloat(3)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses?month=2024-05", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.ExpenseListResponse
	suite.decodeResponse(&recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestGetExpensesFilterSearch() {
	_ = suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(1), Note: "Lunch with Sokha"})
	_ = suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(2), Note: "Bus ticket"})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses?search=sokha", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.ExpenseListResponse
	suite.decodeResponse(&recorder, &response)

	if assert.Len(suite.T(), response.Data, 1) {
		assert.Equal(suite.T(), "Lunch with Sokha", response.Data[0].Note)
	}
}

func (suite *TestSuiteStandard) TestGetExpensesInvalidMonth() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses?month=June", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetExpense() {
	expense := suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(12.5)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.ExpenseResponse
	suite.decodeResponse(&recorder, &response)
	assert.Equal(suite.T(), expense.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetExpenseErrors() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses/not-a-uuid", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses/%s", uuid.New()), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	expense := suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(12.5), Note: "dinner"})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), map[string]any{
		"amount": 20,
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response controllers.ExpenseResponse
	suite.decodeResponse(&recorder, &response)

	assert.Equal(suite.T(), expense.Data.ID, response.Data.ID, "The ID must not change on update")
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(20)))
	assert.Equal(suite.T(), "dinner", response.Data.Note, "Fields not in the request body must be kept")
}

func (suite *TestSuiteStandard) TestUpdateExpenseInvalid() {
	expense := suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(12.5)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), map[string]any{
		"currency": "EUR",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateExpenseNotFound() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/expenses/%s", uuid.New()), map[string]any{
		"amount": 20,
	})
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	expense := suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(12.5)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/expenses/%s", expense.Data.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCleanupExpenses() {
	_ = suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(1)})
	_ = suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(2)})

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, "http://example.com/v1/expenses?confirm=yes-please-delete-everything", "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	var response controllers.ExpenseListResponse
	suite.decodeResponse(&recorder, &response)
	assert.Len(suite.T(), response.Data, 0)

	// Categories survive a cleanup
	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/categories", "")
	var categories controllers.CategoryListResponse
	suite.decodeResponse(&recorder, &categories)
	assert.Len(suite.T(), categories.Data, 6)
}

func (suite *TestSuiteStandard) TestCleanupExpensesFails() {
	_ = suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(1)})

	tests := []string{
		"http://example.com/v1/expenses?confirm=",
		"http://example.com/v1/expenses?confirm=yes-please-delete-my-data",
		"http://example.com/v1/expenses",
	}

	for _, tt := range tests {
		recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, tt, "")
		suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
	}

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/v1/expenses", "")
	var response controllers.ExpenseListResponse
	suite.decodeResponse(&recorder, &response)
	assert.Len(suite.T(), response.Data, 1, "Expenses must not be deleted without the correct confirmation")
}

func (suite *TestSuiteStandard) TestExpenseUnregisteredCategoryColor() {
	expense := suite.createTestExpense(models.ExpenseEditable{Amount: decimal.NewFromFloat(1), Category: "Rent"})

	assert.Equal(suite.T(), "#6c757d", expense.Data.Color, "Unregistered categories must use the fallback color")
}
