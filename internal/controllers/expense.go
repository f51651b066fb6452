package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/luy-tracker/backend/internal/httperrors"
	"github.com/luy-tracker/backend/internal/httputil"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/internal/query"
	"github.com/luy-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
)

type ExpenseListResponse struct {
	Data []Expense `json:"data"` // List of expenses
}

type ExpenseResponse struct {
	Data Expense `json:"data"` // Data for the expense
}

type Expense struct {
	models.Expense
	BaseAmount decimal.Decimal `json:"baseAmount" example:"10"` // Amount converted to the base currency
	Color      string          `json:"color" example:"#007bff"` // Color of the expense category
}

// ExpenseQueryFilter narrows down the expense list.
type ExpenseQueryFilter struct {
	Search string `form:"search"` // Case-insensitive substring match on note and category
	Month  string `form:"month"`  // Limit to expenses in this month, YYYY-MM
}

// newExpenseObject enriches an expense with its derived fields.
func (co Controller) newExpenseObject(expense models.Expense) Expense {
	base, err := co.Ledger.Rates().ToBase(expense.Amount, expense.Currency)
	if err != nil {
		// The currency was valid when the expense was stored. If the rate
		// table shrank since then, report the raw amount instead of failing
		// the whole listing.
		base = expense.Amount
	}

	return Expense{
		Expense:    expense,
		BaseAmount: base,
		Color:      co.Ledger.ColorOf(expense.Category),
	}
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
		r.DELETE("", co.CleanupExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// OptionsExpenseList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/v1/expenses [options]
func (co Controller) OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// OptionsExpenseDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Failure		404	{object}	httperrors.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.InvalidUUID(c)
		return
	}

	if _, err := co.Ledger.Expense(id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetExpenses returns a filtered list of expenses
//
//	@Summary		List expenses
//	@Description	Returns a list of expenses, newest date first
//	@Tags			Expenses
//	@Produce		json
//	@Success		200		{object}	ExpenseListResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Param			search	query		string	false	"Search in note and category"
//	@Param			month	query		string	false	"Limit to a month in YYYY-MM format"
//	@Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.Bind(&filter); err != nil {
		httperrors.InvalidQueryString(c)
		return
	}

	if filter.Month != "" {
		if _, err := types.ParseMonth(filter.Month); err != nil {
			httperrors.InvalidMonth(c)
			return
		}
	}

	expenses := query.Filter(co.Ledger.Expenses(), filter.Search, filter.Month)

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	expenseObjects := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		expenseObjects = append(expenseObjects, co.newExpenseObject(expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenseObjects})
}

// CreateExpense creates a new expense
//
//	@Summary		Create expense
//	@Description	Creates a new expense
//	@Tags			Expenses
//	@Produce		json
//	@Success		201		{object}	ExpenseResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Failure		500		{object}	httperrors.HTTPError
//	@Param			expense	body		models.ExpenseEditable	true	"Expense"
//	@Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var editable models.ExpenseEditable

	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	expense, err := co.Ledger.AddExpense(editable)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: co.newExpenseObject(expense)})
}

// GetExpense returns a specific expense
//
//	@Summary		Get expense
//	@Description	Returns a specific expense
//	@Tags			Expenses
//	@Produce		json
//	@Success		200	{object}	ExpenseResponse
//	@Failure		400	{object}	httperrors.HTTPError
//	@Failure		404	{object}	httperrors.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.InvalidUUID(c)
		return
	}

	expense, err := co.Ledger.Expense(id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: co.newExpenseObject(expense)})
}

// UpdateExpense updates an expense
//
//	@Summary		Update expense
//	@Description	Updates an existing expense. Only values to be updated need to be specified.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	ExpenseResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Failure		404		{object}	httperrors.HTTPError
//	@Failure		500		{object}	httperrors.HTTPError
//	@Param			id		path		string					true	"ID formatted as string"
//	@Param			expense	body		models.ExpenseEditable	true	"Expense"
//	@Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.InvalidUUID(c)
		return
	}

	expense, err := co.Ledger.Expense(id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	// Bind into the existing values so that fields not in the
	// request body are left untouched
	editable := expense.ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	updated, err := co.Ledger.UpdateExpense(id, editable)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: co.newExpenseObject(updated)})
}

// DeleteExpense deletes an expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense
//	@Tags			Expenses
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Failure		404	{object}	httperrors.HTTPError
//	@Failure		500	{object}	httperrors.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.InvalidUUID(c)
		return
	}

	if err := co.Ledger.DeleteExpense(id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CleanupExpenses deletes all expenses
//
//	@Summary		Delete all expenses
//	@Description	Permanently deletes all expenses. Categories are kept.
//	@Tags			Expenses
//	@Success		204
//	@Failure		400		{object}	httperrors.HTTPError
//	@Failure		500		{object}	httperrors.HTTPError
//	@Param			confirm	query		string	false	"Confirmation to delete all expenses. Must have the value 'yes-please-delete-everything'"
//	@Router			/v1/expenses [delete]
func (co Controller) CleanupExpenses(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		httperrors.New(c, http.StatusBadRequest, errCleanupConfirmation.Error())
		return
	}

	if err := co.Ledger.ClearExpenses(); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
