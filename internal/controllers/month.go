package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luy-tracker/backend/internal/httperrors"
	"github.com/luy-tracker/backend/internal/httputil"
	"github.com/luy-tracker/backend/internal/query"
	"github.com/luy-tracker/backend/internal/report"
	"github.com/luy-tracker/backend/internal/types"
)

type MonthListResponse struct {
	Data []string `json:"data" example:"2024-06,2024-05"` // Months with expenses, newest first
}

type MonthResponse struct {
	Data report.Summary `json:"data"` // Data for the month
}

type MonthCategoriesResponse struct {
	Data []report.CategoryTotal `json:"data"` // Breakdown of the month by category
}

type MonthTrendResponse struct {
	Data []report.MonthBucket `json:"data"` // Totals of the trailing months, oldest first
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsMonthList)
		r.GET("", co.GetMonths)
	}

	{
		r.OPTIONS("/:month", co.OptionsMonthDetail)
		r.GET("/:month", co.GetMonth)
		r.OPTIONS("/:month/categories", co.OptionsMonthCategories)
		r.GET("/:month/categories", co.GetMonthCategories)
		r.OPTIONS("/:month/trend", co.OptionsMonthTrend)
		r.GET("/:month/trend", co.GetMonthTrend)
	}
}

// parseMonthParam parses the month URL parameter.
func parseMonthParam(c *gin.Context) (types.Month, bool) {
	month, err := types.ParseMonth(c.Param("month"))
	if err != nil {
		httperrors.InvalidMonth(c)
		return types.Month{}, false
	}

	return month, true
}

// OptionsMonthList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Router			/v1/months [options]
func (co Controller) OptionsMonthList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsMonthDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month} [options]
func (co Controller) OptionsMonthDetail(c *gin.Context) {
	if _, ok := parseMonthParam(c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// OptionsMonthCategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/categories [options]
func (co Controller) OptionsMonthCategories(c *gin.Context) {
	if _, ok := parseMonthParam(c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// OptionsMonthTrend returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Months
//	@Success		204
//	@Failure		400	{object}	httperrors.HTTPError
//	@Param			month	path	string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/trend [options]
func (co Controller) OptionsMonthTrend(c *gin.Context) {
	if _, ok := parseMonthParam(c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// GetMonths returns the months that have expenses
//
//	@Summary		List months
//	@Description	Returns all months with at least one expense, newest first
//	@Tags			Months
//	@Produce		json
//	@Success		200	{object}	MonthListResponse
//	@Router			/v1/months [get]
func (co Controller) GetMonths(c *gin.Context) {
	c.JSON(http.StatusOK, MonthListResponse{Data: query.DistinctMonths(co.Ledger.Expenses())})
}

// GetMonth returns the summary for a month
//
//	@Summary		Get data about a month
//	@Description	Returns the total, the largest expense and, when the day parameter is given, the daily average for a month. Amounts are normalized to the base currency.
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	MonthResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Param			day		query		int		false	"Day of month to compute the daily average with, 1 to 31"
//	@Router			/v1/months/{month} [get]
func (co Controller) GetMonth(c *gin.Context) {
	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	var params struct {
		Day int `form:"day"`
	}
	if err := c.Bind(&params); err != nil || params.Day < 0 || params.Day > 31 {
		httperrors.InvalidQueryString(c)
		return
	}

	summary, err := report.Summarize(co.Ledger.Expenses(), month, params.Day, co.Ledger.Rates())
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: summary})
}

// GetMonthCategories returns the category breakdown for a month
//
//	@Summary		Get category breakdown
//	@Description	Returns the total spent per category for a month, in registry order. Categories without expenses in the month are omitted.
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	MonthCategoriesResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Router			/v1/months/{month}/categories [get]
func (co Controller) GetMonthCategories(c *gin.Context) {
	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	breakdown, err := report.CategoryBreakdown(co.Ledger.Expenses(), month, co.Ledger, co.Ledger.Rates())
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthCategoriesResponse{Data: breakdown})
}

// GetMonthTrend returns the trailing month totals ending at a month
//
//	@Summary		Get spending trend
//	@Description	Returns one total per month for the given month and the n months before it, oldest first. Months without expenses are included with a total of 0.
//	@Tags			Months
//	@Produce		json
//	@Success		200		{object}	MonthTrendResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Param			month	path		string	true	"The month in YYYY-MM format"
//	@Param			months	query		int		false	"Number of months before the given one, defaults to 6"
//	@Router			/v1/months/{month}/trend [get]
func (co Controller) GetMonthTrend(c *gin.Context) {
	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	params := struct {
		Months int `form:"months,default=6"`
	}{}
	if err := c.Bind(&params); err != nil || params.Months < 0 || params.Months > 120 {
		httperrors.InvalidQueryString(c)
		return
	}

	buckets, err := report.TrailingMonths(co.Ledger.Expenses(), params.Months, month, co.Ledger.Rates())
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthTrendResponse{Data: buckets})
}
