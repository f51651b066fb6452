package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luy-tracker/backend/internal/exporter"
	"github.com/luy-tracker/backend/internal/httperrors"
	"github.com/luy-tracker/backend/internal/httputil"
)

// RegisterExportRoutes registers the routes for the export endpoint.
func (co Controller) RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsExport)
	r.GET("", co.GetExport)
}

// OptionsExport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Export
//	@Success		204
//	@Router			/v1/export [options]
func (co Controller) OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExport returns all expenses as a CSV file
//
//	@Summary		Export expenses
//	@Description	Returns all expenses as a CSV file download
//	@Tags			Export
//	@Produce		text/csv
//	@Success		200	{string}	string
//	@Failure		500	{object}	httperrors.HTTPError
//	@Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	var buffer bytes.Buffer
	if err := exporter.WriteCSV(&buffer, co.Ledger.Expenses()); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.Filename))
	c.Data(http.StatusOK, "text/csv", buffer.Bytes())
}
