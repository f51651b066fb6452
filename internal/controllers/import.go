package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luy-tracker/backend/internal/httperrors"
	"github.com/luy-tracker/backend/internal/httputil"
	csvimport "github.com/luy-tracker/backend/internal/importer/parser/csv-import"
)

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, bool) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		httperrors.New(c, http.StatusBadRequest, errNoFilePost.Error())
		return nil, false
	}

	if err != nil {
		httperrors.Handler(c, err)
		return nil, false
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		httperrors.New(c, http.StatusBadRequest, fmt.Sprintf("%s: %s", errWrongFileSuffix.Error(), suffix))
		return nil, false
	}

	f, err := formFile.Open()
	if err != nil {
		httperrors.Handler(c, err)
		return nil, false
	}

	return f, true
}

// RegisterImportRoutes registers the routes for the import endpoint.
func (co Controller) RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsImport)
	r.POST("", co.CreateImport)
}

// OptionsImport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Import
//	@Success		204
//	@Router			/v1/import [options]
func (co Controller) OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// CreateImport imports expenses from a CSV file
//
//	@Summary		Import expenses
//	@Description	Imports expenses from a CSV file. The import is all or nothing, a single bad row rejects the whole file.
//	@Tags			Import
//	@Accept			multipart/form-data
//	@Produce		json
//	@Success		201		{object}	ExpenseListResponse
//	@Failure		400		{object}	httperrors.HTTPError
//	@Failure		500		{object}	httperrors.HTTPError
//	@Param			file	formData	file	true	"The CSV file to import"
//	@Router			/v1/import [post]
func (co Controller) CreateImport(c *gin.Context) {
	f, ok := getUploadedFile(c, ".csv")
	if !ok {
		return
	}
	defer f.Close()

	editables, err := csvimport.Parse(f)
	if err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	imported, err := co.Ledger.ImportExpenses(editables)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	expenseObjects := make([]Expense, 0, len(imported))
	for _, expense := range imported {
		expenseObjects = append(expenseObjects, co.newExpenseObject(expense))
	}

	c.JSON(http.StatusCreated, ExpenseListResponse{Data: expenseObjects})
}
