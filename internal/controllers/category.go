package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luy-tracker/backend/internal/httperrors"
	"github.com/luy-tracker/backend/internal/httputil"
	"github.com/luy-tracker/backend/internal/ledger"
)

type CategoryListResponse struct {
	Data []Category `json:"data"` // List of categories
}

type CategoryResponse struct {
	Data Category `json:"data"` // Data for the category
}

type CategoryDeleteResponse struct {
	Data ledger.CategoryDeleteRequest `json:"data"` // What the delete would do
}

type Category struct {
	Name       string `json:"name" example:"Food"`     // Name of the category
	Position   int    `json:"position" example:"0"`    // Position in the registry, determines the color
	Color      string `json:"color" example:"#007bff"` // Color assigned by position
	UsageCount int    `json:"usageCount" example:"2"`  // Number of expenses referencing the category
}

type CategoryEditable struct {
	Name string `json:"name" example:"Groceries"` // Name of the category
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category at a position. Categories are addressed by position, not
	// by name or ID, since the position determines the color.
	{
		r.OPTIONS("/:position", co.OptionsCategoryDetail)
		r.GET("/:position", co.GetCategory)
		r.PATCH("/:position", co.UpdateCategory)
		r.DELETE("/:position", co.DeleteCategory)
	}
}

// categoryPosition parses the position URL parameter.
func categoryPosition(c *gin.Context) (int, error) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 0 {
		return 0, errPositionInvalid
	}

	return position, nil
}

// newCategoryObject assembles the API view of a registered category.
func (co Controller) newCategoryObject(name string, position int) Category {
	return Category{
		Name:       name,
		Position:   position,
		Color:      co.Ledger.ColorOf(name),
		UsageCount: co.Ledger.CategoryUsage(name),
	}
}

// OptionsCategoryList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Router			/v1/categories [options]
func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsCategoryDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		404			{object}	httperrors.HTTPError
//	@Param			position	path		int	true	"Position of the category"
//	@Router			/v1/categories/{position} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	position, err := categoryPosition(c)
	if err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	if position >= len(co.Ledger.Categories()) {
		httperrors.New(c, http.StatusNotFound, "there is no category at position %d", position)
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetCategories returns all categories
//
//	@Summary		List categories
//	@Description	Returns the category registry in registry order
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	names := co.Ledger.Categories()

	categoryObjects := make([]Category, 0, len(names))
	for i, name := range names {
		categoryObjects = append(categoryObjects, co.newCategoryObject(name, i))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categoryObjects})
}

// GetCategory returns the category at a position
//
//	@Summary		Get category
//	@Description	Returns the category at the given registry position
//	@Tags			Categories
//	@Produce		json
//	@Success		200			{object}	CategoryResponse
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		404			{object}	httperrors.HTTPError
//	@Param			position	path		int	true	"Position of the category"
//	@Router			/v1/categories/{position} [get]
func (co Controller) GetCategory(c *gin.Context) {
	position, err := categoryPosition(c)
	if err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	names := co.Ledger.Categories()
	if position >= len(names) {
		httperrors.New(c, http.StatusNotFound, "there is no category at position %d", position)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: co.newCategoryObject(names[position], position)})
}

// CreateCategory registers a new category
//
//	@Summary		Create category
//	@Description	Registers a new category at the end of the registry
//	@Tags			Categories
//	@Produce		json
//	@Success		201			{object}	CategoryResponse
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			category	body		CategoryEditable	true	"Category"
//	@Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	if err := co.Ledger.AddCategory(editable.Name); err != nil {
		httperrors.Handler(c, err)
		return
	}

	names := co.Ledger.Categories()
	position := len(names) - 1

	c.JSON(http.StatusCreated, CategoryResponse{Data: co.newCategoryObject(names[position], position)})
}

// UpdateCategory renames the category at a position
//
//	@Summary		Rename category
//	@Description	Renames the category at the given position. The position and with it the color are kept.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	CategoryResponse
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		404			{object}	httperrors.HTTPError
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			position	path		int					true	"Position of the category"
//	@Param			category	body		CategoryEditable	true	"Category"
//	@Router			/v1/categories/{position} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	position, err := categoryPosition(c)
	if err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	if err := co.Ledger.RenameCategory(position, editable.Name); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: co.newCategoryObject(co.Ledger.Categories()[position], position)})
}

// DeleteCategory deletes the category at a position
//
//	@Summary		Delete category
//	@Description	Deletes the category at the given position. When expenses still reference the category, the delete must be confirmed with the confirm parameter and leaves those expenses untouched.
//	@Tags			Categories
//	@Produce		json
//	@Success		204
//	@Failure		400			{object}	httperrors.HTTPError
//	@Failure		404			{object}	httperrors.HTTPError
//	@Failure		409			{object}	CategoryDeleteResponse
//	@Failure		500			{object}	httperrors.HTTPError
//	@Param			position	path		int		true	"Position of the category"
//	@Param			confirm		query		bool	false	"Confirm deleting a category that is still in use"
//	@Router			/v1/categories/{position} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	position, err := categoryPosition(c)
	if err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	var params struct {
		Confirm bool `form:"confirm"`
	}
	if err := c.Bind(&params); err != nil {
		httperrors.InvalidQueryString(c)
		return
	}

	request, err := co.Ledger.RequestCategoryDelete(position)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	err = co.Ledger.DeleteCategory(position, params.Confirm)
	if errors.Is(err, ledger.ErrConfirmationRequired) {
		// Report what the delete would do so that the client can ask
		// the user before retrying with confirm=true
		c.JSON(http.StatusConflict, CategoryDeleteResponse{Data: request})
		return
	}
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
