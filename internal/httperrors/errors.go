// Package httperrors translates the errors of the ledger into HTTP responses.
package httperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/luy-tracker/backend/internal/currency"
	"github.com/luy-tracker/backend/internal/httputil"
	"github.com/luy-tracker/backend/internal/ledger"
	"github.com/luy-tracker/backend/internal/models"
	"github.com/luy-tracker/backend/internal/storage"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Error string `json:"error" example:"there is no expense with ID d3c4a1f2-0000-0000-0000-000000000000"`
}

// Generate a struct containing the HTTP error on the fly.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	// Format msgAndArgs in a final string.
	// This is taken almost exactly from https://github.com/stretchr/testify/blob/181cea6eab8b2de7071383eca4be32a424db38dd/assert/assertions.go#L181
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

func InvalidUUID(c *gin.Context) {
	New(c, http.StatusBadRequest, "The specified resource ID is not a valid UUID")
}

func InvalidMonth(c *gin.Context) {
	New(c, http.StatusBadRequest, "Could not parse the specified month, did you use YYYY-MM format?")
}

func InvalidQueryString(c *gin.Context) {
	New(c, http.StatusBadRequest, "The query string contains unparseable data. Please check the values")
}

// Handler writes the error response matching the error that has occurred.
func Handler(c *gin.Context, err error) {
	var validationError *models.ValidationError
	var jsonUnmarshalTypeError *json.UnmarshalTypeError

	switch {
	// Missing or malformed fields => 400
	case errors.As(err, &validationError),
		errors.Is(err, models.ErrDuplicateCategory),
		errors.Is(err, currency.ErrUnknownCurrency),
		errors.Is(err, httputil.ErrRequestBodyEmpty),
		errors.Is(err, httputil.ErrInvalidBody),
		errors.As(err, &jsonUnmarshalTypeError):
		New(c, http.StatusBadRequest, err.Error())

	// Unknown expense or category position => 404
	case errors.Is(err, models.ErrNotFound):
		New(c, http.StatusNotFound, err.Error())

	// Deleting a category that is still in use needs confirmation => 409
	case errors.Is(err, ledger.ErrConfirmationRequired):
		New(c, http.StatusConflict, err.Error())

	// Database error
	case errors.Is(err, storage.ErrStorage):
		New(c, http.StatusInternalServerError, "A database error occurred during your request")

	// All other errors
	default:
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		New(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c)))
	}
}
