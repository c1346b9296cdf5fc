package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	"github.com/namaaror/invoice-manage/internal/entitystore"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
	"github.com/namaaror/invoice-manage/internal/logger"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"go.uber.org/zap"
)

// apiError is the JSON error envelope returned by every API handler.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

// AbortWithError maps domain errors onto HTTP statuses and writes the error
// envelope. Unknown errors surface as a 500 with a generic code.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case isNotFoundError(err):
		status = http.StatusNotFound
		code = err.Error()
	case isValidationError(err):
		status = http.StatusBadRequest
		code = err.Error()
	}

	message := "request failed"
	if status != http.StatusInternalServerError {
		message = err.Error()
	} else {
		logger.FromGinContext(c).Error("unhandled request error", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Code: code, Message: message}})
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, entitystore.ErrNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidPhone):
		return true
	case errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidRate):
		return true
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidCustomer),
		errors.Is(err, invoicedomain.ErrNoItems),
		errors.Is(err, invoicedomain.ErrInvalidProduct),
		errors.Is(err, invoicedomain.ErrInvalidQuantity),
		errors.Is(err, invoicedomain.ErrUnknownProduct),
		errors.Is(err, invoicedomain.ErrInvalidDate),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, entitystore.ErrMissingID):
		return true
	default:
		return false
	}
}
