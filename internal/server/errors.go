package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/gst"
	hsndomain "github.com/bharatstack/gstbill/internal/hsn/domain"
	invoicedomain "github.com/bharatstack/gstbill/internal/invoice/domain"
	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
	sequencedomain "github.com/bharatstack/gstbill/internal/sequence/domain"
	warehousedomain "github.com/bharatstack/gstbill/internal/warehouse/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, invoicedomain.ErrInvalidMerchant),
		errors.Is(err, merchantdomain.ErrInvalidMerchant),
		errors.Is(err, warehousedomain.ErrInvalidMerchant),
		errors.Is(err, hsndomain.ErrInvalidMerchant),
		errors.Is(err, sequencedomain.ErrInvalidMerchant):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}

	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}

	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}

	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}

	case errors.Is(err, invoicedomain.ErrRateLimited),
		errors.Is(err, invoicedomain.ErrIssuanceInFlight):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: err.Error(),
		}

	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, invoicedomain.ErrInvalidOrder),
		errors.Is(err, invoicedomain.ErrNotCreditable),
		errors.Is(err, merchantdomain.ErrInvalidLegalName),
		errors.Is(err, merchantdomain.ErrInvalidGSTIN),
		errors.Is(err, merchantdomain.ErrInvalidState),
		errors.Is(err, merchantdomain.ErrInvalidGSTRate),
		errors.Is(err, warehousedomain.ErrInvalidName),
		errors.Is(err, warehousedomain.ErrInvalidState),
		errors.Is(err, hsndomain.ErrInvalidMappingKey),
		errors.Is(err, hsndomain.ErrInvalidHSNCode),
		errors.Is(err, hsndomain.ErrInvalidGSTRate),
		errors.Is(err, sequencedomain.ErrInvalidPrefix),
		errors.Is(err, sequencedomain.ErrInvalidResetFrequency),
		errors.Is(err, gst.ErrUnknownState):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, merchantdomain.ErrProfileNotFound),
		errors.Is(err, warehousedomain.ErrWarehouseNotFound),
		errors.Is(err, hsndomain.ErrMappingNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrAlreadyInvoiced),
		errors.Is(err, invoicedomain.ErrCreditNoteExists),
		errors.Is(err, invoicedomain.ErrInvoiceCancelled):
		return true
	default:
		return false
	}
}
