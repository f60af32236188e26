package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	devicedomain "github.com/smallbiznis/derent/internal/device/domain"
	rentaldomain "github.com/smallbiznis/derent/internal/rental/domain"
	tokendomain "github.com/smallbiznis/derent/internal/token/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrInternal       = errors.New("internal_error")
)

// ErrorHandlingMiddleware maps domain sentinel errors onto HTTP
// statuses in one place, so handlers only ever push errors.
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
		c.Header("Content-Type", "application/json")
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
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, devicedomain.ErrNotOwner),
		errors.Is(err, rentaldomain.ErrNotAdmin):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, rentaldomain.ErrInsufficientBalance),
		errors.Is(err, devicedomain.ErrInsufficientBalance),
		errors.Is(err, tokendomain.ErrTransferFailed):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "rejected",
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
		errors.Is(err, devicedomain.ErrInvalidPrice),
		errors.Is(err, devicedomain.ErrInvalidOwner),
		errors.Is(err, rentaldomain.ErrZeroPayment),
		errors.Is(err, rentaldomain.ErrAmountTooLarge),
		errors.Is(err, rentaldomain.ErrInvalidDuration),
		errors.Is(err, rentaldomain.ErrInvalidRenter),
		errors.Is(err, rentaldomain.ErrInvalidDestination),
		errors.Is(err, rentaldomain.ErrInvalidAmount),
		errors.Is(err, rentaldomain.ErrInvalidFee),
		errors.Is(err, rentaldomain.ErrDeviceInactive),
		errors.Is(err, tokendomain.ErrInvalidAmount),
		errors.Is(err, tokendomain.ErrInvalidAccount):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, devicedomain.ErrNotFound),
		errors.Is(err, rentaldomain.ErrOrderNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
