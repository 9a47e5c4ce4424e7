package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a machine-readable code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw error into an ErrorInfo, hiding driver internals
// while keeping enough detail for the user to act on. The context string is a
// hint about the operation that failed ("create product", "delete user", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record is referenced by other data",
		}
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "A backing service is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}
	if strings.Contains(errLower, "order_number") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Order number collision, please retry",
		}
	}
	if strings.Contains(errLower, "code") && strings.Contains(errLower, "coupon") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A coupon with this code already exists",
		}
	}
	if strings.Contains(errLower, "platform") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This platform is already configured",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "The record already exists",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "coupon"):
		return "Coupon not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	case strings.Contains(contextLower, "notification"):
		return "Notification not found"
	default:
		return "The requested record was not found"
	}
}
