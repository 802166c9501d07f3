package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/inline"
	"github.com/Chinmay1190/cricket-gear-hub/internal/newsletter"
	"github.com/Chinmay1190/cricket-gear-hub/internal/order"
	"github.com/Chinmay1190/cricket-gear-hub/internal/user"
	"github.com/Chinmay1190/cricket-gear-hub/internal/wishlist"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not_found")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() error {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "request body or query is malformed"}
}

func newValidationError(field, code, message string) error {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError maps domain errors onto HTTP responses. Unknown errors are
// logged and returned as an opaque 500.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized", "authentication required"

	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, wishlist.ErrEntryNotFound):
		return http.StatusNotFound, "not_found", "resource not found"

	case errors.Is(err, inline.ErrSourceUnavailable):
		return http.StatusConflict, "invoice_source_unavailable",
			"the invoice document could not be prepared; retry the export"

	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "an account with this email already exists"

	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, "invalid_status_transition", "the order cannot move to that status"

	case errors.Is(err, cart.ErrOutOfStock):
		return http.StatusConflict, "out_of_stock", "not enough stock for the requested quantity"

	case errors.Is(err, order.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "empty_cart", "the cart is empty"

	case errors.Is(err, catalog.ErrInvalidID),
		errors.Is(err, order.ErrInvalidID),
		errors.Is(err, order.ErrInvalidAddress),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidPassword),
		errors.Is(err, newsletter.ErrInvalidEmail):
		return http.StatusBadRequest, err.Error(), "invalid request"

	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "too_many_requests", "slow down and retry shortly"

	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable", "the service is temporarily unavailable"

	default:
		return http.StatusInternalServerError, "internal_error", "something went wrong"
	}
}
