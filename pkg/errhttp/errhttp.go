// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/cakeshop/pkg/httpx"
	catalogdomain "github.com/ghuser/cakeshop/services/catalog/domain"
	ordersdomain "github.com/ghuser/cakeshop/services/orders/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrItemNotFound),
		errors.Is(err, ordersdomain.ErrOrderNotFound),
		errors.Is(err, ordersdomain.ErrNoOrders):
		return http.StatusNotFound // 404
	case errors.Is(err, catalogdomain.ErrItemAlreadyExists),
		errors.Is(err, ordersdomain.ErrInvalidStatusTransition):
		return http.StatusConflict // 409
	case errors.Is(err, catalogdomain.ErrInvalidItem),
		errors.Is(err, ordersdomain.ErrInvalidQuantity),
		errors.Is(err, ordersdomain.ErrInvalidAddress):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, ordersdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
