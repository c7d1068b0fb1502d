package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/claritybank/badge-server/internal/service"
	"github.com/claritybank/badge-server/internal/summary"
)

// FromService turns a service error into a huma error. Known sentinels keep
// their own message; anything else becomes a 500 carrying message.
func FromService(err error, message string) error {
	switch {
	case errors.Is(err, service.ErrAccountNotFound), errors.Is(err, service.ErrUserNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInsufficientFunds):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidMovement):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, summary.ErrUnavailable):
		return huma.NewError(http.StatusServiceUnavailable, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
