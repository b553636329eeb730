package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP statuses.
func (s *Server) writeError(ctx echo.Context, err error) error {
	status := statusFor(err)
	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// writeConflictAware is writeError plus a refresh: on a conflict the response
// carries the order's current summary, so the client sees the state it lost
// against.
func (s *Server) writeConflictAware(ctx echo.Context, err error, orderID kernel.UUID, actor kernel.Actor) error {
	status := statusFor(err)
	response := errorResponse{
		Code:    status,
		Message: err.Error(),
	}

	if status == http.StatusConflict {
		if query, queryErr := queries.NewGetOrderQuery(orderID, actor); queryErr == nil {
			if summary, getErr := s.getOrderHandler.Handle(ctx.Request().Context(), query); getErr == nil {
				current := orderResponseFrom(summary)
				response.Order = &current
			}
		}
	}

	return ctx.JSON(status, response)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
