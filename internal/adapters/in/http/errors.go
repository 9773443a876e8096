package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// badRequest answers a request the command or query constructors rejected.
func (s *Server) badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// handleError maps an error returned by a use case handler. Input errors
// were caught by the constructors already, so anything unrecognised here
// means stored data or infrastructure failed.
func (s *Server) handleError(c echo.Context, err error) error {
	var transitionErr *order.TransitionError
	switch {
	case errors.As(err, &transitionErr):
		return c.JSON(http.StatusBadRequest, transitionErrorResponse{
			Error:           transitionErr.Message,
			CurrentStatus:   transitionErr.Current,
			RequestedStatus: transitionErr.Requested,
			Reason:          string(transitionErr.Reason),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return c.JSON(http.StatusConflict, errorResponse{
			Error: "Order was changed by another request, reload it and try again",
		})
	default:
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Bool("invalidStoredData", errs.IsInvalidInput(err)),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
