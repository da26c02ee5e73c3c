package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/internal/invoice"
	"github.com/cristianadrielbraun/payqr/internal/qrengine"
	"github.com/cristianadrielbraun/payqr/internal/session"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError turns an error attached to the request into a status and body.
func MapError(err *gin.Error) (int, ErrorResponse) {
	var maxBytes *http.MaxBytesError
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err.Err, session.ErrNotFound), errors.Is(err.Err, currency.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "resource not found", Details: err.Error()}
	case errors.Is(err.Err, session.ErrPresetUnknown):
		return http.StatusNotFound, ErrorResponse{Error: "preset not found", Details: err.Error()}
	case errors.Is(err.Err, session.ErrExpired):
		return http.StatusGone, ErrorResponse{Error: "code expired", Details: "disable or re-arm the disposable timer"}
	case errors.As(err.Err, &maxBytes):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Error: "upload too large", Details: err.Error()}
	case err.IsType(gin.ErrorTypeBind),
		errors.As(err.Err, &verrs),
		errors.Is(err.Err, session.ErrInvalidInput),
		errors.Is(err.Err, invoice.ErrInvalid),
		errors.Is(err.Err, qrengine.ErrUnsupportedFormat),
		errors.Is(err.Err, qrengine.ErrUnsupportedLogo):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()}
	}

	log.Error().Err(err.Err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			status, resp := MapError(c.Errors.Last())
			c.JSON(status, resp)
		}
	}
}
