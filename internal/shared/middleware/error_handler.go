package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
)

// ErrorHandler is the last-mile translation step: it inspects any error
// a handler attached to the context and renders the uniform error
// envelope. Precedence:
//  1. validation error   -> 400 with the field-level failure map
//  2. duplicate-key      -> 400 naming the offending field and value
//  3. anything else      -> the error's own status (500 if unset)
//
// Errors are never retried here and never leak raw internals; the
// original error is logged server-side only.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Err(err).
			Msg("Request failed")

		var validationErr *apperror.ValidationError
		if errors.As(err, &validationErr) {
			response.Error(c, http.StatusBadRequest, "Validation failed", "ValidationError", validationErr.Fields)
			return
		}

		var duplicateErr *apperror.DuplicateKeyError
		if errors.As(err, &duplicateErr) {
			fields := map[string]apperror.FieldError{
				duplicateErr.Field: {
					Message: duplicateErr.Error(),
					Kind:    "unique",
					Path:    duplicateErr.Field,
					Value:   duplicateErr.Value,
				},
			}
			response.Error(c, http.StatusBadRequest, "Validation failed", "DuplicateKeyError", fields)
			return
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			var nested interface{}
			if appErr.Details != nil {
				nested = appErr.Details["errors"]
			}
			response.Error(c, appErr.Status(), appErr.Message, appErr.Name, nested)
			return
		}

		response.Error(c, http.StatusInternalServerError, "Internal Server Error", "Error", nil)
	}
}
