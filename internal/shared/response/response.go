package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every endpoint responds with.
// Success responses carry Data, error responses carry Error.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the error kind and the per-field failure map.
// Errors is always present in error responses, empty when there is
// nothing field-level to report.
type ErrorBody struct {
	Name   string      `json:"name"`
	Errors interface{} `json:"errors"`
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, statusCode int, message, name string, errors interface{}) {
	if errors == nil {
		errors = map[string]interface{}{}
	}
	c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Name:   name,
			Errors: errors,
		},
	})
}
