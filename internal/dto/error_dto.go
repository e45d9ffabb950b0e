package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the single error shape of the API: {"message": "..."}.
type ErrorResponse struct {
	Message string `json:"message"`
}

func JsonError(c *gin.Context, status int, message ...string) {
	msg := http.StatusText(status)
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}

	c.JSON(status, ErrorResponse{
		Message: msg,
	})
}
