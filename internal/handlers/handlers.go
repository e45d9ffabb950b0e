package handlers

import (
	"errors"
	"log"
	"net/http"

	"quizzie-backend/internal/domain"
	"quizzie-backend/internal/dto"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto the API's status taxonomy:
// 400 validation, 401 auth, 404 not found, 500 everything else.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		dto.JsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		dto.JsonError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrShareCodeNotFound):
		dto.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		// The collided field is deliberately not revealed.
		dto.JsonError(c, http.StatusInternalServerError, domain.ErrEmailTaken.Error())
	default:
		log.Printf("Unhandled error: %v", err)
		dto.JsonError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
