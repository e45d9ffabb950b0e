package handlers

import (
	"net/http"

	"quizzie-backend/internal/dto"
	"quizzie-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		Message: "User registered successfully",
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User: dto.UserSummary{
			ID:               result.User.ID,
			Name:             result.User.Name,
			Email:            result.User.Email,
			TotalQuizzes:     result.Stats.TotalQuizzes,
			TotalQuestions:   result.Stats.TotalQuestions,
			TotalImpressions: result.Stats.TotalImpressions,
		},
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserSummary{
		ID:               profile.User.ID,
		Name:             profile.User.Name,
		Email:            profile.User.Email,
		TotalQuizzes:     profile.Stats.TotalQuizzes,
		TotalQuestions:   profile.Stats.TotalQuestions,
		TotalImpressions: profile.Stats.TotalImpressions,
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateProfileResponse{
		Name:  user.Name,
		Email: user.Email,
	})
}

func (h *UserHandler) GetAnalytics(c *gin.Context) {
	userID := c.Param("id")

	analytics, err := h.userService.GetAnalytics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.AnalyticsResponse{
		ID:      analytics.User.ID,
		Name:    analytics.User.Name,
		Email:   analytics.User.Email,
		Quizzes: dto.NewQuizDTOs(analytics.Quizzes),
	}

	c.JSON(http.StatusOK, resp)
}
