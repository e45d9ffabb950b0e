package dto

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserSummary carries the identity plus the aggregate counters shown after
// login and on the profile.
type UserSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	TotalQuizzes     int    `json:"totalQuizzes"`
	TotalQuestions   int    `json:"totalQuestions"`
	TotalImpressions int    `json:"totalImpressions"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AnalyticsResponse struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Quizzes []QuizDTO `json:"quizzes"`
}
