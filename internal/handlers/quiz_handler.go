package handlers

import (
	"net/http"

	"quizzie-backend/internal/dto"
	"quizzie-backend/internal/repository"
	"quizzie-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *service.QuizService
	takeService *service.TakeService
}

func NewQuizHandler(quizService *service.QuizService, takeService *service.TakeService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		takeService: takeService,
	}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := service.CreateQuizInput{
		CreatorID: req.QuizData.CreatorID,
		QuizName:  req.QuizData.QuizName,
		QuizType:  req.QuizData.QuizType,
		Questions: make([]service.QuestionInput, len(req.QuizData.Questions)),
	}
	for i, q := range req.QuizData.Questions {
		options := make([]repository.Option, len(q.Options))
		for j, opt := range q.Options {
			options[j] = repository.Option{
				OptionText: opt.OptionText,
				OptionURL:  opt.OptionURL,
				IsCorrect:  opt.IsCorrect,
			}
		}
		in.Questions[i] = service.QuestionInput{
			Text:    q.Text,
			Options: options,
			Timer:   q.Timer,
			Answer:  q.Answer,
		}
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizDTO(quiz))
}

func (h *QuizHandler) ShareQuiz(c *gin.Context) {
	quizID := c.Param("id")

	quiz, code, err := h.quizService.ShareQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareQuizResponse{
		Message:   "Quiz shared successfully",
		ShareCode: code,
		Quiz:      dto.NewQuizDTO(quiz),
	})
}

func (h *QuizHandler) ResolveShare(c *gin.Context) {
	code := c.Param("code")

	quiz, err := h.quizService.ResolveShare(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizDTO(quiz))
}

func (h *QuizHandler) TakeQuiz(c *gin.Context) {
	quizID := c.Param("id")

	var req dto.TakeQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.takeService.SubmitAnswers(c.Request.Context(), quizID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.QuizType == repository.QuizTypeQA {
		c.JSON(http.StatusOK, dto.TakeQuizResponse{Score: result.Score})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Poll completed"})
}

func (h *QuizHandler) GetAllQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizDTOs(quizzes))
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.Param("id")

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizDTO(quiz))
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.Param("id")

	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), quizID, req.Name, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizDTO(quiz))
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.Param("id")

	if err := h.quizService.DeleteQuiz(c.Request.Context(), quizID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Quiz deleted successfully"})
}
