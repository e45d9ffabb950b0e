package dto

import (
	"time"

	"quizzie-backend/internal/repository"
)

type OptionInput struct {
	OptionText string `json:"optionText"`
	OptionURL  string `json:"optionUrl"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionInput struct {
	Text    string        `json:"text" binding:"required"`
	Options []OptionInput `json:"options" binding:"required,min=1"`
	Timer   int           `json:"timer"`
	Answer  int           `json:"answer"`
}

type QuizData struct {
	CreatorID string          `json:"creatorId" binding:"required"`
	QuizName  string          `json:"quizName" binding:"required"`
	QuizType  string          `json:"quizType" binding:"required"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1"`
}

type CreateQuizRequest struct {
	QuizData QuizData `json:"quizData" binding:"required"`
}

type UpdateQuizRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type TakeQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

type TakeQuizResponse struct {
	Score int `json:"score"`
}

type OptionDTO struct {
	OptionText  string `json:"optionText,omitempty"`
	OptionURL   string `json:"optionUrl,omitempty"`
	IsCorrect   bool   `json:"isCorrect"`
	OptionCount int    `json:"optionCount"`
}

type QuestionDTO struct {
	ID        string      `json:"id"`
	QuizID    string      `json:"quizId"`
	Text      string      `json:"text"`
	Options   []OptionDTO `json:"options"`
	Timer     int         `json:"timer"`
	Answer    int         `json:"answer"`
	Attempted int         `json:"attempted"`
	Correct   int         `json:"correct"`
	Incorrect int         `json:"incorrect"`
}

type QuizDTO struct {
	ID          string        `json:"id"`
	CreatorID   string        `json:"creatorId"`
	QuizName    string        `json:"quizName"`
	QuizType    string        `json:"quizType"`
	Impressions int           `json:"impressions"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
	Questions   []QuestionDTO `json:"questions,omitempty"`
}

type ShareQuizResponse struct {
	Message   string  `json:"message"`
	ShareCode string  `json:"shareCode"`
	Quiz      QuizDTO `json:"quiz"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewQuizDTO(quiz *repository.Quiz) QuizDTO {
	out := QuizDTO{
		ID:          quiz.ID,
		CreatorID:   quiz.CreatorID,
		QuizName:    quiz.QuizName,
		QuizType:    quiz.QuizType,
		Impressions: quiz.Impressions,
		CreatedAt:   quiz.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   quiz.UpdatedAt.Format(time.RFC3339),
	}

	for _, question := range quiz.Questions {
		out.Questions = append(out.Questions, NewQuestionDTO(question))
	}

	return out
}

func NewQuizDTOs(quizzes []*repository.Quiz) []QuizDTO {
	out := make([]QuizDTO, len(quizzes))
	for i, quiz := range quizzes {
		out[i] = NewQuizDTO(quiz)
	}
	return out
}

func NewQuestionDTO(question *repository.Question) QuestionDTO {
	options := make([]OptionDTO, len(question.Options))
	for i, opt := range question.Options {
		options[i] = OptionDTO{
			OptionText:  opt.OptionText,
			OptionURL:   opt.OptionURL,
			IsCorrect:   opt.IsCorrect,
			OptionCount: opt.OptionCount,
		}
	}

	return QuestionDTO{
		ID:        question.ID,
		QuizID:    question.QuizID,
		Text:      question.Text,
		Options:   options,
		Timer:     question.Timer,
		Answer:    question.Answer,
		Attempted: question.Attempted,
		Correct:   question.Correct,
		Incorrect: question.Incorrect,
	}
}
