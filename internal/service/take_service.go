package service

import (
	"context"

	"quizzie-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// TakeService scores submitted answer sets and maintains the per-question
// counters. A submission's answers align positionally with the quiz's question
// sequence: answers[i] belongs to questions[i].
type TakeService struct {
	quizzes QuizStore
	mq      Publisher
}

func NewTakeService(quizzes QuizStore, mq Publisher) *TakeService {
	return &TakeService{
		quizzes: quizzes,
		mq:      mq,
	}
}

type TakeResult struct {
	QuizType string
	Score    int
}

// SubmitAnswers applies one submission against the quiz. Indices beyond either
// the answer or question sequence are not processed. All counter increments
// for the submission run concurrently and are awaited before returning, so a
// read issued after SubmitAnswers returns sees every delta.
func (s *TakeService) SubmitAnswers(ctx context.Context, quizID string, answers []int) (*TakeResult, error) {
	quiz, err := s.quizzes.GetQuizWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	n := len(answers)
	if len(quiz.Questions) < n {
		n = len(quiz.Questions)
	}

	result := &TakeResult{QuizType: quiz.QuizType}

	group, groupCtx := errgroup.WithContext(ctx)

	if quiz.QuizType == repository.QuizTypeQA {
		for i := 0; i < n; i++ {
			question := quiz.Questions[i]
			correct := answers[i] == question.Answer
			if correct {
				result.Score++
			}
			group.Go(func() error {
				return s.quizzes.IncrementAnswerCounters(groupCtx, question.ID, correct)
			})
		}
	} else {
		for i := 0; i < n; i++ {
			question := quiz.Questions[i]
			choice := answers[i]
			// A choice outside this question's own option range is skipped
			// without touching any tally.
			if choice < 0 || choice >= len(question.Options) {
				continue
			}
			group.Go(func() error {
				return s.quizzes.IncrementOptionCount(groupCtx, question.ID, choice)
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.mq, QueueQuizTaken, map[string]any{
		"quiz_id":   quiz.ID,
		"quiz_type": quiz.QuizType,
		"score":     result.Score,
	})

	return result, nil
}
