// ABOUTME: Quiz endpoints for the Trackdemic API
// ABOUTME: Quiz listing, attempt lifecycle (start/submit), and attempt history

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Choice is one selectable answer for a question.
type Choice struct {
	ID         int    `json:"id"`
	ChoiceText string `json:"choice_text"`
	Order      int    `json:"order"`
}

// Question is a quiz question with its choices.
type Question struct {
	ID           int      `json:"id"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Points       int      `json:"points"`
	Order        int      `json:"order"`
	Choices      []Choice `json:"choices"`
}

// Quiz is a quiz record. Questions are only present on the detail endpoint.
type Quiz struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Course           int        `json:"course"`
	QuizType         string     `json:"quiz_type"`
	Topic            string     `json:"topic"`
	TimeLimitMinutes int        `json:"time_limit_minutes"`
	MaxAttempts      int        `json:"max_attempts"`
	PassingScore     int        `json:"passing_score"`
	IsActive         bool       `json:"is_active"`
	TotalQuestions   int        `json:"total_questions"`
	TotalPoints      int        `json:"total_points"`
	AttemptsCount    int        `json:"attempts_count"`
	BestScore        *float64   `json:"best_score"`
	CanAttempt       bool       `json:"can_attempt"`
	Questions        []Question `json:"questions,omitempty"`
}

// QuizAttempt is one student attempt at a quiz.
type QuizAttempt struct {
	ID          int      `json:"id"`
	Quiz        int      `json:"quiz"`
	QuizTitle   string   `json:"quiz_title"`
	StartedAt   string   `json:"started_at"`
	CompletedAt *string  `json:"completed_at"`
	Score       *float64 `json:"score"`
	Passed      bool     `json:"passed"`
}

// AttemptResponse wraps the attempt returned by start/submit.
type AttemptResponse struct {
	Message string      `json:"message"`
	Attempt QuizAttempt `json:"attempt"`
}

// Answer is one submitted answer. SelectedChoiceID is nil for text questions.
type Answer struct {
	QuestionID       int    `json:"question_id"`
	SelectedChoiceID *int   `json:"selected_choice_id,omitempty"`
	TextAnswer       string `json:"text_answer,omitempty"`
}

// QuizFilter narrows the quiz listing.
type QuizFilter struct {
	Course int
	Page   int
}

func (f QuizFilter) values() url.Values {
	params := url.Values{}
	if f.Course > 0 {
		params.Set("course", strconv.Itoa(f.Course))
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}

// ListQuizzes calls GET /quizzes/
func (c *Client) ListQuizzes(ctx context.Context, filter QuizFilter) (*Page[Quiz], error) {
	var page Page[Quiz]
	if err := c.do(ctx, http.MethodGet, withQuery("/quizzes/", filter.values()), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetQuiz calls GET /quizzes/{id}/
func (c *Client) GetQuiz(ctx context.Context, id int) (*Quiz, error) {
	var quiz Quiz
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/quizzes/%d/", id), nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// StartQuiz calls POST /quizzes/{id}/start/
func (c *Client) StartQuiz(ctx context.Context, id int) (*AttemptResponse, error) {
	var resp AttemptResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/quizzes/%d/start/", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitQuiz calls POST /quizzes/{id}/submit/
func (c *Client) SubmitQuiz(ctx context.Context, id int, answers []Answer) (*AttemptResponse, error) {
	body := map[string]any{"answers": answers}
	var resp AttemptResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/quizzes/%d/submit/", id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyAttempts calls GET /quizzes/my-attempts/
func (c *Client) MyAttempts(ctx context.Context) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := c.do(ctx, http.MethodGet, "/quizzes/my-attempts/", nil, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
