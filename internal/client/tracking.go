// ABOUTME: Performance tracking endpoints for the Trackdemic API
// ABOUTME: Student performance, predictions, and class-level insights

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Performance is a student performance record computed by the backend.
type Performance struct {
	OverallScore         float64  `json:"overall_score"`
	EngagementLevel      string   `json:"engagement_level"`
	RiskLevel            string   `json:"risk_level"`
	PredictedPerformance *float64 `json:"predicted_performance"`
	PredictionConfidence *float64 `json:"prediction_confidence"`
	UpdatedAt            string   `json:"updated_at"`
}

// LearningAnalytics summarizes a student's study behavior.
type LearningAnalytics struct {
	StudyTimeMinutes        int     `json:"study_time_minutes"`
	QuizAttemptsCount       int     `json:"quiz_attempts_count"`
	CoursesCompleted        int     `json:"courses_completed"`
	AverageScore            float64 `json:"average_score"`
	LoginFrequency          int     `json:"login_frequency"`
	ContentInteractionScore float64 `json:"content_interaction_score"`
	HelpSeekingFrequency    int     `json:"help_seeking_frequency"`
}

func studentParams(studentID int) url.Values {
	params := url.Values{}
	if studentID > 0 {
		params.Set("student_id", strconv.Itoa(studentID))
	}
	return params
}

// GetPerformance calls GET /tracking/performance/
func (c *Client) GetPerformance(ctx context.Context, studentID int) (*Performance, error) {
	var perf Performance
	if err := c.do(ctx, http.MethodGet, withQuery("/tracking/performance/", studentParams(studentID)), nil, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}

// GetPrediction calls GET /tracking/prediction/
func (c *Client) GetPrediction(ctx context.Context, studentID int) (*Performance, error) {
	var perf Performance
	if err := c.do(ctx, http.MethodGet, withQuery("/tracking/prediction/", studentParams(studentID)), nil, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}

// GetAnalytics calls GET /tracking/analytics/
func (c *Client) GetAnalytics(ctx context.Context, studentID int) ([]LearningAnalytics, error) {
	var resp struct {
		Analytics []LearningAnalytics `json:"analytics"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/tracking/analytics/", studentParams(studentID)), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Analytics, nil
}

// GetClassInsights calls GET /tracking/class-insights/
// The payload shape depends on the analytics service, so it stays raw.
func (c *Client) GetClassInsights(ctx context.Context, courseID int) (json.RawMessage, error) {
	params := url.Values{}
	if courseID > 0 {
		params.Set("course_id", strconv.Itoa(courseID))
	}
	var insights json.RawMessage
	if err := c.do(ctx, http.MethodGet, withQuery("/tracking/class-insights/", params), nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}
