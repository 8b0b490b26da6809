// ABOUTME: Faculty endpoints for the Trackdemic API
// ABOUTME: Faculty profile, course and quiz authoring, and student rosters

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// FacultyProfile is a faculty member's extended profile record.
type FacultyProfile struct {
	EmployeeID                string `json:"employee_id"`
	Department                string `json:"department"`
	Specialization            string `json:"specialization"`
	Designation               string `json:"designation"`
	EducationalQualifications string `json:"educational_qualifications"`
	CertificationsAwards      string `json:"certifications_awards"`
	SubjectExpertise          string `json:"subject_expertise"`
	HireDate                  string `json:"hire_date"`
}

// CourseStudent is a roster entry with performance summary.
type CourseStudent struct {
	ID           int      `json:"id"`
	Username     string   `json:"username"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	EnrolledAt   string   `json:"enrolled_at"`
	Progress     float64  `json:"progress_percentage"`
	AverageScore *float64 `json:"average_score"`
}

// GetFacultyProfile calls GET /users/faculty/profile/
func (c *Client) GetFacultyProfile(ctx context.Context) (*FacultyProfile, error) {
	var profile FacultyProfile
	if err := c.do(ctx, http.MethodGet, "/users/faculty/profile/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateFacultyProfile calls PATCH /users/faculty/profile/update/
func (c *Client) UpdateFacultyProfile(ctx context.Context, fields map[string]any) (*FacultyProfile, error) {
	var profile FacultyProfile
	if err := c.do(ctx, http.MethodPatch, "/users/faculty/profile/update/", fields, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListMyCourses calls GET /courses/faculty/
func (c *Client) ListMyCourses(ctx context.Context) (*Page[Course], error) {
	var page Page[Course]
	if err := c.do(ctx, http.MethodGet, "/courses/faculty/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateCourse calls POST /courses/faculty/
func (c *Client) CreateCourse(ctx context.Context, fields map[string]any) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodPost, "/courses/faculty/", fields, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// UpdateCourse calls PATCH /courses/faculty/{id}/
func (c *Client) UpdateCourse(ctx context.Context, id int, fields map[string]any) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/courses/faculty/%d/", id), fields, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse calls DELETE /courses/faculty/{id}/
func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/courses/faculty/%d/", id), nil, nil)
}

// ListCourseStudents calls GET /courses/faculty/{id}/students/
func (c *Client) ListCourseStudents(ctx context.Context, courseID int) ([]CourseStudent, error) {
	var students []CourseStudent
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/faculty/%d/students/", courseID), nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// AddStudentToCourse calls POST /courses/faculty/{id}/students/add/
func (c *Client) AddStudentToCourse(ctx context.Context, courseID, studentID int) error {
	body := map[string]int{"student_id": studentID}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/courses/faculty/%d/students/add/", courseID), body, nil)
}

// RemoveStudentFromCourse calls DELETE /courses/faculty/{id}/students/{sid}/remove/
func (c *Client) RemoveStudentFromCourse(ctx context.Context, courseID, studentID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/courses/faculty/%d/students/%d/remove/", courseID, studentID), nil, nil)
}

// GetStudentPerformance calls GET /courses/faculty/{id}/students/{sid}/performance/
func (c *Client) GetStudentPerformance(ctx context.Context, courseID, studentID int) (json.RawMessage, error) {
	var perf json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/faculty/%d/students/%d/performance/", courseID, studentID), nil, &perf); err != nil {
		return nil, err
	}
	return perf, nil
}

// ListMyQuizzes calls GET /quizzes/faculty/
func (c *Client) ListMyQuizzes(ctx context.Context) (*Page[Quiz], error) {
	var page Page[Quiz]
	if err := c.do(ctx, http.MethodGet, "/quizzes/faculty/", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateQuiz calls POST /quizzes/faculty/
func (c *Client) CreateQuiz(ctx context.Context, fields map[string]any) (*Quiz, error) {
	var quiz Quiz
	if err := c.do(ctx, http.MethodPost, "/quizzes/faculty/", fields, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// UpdateQuiz calls PATCH /quizzes/faculty/{id}/
func (c *Client) UpdateQuiz(ctx context.Context, id int, fields map[string]any) (*Quiz, error) {
	var quiz Quiz
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/quizzes/faculty/%d/", id), fields, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// DeleteQuiz calls DELETE /quizzes/faculty/{id}/
func (c *Client) DeleteQuiz(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/quizzes/faculty/%d/", id), nil, nil)
}

// ListQuizAttempts calls GET /quizzes/faculty/{id}/attempts/
func (c *Client) ListQuizAttempts(ctx context.Context, quizID int) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/quizzes/faculty/%d/attempts/", quizID), nil, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
