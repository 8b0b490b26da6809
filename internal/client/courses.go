// ABOUTME: Course catalog endpoints for the Trackdemic API
// ABOUTME: Browsing, categories, and enrollment operations

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Category is a course category.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Instructor is the course owner summary embedded in course records.
type Instructor struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Course is a catalog entry.
type Course struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      Category   `json:"category"`
	Instructor    Instructor `json:"instructor"`
	Difficulty    string     `json:"difficulty"`
	DurationHours int        `json:"duration_hours"`
	Price         string     `json:"price"`
	IsActive      bool       `json:"is_active"`
	EnrolledCount int        `json:"enrolled_count"`
	AverageRating float64    `json:"average_rating"`
	IsEnrolled    bool       `json:"is_enrolled"`
	CreatedAt     string     `json:"created_at"`
}

// Enrollment is a student's active enrollment in a course.
type Enrollment struct {
	ID                 int     `json:"id"`
	Course             Course  `json:"course"`
	EnrolledAt         string  `json:"enrolled_at"`
	ProgressPercentage float64 `json:"progress_percentage"`
	IsActive           bool    `json:"is_active"`
}

// CourseFilter narrows the course catalog listing.
type CourseFilter struct {
	Search   string
	Category string
	Page     int
}

func (f CourseFilter) values() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	return params
}

// ListCourses calls GET /courses/
func (c *Client) ListCourses(ctx context.Context, filter CourseFilter) (*Page[Course], error) {
	var page Page[Course]
	if err := c.do(ctx, http.MethodGet, withQuery("/courses/", filter.values()), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCourse calls GET /courses/{id}/
func (c *Client) GetCourse(ctx context.Context, id int) (*Course, error) {
	var course Course
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/%d/", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListCategories calls GET /courses/categories/
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/courses/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// EnrollCourse calls POST /courses/{id}/enroll/
func (c *Client) EnrollCourse(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/courses/%d/enroll/", id), nil, nil)
}

// UnenrollCourse calls POST /courses/{id}/unenroll/
func (c *Client) UnenrollCourse(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/courses/%d/unenroll/", id), nil, nil)
}

// MyEnrollments calls GET /courses/my-enrollments/
func (c *Client) MyEnrollments(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.do(ctx, http.MethodGet, "/courses/my-enrollments/", nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
