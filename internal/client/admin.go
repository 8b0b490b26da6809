// ABOUTME: Admin endpoints for the Trackdemic API
// ABOUTME: Dashboard statistics, user management, and course moderation

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// UserStats breaks down platform users by role and activity.
type UserStats struct {
	Total       int `json:"total"`
	Students    int `json:"students"`
	Faculty     int `json:"faculty"`
	Admins      int `json:"admins"`
	ActiveMonth int `json:"active_this_month"`
}

// CourseStats summarizes catalog state for the admin overview.
type CourseStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	Users       UserStats   `json:"users"`
	Courses     CourseStats `json:"courses"`
	Enrollments int         `json:"enrollments"`
	QuizCount   int         `json:"quiz_count"`
}

// AdminUser is a user record as seen by administrators.
type AdminUser struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserType    string `json:"user_type"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	DateJoined  string `json:"date_joined"`
}

// GetDashboardStats calls GET /users/admin/dashboard-stats/
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/users/admin/dashboard-stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListUsers calls GET /users/admin/users/
func (c *Client) ListUsers(ctx context.Context, search string) ([]AdminUser, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	var resp struct {
		Results []AdminUser `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/users/admin/users/", params), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// UpdateUser calls PUT /users/admin/users/{id}/
func (c *Client) UpdateUser(ctx context.Context, userID int, fields map[string]any) (*AdminUser, error) {
	var user AdminUser
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/admin/users/%d/", userID), fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser calls DELETE /users/admin/users/{id}/delete/
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/admin/users/%d/delete/", userID), nil, nil)
}

// ListAllCourses calls GET /users/admin/courses/
func (c *Client) ListAllCourses(ctx context.Context) ([]Course, error) {
	var resp struct {
		Results []Course `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/admin/courses/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// UpdateCourseStatus calls PUT /users/admin/courses/{id}/status/
func (c *Client) UpdateCourseStatus(ctx context.Context, courseID int, isActive bool) error {
	body := map[string]bool{"is_active": isActive}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/admin/courses/%d/status/", courseID), body, nil)
}
