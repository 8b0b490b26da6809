// ABOUTME: Authentication endpoints for the Trackdemic API
// ABOUTME: Login, registration, token verify, profile, and password operations

package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// User is the authenticated identity record the backend returns.
// RoleProfile fields stay raw JSON; their shape depends on user_type.
type User struct {
	ID             int             `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	UserType       string          `json:"user_type"`
	IsSuperuser    bool            `json:"is_superuser"`
	PhoneNumber    string          `json:"phone_number"`
	Bio            string          `json:"bio"`
	DateOfBirth    string          `json:"date_of_birth"`
	ProfilePicture string          `json:"profile_picture"`
	StudentProfile json.RawMessage `json:"student_profile,omitempty"`
	FacultyProfile json.RawMessage `json:"faculty_profile,omitempty"`
}

// Roles the backend recognizes. is_superuser overrides user_type for routing.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// EffectiveRole returns the role used for routing decisions.
func (u *User) EffectiveRole() string {
	if u.IsSuperuser {
		return RoleAdmin
	}
	return u.UserType
}

// DisplayName returns the user's full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// LoginInput is the credential pair for /auth/login/.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries both tokens and the user record. User stays raw so
// the session layer can merge it field-by-field with the persisted cache.
type LoginResponse struct {
	User    json.RawMessage `json:"user"`
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
}

// RegisterInput is the payload for /auth/register/.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	UserType        string `json:"user_type" validate:"required,oneof=student faculty admin"`
}

// RegisterResponse nests the token pair, unlike the login payload.
type RegisterResponse struct {
	User   json.RawMessage `json:"user"`
	Tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	} `json:"tokens"`
}

// VerifyResponse is the /auth/verify/ payload.
type VerifyResponse struct {
	Valid bool            `json:"valid"`
	User  json.RawMessage `json:"user"`
}

// ChangePasswordInput is the payload for /auth/change-password/.
type ChangePasswordInput struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// Login calls POST /auth/login/
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register calls POST /auth/register/
func (c *Client) Register(ctx context.Context, input RegisterInput) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout calls POST /auth/logout/ to blacklist the refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh_token": refreshToken}
	return c.do(ctx, http.MethodPost, "/auth/logout/", body, nil)
}

// VerifyToken calls GET /auth/verify/
func (c *Client) VerifyToken(ctx context.Context) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile calls PATCH /auth/profile/ and returns the updated user
// record raw, so callers can merge it over the persisted cache.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.do(ctx, http.MethodPatch, "/auth/profile/", fields, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ChangePassword calls PUT /auth/change-password/
func (c *Client) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	return c.do(ctx, http.MethodPut, "/auth/change-password/", input, nil)
}
