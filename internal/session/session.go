// ABOUTME: Session controller owning the authenticated-identity state machine
// ABOUTME: Startup reconciliation, login/register/logout, and profile mutation

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/store"
)

// State is the controller's lifecycle state.
type State int

const (
	// StateUninitialized is the startup state before Bootstrap completes.
	StateUninitialized State = iota
	// StateAuthenticated means a verified user is present.
	StateAuthenticated
	// StateAnonymous means no user is present.
	StateAnonymous
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only view of the session handed to UI components.
type Snapshot struct {
	State           State
	Loading         bool
	IsAuthenticated bool
	User            *client.User
}

// EffectiveRole returns the routing role of the snapshot's user, or "" when
// no user is present.
func (s Snapshot) EffectiveRole() string {
	if s.User == nil {
		return ""
	}
	return s.User.EffectiveRole()
}

// ValidationError reports client-side input validation failures field by
// field, mirroring the shape of backend validation payloads.
type ValidationError struct {
	Fields map[string][]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var lines []string
	for name, msgs := range e.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Join(msgs, "; ")))
	}
	return strings.Join(lines, "\n")
}

// Controller owns the session state. All mutations happen through its
// methods; readers only ever see snapshot copies. Persisted storage is a
// write-through cache of the in-memory state, never the other way around.
type Controller struct {
	client   *client.Client
	store    *store.Store
	validate *validator.Validate

	mu      sync.Mutex
	state   State
	user    *client.User
	userRaw map[string]any // merged user record; source of truth for the cache
}

// New creates a controller in the Uninitialized state.
func New(api *client.Client, st *store.Store) *Controller {
	return &Controller{
		client:   api,
		store:    st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		state:    StateUninitialized,
	}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:           c.state,
		Loading:         c.state == StateUninitialized,
		IsAuthenticated: c.state == StateAuthenticated,
	}
	if c.user != nil {
		u := *c.user
		snap.User = &u
	}
	return snap
}

// Bootstrap reconciles the stored token with live user state at startup.
// A present token is verified against the backend; the persisted user cache
// is merged with the server record (server fields win). Any failure path
// clears everything and lands in Anonymous.
func (c *Controller) Bootstrap(ctx context.Context) Snapshot {
	token, ok := c.store.Get(store.KeyAccessToken)
	if !ok || token == "" {
		c.clearAll()
		return c.Snapshot()
	}

	resp, err := c.client.VerifyToken(ctx)
	if err != nil || !resp.Valid {
		c.clearAll()
		return c.Snapshot()
	}

	cached := json.RawMessage{}
	if raw, ok := c.store.Get(store.KeyUser); ok {
		cached = json.RawMessage(raw)
	}
	merged, user, err := mergeUser(cached, resp.User)
	if err != nil {
		c.clearAll()
		return c.Snapshot()
	}

	c.setAuthenticated(user, merged)
	return c.Snapshot()
}

// Login authenticates with the backend. On success both tokens and the user
// are persisted before the in-memory transition; on failure nothing changes.
func (c *Controller) Login(ctx context.Context, input client.LoginInput) (*client.User, error) {
	resp, err := c.client.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	return c.establish(resp.User, resp.Access, resp.Refresh)
}

// Register creates an account and signs in with the returned token pair.
// Input is validated locally before the request is issued.
func (c *Controller) Register(ctx context.Context, input client.RegisterInput) (*client.User, error) {
	if err := c.validateRegister(input); err != nil {
		return nil, err
	}
	resp, err := c.client.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return c.establish(resp.User, resp.Tokens.Access, resp.Tokens.Refresh)
}

// establish persists the credential pair plus user record and transitions to
// Authenticated. Storage writes happen before the in-memory state change.
func (c *Controller) establish(rawUser json.RawMessage, access, refresh string) (*client.User, error) {
	merged, user, err := mergeUser(nil, rawUser)
	if err != nil {
		return nil, fmt.Errorf("invalid user payload: %w", err)
	}

	if err := c.store.Set(store.KeyAccessToken, access); err != nil {
		return nil, fmt.Errorf("failed to persist credentials: %w", err)
	}
	if err := c.store.Set(store.KeyRefreshToken, refresh); err != nil {
		return nil, fmt.Errorf("failed to persist credentials: %w", err)
	}

	c.setAuthenticated(user, merged)

	u := *user
	return &u, nil
}

// Logout notifies the backend best-effort, then clears all local state. The
// local transition to Anonymous never depends on the network outcome.
func (c *Controller) Logout(ctx context.Context) {
	if refresh, ok := c.store.Get(store.KeyRefreshToken); ok {
		// Blacklists the refresh token server-side; failure is irrelevant here
		_ = c.client.Logout(ctx, refresh)
	}
	c.clearAll()
}

// UpdateProfile patches the user's profile. Returned fields are merged into
// both the in-memory user and the persisted cache; fields the response omits
// keep their cached values. On failure the session is untouched.
func (c *Controller) UpdateProfile(ctx context.Context, fields map[string]any) (*client.User, error) {
	updated, err := c.client.UpdateProfile(ctx, fields)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	cachedRaw := c.userRaw
	c.mu.Unlock()

	cached, err := json.Marshal(cachedRaw)
	if err != nil {
		cached = nil
	}
	merged, user, err := mergeUser(cached, updated)
	if err != nil {
		return nil, fmt.Errorf("invalid profile payload: %w", err)
	}

	c.setAuthenticated(user, merged)

	u := *user
	return &u, nil
}

// ChangePassword changes the password. No local state changes on success.
func (c *Controller) ChangePassword(ctx context.Context, input client.ChangePasswordInput) error {
	return c.client.ChangePassword(ctx, input)
}

// setAuthenticated installs the user and write-through persists the merged
// record. The in-memory transition leads; persistence follows from it.
func (c *Controller) setAuthenticated(user *client.User, merged map[string]any) {
	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = user
	c.userRaw = merged
	c.mu.Unlock()

	if data, err := json.Marshal(merged); err == nil {
		c.store.Set(store.KeyUser, string(data))
	}
}

// clearAll is the single teardown path: logout, refresh failure, and invalid
// startup tokens all converge here.
func (c *Controller) clearAll() {
	c.store.Clear()

	c.mu.Lock()
	c.state = StateAnonymous
	c.user = nil
	c.userRaw = nil
	c.mu.Unlock()
}

// validateRegister runs local validation and converts violations into the
// same field-error shape the backend uses.
func (c *Controller) validateRegister(input client.RegisterInput) error {
	err := c.validate.Struct(input)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := map[string][]string{}
	for _, fe := range invalid {
		name := fieldName(fe.Field())
		fields[name] = append(fields[name], validationMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

// fieldName maps Go struct field names to their JSON names.
var jsonNames = map[string]string{
	"Username":        "username",
	"Email":           "email",
	"Password":        "password",
	"PasswordConfirm": "password_confirm",
	"FirstName":       "first_name",
	"LastName":        "last_name",
	"UserType":        "user_type",
}

func fieldName(structField string) string {
	if name, ok := jsonNames[structField]; ok {
		return name
	}
	return strings.ToLower(structField)
}

// validationMessage renders a human-readable message per violated rule.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "eqfield":
		return "Passwords do not match."
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
