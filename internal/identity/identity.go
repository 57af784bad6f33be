// ABOUTME: Identity provider: who is signed in on this device.
// ABOUTME: Stores the current session as a small JSON file in the config directory.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoUser is returned when nobody is signed in.
var ErrNoUser = errors.New("not signed in")

// namespace scopes email-derived user IDs so they never collide with other UUIDv5 users.
var namespace = uuid.MustParse("6f1c7c2e-5d8a-4a53-9a8e-1f5b0b8f2d41")

// User is the signed-in account.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// Provider resolves the current user.
type Provider interface {
	CurrentUser(ctx context.Context) (User, error)
	SignOut(ctx context.Context) error
}

// UserIDForEmail derives a stable user ID from an email address, so the same
// address maps to the same history on every device.
func UserIDForEmail(email string) string {
	return uuid.NewSHA1(namespace, []byte(normalizeEmail(email))).String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FileProvider keeps the session in a JSON file.
type FileProvider struct {
	path string
	now  func() time.Time
}

var _ Provider = (*FileProvider)(nil)

// DefaultPath returns the session file path following XDG spec.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitday", "session.json")
}

// NewFileProvider returns a provider backed by path, or DefaultPath when empty.
func NewFileProvider(path string) *FileProvider {
	if path == "" {
		path = DefaultPath()
	}
	return &FileProvider{path: path, now: time.Now}
}

// Path returns the session file location.
func (p *FileProvider) Path() string {
	return p.path
}

// SignIn records a session for email. When id is empty it is derived from the email.
func (p *FileProvider) SignIn(ctx context.Context, email, id string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("invalid email %q", email)
	}
	if id == "" {
		id = UserIDForEmail(email)
	}

	u := User{ID: id, Email: email, SignedInAt: p.now().UTC()}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return User{}, fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0750); err != nil {
		return User{}, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return User{}, fmt.Errorf("write session: %w", err)
	}
	return u, nil
}

// CurrentUser returns the signed-in user or ErrNoUser.
func (p *FileProvider) CurrentUser(ctx context.Context) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return User{}, ErrNoUser
	}
	if err != nil {
		return User{}, fmt.Errorf("read session: %w", err)
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("parse session: %w", err)
	}
	if u.ID == "" {
		return User{}, ErrNoUser
	}
	return u, nil
}

// SignOut removes the session. Signing out twice is not an error.
func (p *FileProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Static is a Provider with a fixed user, for servers and tests.
type Static struct {
	User User
}

// CurrentUser returns the fixed user, or ErrNoUser when it has no ID.
func (s *Static) CurrentUser(ctx context.Context) (User, error) {
	if s.User.ID == "" {
		return User{}, ErrNoUser
	}
	return s.User, nil
}

// SignOut clears the fixed user.
func (s *Static) SignOut(ctx context.Context) error {
	s.User = User{}
	return nil
}
