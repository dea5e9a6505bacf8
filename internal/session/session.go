// Package session holds the signed-in user's identity. The token and
// username persist across runs in a file next to the config, so the TUI
// and one-shot commands share the same sign-in.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/bookctl/internal/api"
	"gopkg.in/yaml.v3"
)

// Session is the current user's identity: created at sign-in, destroyed
// at sign-out or account deletion.
type Session struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
}

// DefaultPath returns the session file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookctl", "session.yml")
}

// Load reads the stored session. A missing file yields a signed-out
// session, not an error.
func Load() (*Session, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the session from an explicit path.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return &s, nil
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// SaveTo writes the session with owner-only permissions.
func (s *Session) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Save writes the session to the default path.
func (s *Session) Save() error {
	return s.SaveTo(DefaultPath())
}

// Clear removes the stored session. Already signed out is fine.
func Clear() error {
	return ClearAt(DefaultPath())
}

// ClearAt removes the session file at an explicit path.
func ClearAt(path string) error {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type signinResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// SignIn authenticates against the server and returns the new session.
// The caller decides whether to persist it.
func SignIn(ctx context.Context, client *api.Client, username, password string, rememberMe bool) (*Session, error) {
	body := map[string]interface{}{
		"username":    username,
		"password":    password,
		"remember_me": rememberMe,
	}
	var resp signinResponse
	if err := client.Post(ctx, "/signin", body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("server returned no access token")
	}
	name := resp.Username
	if name == "" {
		name = username
	}
	return &Session{Token: resp.AccessToken, Username: name}, nil
}

// Register creates a new account. The user still signs in afterwards.
func Register(ctx context.Context, client *api.Client, username, email, password string) error {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	return client.Post(ctx, "/register", body, nil)
}

// DeleteAccount removes the signed-in user's account on the server and
// clears the local session.
func DeleteAccount(ctx context.Context, client *api.Client) error {
	if err := client.Delete(ctx, "/delete_account", nil); err != nil {
		return err
	}
	return Clear()
}
