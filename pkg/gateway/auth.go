package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/protocol"
)

// TokenFile holds a saved authentication token.
type TokenFile struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
	Server     string    `json:"server"`
	Email      string    `json:"email"`
	EmployeeID int64     `json:"employee_id"`
}

// IsExpired returns true if the token has expired (with optional margin).
// A zero ExpiresAt means the token carried no exp claim and never
// expires client-side.
func (t *TokenFile) IsExpired(margin time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(margin).After(t.ExpiresAt)
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature; the client holds no signing key, it only needs to know
// when to prompt for a fresh login.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Login authenticates with email/password. On success the client keeps
// the bearer token for subsequent requests and a TokenFile describing
// the session is returned.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenFile, error) {
	data, err := call[protocol.LoginData](ctx, c, "login", "POST", "/api/auth/login",
		protocol.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	c.SetAuthToken(data.Token)
	return &TokenFile{
		Token:      data.Token,
		ExpiresAt:  tokenExpiry(data.Token),
		Server:     c.baseURL,
		Email:      data.Employee.Email,
		EmployeeID: data.Employee.ID,
	}, nil
}

// ChangePassword changes the authenticated employee's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	_, err := call[json.RawMessage](ctx, c, "change password", "PUT", "/api/auth/password",
		protocol.ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	return err
}

// Logout revokes the token on the server (best-effort) and clears the
// client's bearer token.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+"/api/auth/login", nil)
	if err != nil {
		return err
	}
	c.applyAuth(req)

	resp, err := c.httpClient.Do(req)
	if err == nil {
		resp.Body.Close()
	}

	c.SetAuthToken("")
	return nil
}

// TokenFilePath returns the default path for the token file.
func TokenFilePath() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "CompanySphere", "token.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "companysphere", "token.json")
}

// SaveToken saves a token file to the default location.
func SaveToken(tf *TokenFile) error {
	path := TokenFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// LoadToken loads a token file from the default location.
func LoadToken() (*TokenFile, error) {
	data, err := os.ReadFile(TokenFilePath())
	if err != nil {
		return nil, err
	}
	var tf TokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	return &tf, nil
}

// DeleteToken removes the saved token file.
func DeleteToken() error {
	err := os.Remove(TokenFilePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
