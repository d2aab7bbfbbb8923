package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got := tokenExpiry(signedToken(t, exp))
	if !got.Equal(exp) {
		t.Errorf("tokenExpiry = %v, want %v", got, exp)
	}

	if !tokenExpiry("not-a-jwt").IsZero() {
		t.Error("tokenExpiry of garbage is not zero")
	}
}

func TestTokenFile_IsExpired(t *testing.T) {
	past := &TokenFile{ExpiresAt: time.Now().Add(-time.Minute)}
	if !past.IsExpired(0) {
		t.Error("expired token reported valid")
	}

	soon := &TokenFile{ExpiresAt: time.Now().Add(30 * time.Minute)}
	if soon.IsExpired(0) {
		t.Error("valid token reported expired")
	}
	if !soon.IsExpired(time.Hour) {
		t.Error("margin not applied")
	}

	// No exp claim: never expires client-side.
	bare := &TokenFile{}
	if bare.IsExpired(time.Hour) {
		t.Error("token without expiry reported expired")
	}
}

func TestLogin(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))

	var gotBody map[string]string
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != "POST" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		envelope(w, http.StatusOK, true, map[string]any{
			"token": token,
			"employe": map[string]any{
				"id": 42, "nomComplet": "Awa Diop", "email": "awa@example.sn",
			},
		}, "")
	}))
	defer ts.Close()

	tf, err := c.Login(context.Background(), "awa@example.sn", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["email"] != "awa@example.sn" || gotBody["motDePasse"] != "s3cret" {
		t.Errorf("request body = %v", gotBody)
	}
	if tf.EmployeeID != 42 || tf.Email != "awa@example.sn" {
		t.Errorf("token file = %+v", tf)
	}
	if tf.ExpiresAt.IsZero() {
		t.Error("expiry not parsed from JWT")
	}

	// The client must now send the fresh token.
	c.mu.RLock()
	current := c.authToken
	c.mu.RUnlock()
	if current != token {
		t.Error("auth token not updated after login")
	}
}

func TestChangePassword_BackendRejection(t *testing.T) {
	c, ts := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusBadRequest, false, nil, "mot de passe actuel incorrect")
	}))
	defer ts.Close()

	err := c.ChangePassword(context.Background(), "wrong", "newpass")
	be, ok := AsBackend(err)
	if !ok {
		t.Fatalf("expected BackendError, got %T: %v", err, err)
	}
	if be.Message != "mot de passe actuel incorrect" {
		t.Errorf("message = %q", be.Message)
	}
}
