package core

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

// newTestServer starts a TLS server with the given mux and returns a config
// pointing at it. The login endpoint must be registered by the caller when
// the test needs an authenticated session.
func newTestServer(t *testing.T, mux *http.ServeMux) (*httptest.Server, *LinkuriousConfig) {
	t.Helper()
	server := httptest.NewTLSServer(mux)
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(parsed.Host)
	if err != nil {
		t.Fatalf("failed to split test server host: %v", err)
	}
	port, err := strconv.ParseUint(portStr, 10, 64)
	if err != nil {
		t.Fatalf("failed to parse test server port: %v", err)
	}
	return server, &LinkuriousConfig{
		Host:           host,
		Port:           port,
		SslVerify:      false,
		MaxConnections: 5,
		UserAgent:      "test-agent",
	}
}

// registerLogin wires a login handler that accepts exactly one credential
// pair and returns the user object on success. It returns a counter of
// successful logins.
func registerLogin(t *testing.T, mux *http.ServeMux, username, password string) *int {
	t.Helper()
	logins := 0
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if creds["usernameOrEmail"] != username || creds["password"] != password {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"key": "INVALID_CREDENTIALS"})
			return
		}
		logins++
		http.SetCookie(w, &http.Cookie{Name: "linkurious.sid", Value: "session-token"})
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": username})
	})
	return &logins
}

func TestSessionLoginSuccess(t *testing.T) {
	mux := http.NewServeMux()
	logins := registerLogin(t, mux, "admin@example.com", "secret")
	_, config := newTestServer(t, mux)
	config.Username = "admin@example.com"
	config.Password = "secret"

	session, err := NewLinkuriousSession(config)
	if err != nil {
		t.Fatalf("NewLinkuriousSession() error = %v", err)
	}
	if !session.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after successful login")
	}
	if *logins != 1 {
		t.Errorf("login count = %d, want 1", *logins)
	}
}

func TestSessionLoginEmailMismatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"email": "someone-else@example.com"})
	})
	_, config := newTestServer(t, mux)
	config.Username = "admin@example.com"
	config.Password = "secret"

	_, err := NewLinkuriousSession(config)
	if err == nil {
		t.Fatal("NewLinkuriousSession() expected error when login returns a different user")
	}
	if !IsAuthError(err) {
		t.Errorf("error = %T, want *AuthError", err)
	}
}

func TestSessionLoginRejected(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(t, mux, "admin@example.com", "secret")
	_, config := newTestServer(t, mux)
	config.Username = "admin@example.com"
	config.Password = "wrong"

	_, err := NewLinkuriousSession(config)
	if err == nil {
		t.Fatal("NewLinkuriousSession() expected error for rejected credentials")
	}
	if !IsAuthError(err) {
		t.Fatalf("error = %T, want *AuthError", err)
	}
	authErr := err.(*AuthError)
	if authErr.Reason != "INVALID_CREDENTIALS" {
		t.Errorf("AuthError.Reason = %q, want server-stated cause", authErr.Reason)
	}
}

func TestApiKeyAuthenticationUnsupported(t *testing.T) {
	mux := http.NewServeMux()
	_, config := newTestServer(t, mux)
	config.Username = "admin@example.com"
	config.ApiKey = "any-value-at-all"

	_, err := NewLinkuriousSession(config)
	if err == nil {
		t.Fatal("NewLinkuriousSession() expected error for apikey credentials")
	}
	if !IsUnsupportedCredentialErr(err) {
		t.Errorf("IsUnsupportedCredentialErr() = false, err = %v", err)
	}
	if !IsAuthError(err) {
		t.Errorf("error = %T, want *AuthError", err)
	}
}

func TestUsernameWithoutCredential(t *testing.T) {
	mux := http.NewServeMux()
	_, config := newTestServer(t, mux)
	config.Username = "admin@example.com"

	_, err := NewLinkuriousSession(config)
	if err == nil {
		t.Fatal("NewLinkuriousSession() expected error for username without password or apikey")
	}
	if !IsAuthError(err) {
		t.Errorf("error = %T, want *AuthError", err)
	}
}

func TestAnonymousSession(t *testing.T) {
	mux := http.NewServeMux()
	_, config := newTestServer(t, mux)

	session, err := NewLinkuriousSession(config)
	if err != nil {
		t.Fatalf("NewLinkuriousSession() error = %v", err)
	}
	if session.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for an anonymous session")
	}
}

func TestAuthenticateReplacesCredentials(t *testing.T) {
	mux := http.NewServeMux()
	registerLogin(t, mux, "admin@example.com", "secret")
	_, config := newTestServer(t, mux)

	session, err := NewLinkuriousSession(config)
	if err != nil {
		t.Fatalf("NewLinkuriousSession() error = %v", err)
	}
	if err = session.Authenticate("admin@example.com", "secret", ""); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !session.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after Authenticate()")
	}
	if session.GetConfig().Username != "admin@example.com" {
		t.Errorf("config username not updated, got %q", session.GetConfig().Username)
	}
}

func TestAuthenticateWithoutUsername(t *testing.T) {
	mux := http.NewServeMux()
	_, config := newTestServer(t, mux)

	session, err := NewLinkuriousSession(config)
	if err != nil {
		t.Fatalf("NewLinkuriousSession() error = %v", err)
	}
	err = session.Authenticate("", "secret", "")
	if err == nil {
		t.Fatal("Authenticate() expected error for empty username")
	}
	if !IsAuthError(err) {
		t.Errorf("error = %T, want *AuthError", err)
	}
}

func TestLoginFailureReason(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		body string
		want string
	}{
		{
			name: "reason key",
			rec:  Record{"reason": "account disabled"},
			want: "account disabled",
		},
		{
			name: "message key",
			rec:  Record{"message": "bad password"},
			want: "bad password",
		},
		{
			name: "error key code",
			rec:  Record{"key": "UNAUTHORIZED"},
			want: "UNAUTHORIZED",
		},
		{
			name: "raw body fallback",
			rec:  Record{},
			body: "gateway timeout",
			want: "gateway timeout",
		},
		{
			name: "empty response",
			rec:  Record{},
			want: "unexpected login response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loginFailureReason(tt.rec, []byte(tt.body))
			if got != tt.want {
				t.Errorf("loginFailureReason() = %q, want %q", got, tt.want)
			}
		})
	}
}
