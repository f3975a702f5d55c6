package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Authenticator establishes and tracks whether a session is authorized to
// call protected endpoints. Each session owns its own authenticator instance;
// there is no process-wide registry, so two clients never share auth state.
type Authenticator interface {
	authorize() error
	setAuthHeader(headers *http.Header)
	isAuthenticated() bool
}

// createAuthenticator creates a new Authenticator instance based on the
// provided LinkuriousConfig. Priority: username/password > username/apikey.
// A username without any usable credential is an error; no username at all
// yields an anonymous authenticator (protected endpoints will return 401).
func createAuthenticator(config *LinkuriousConfig, client *http.Client) (Authenticator, error) {
	switch {
	case config.Username != "" && config.Password != "":
		return &sessionAuthenticator{
			Host:     config.Host,
			Port:     config.Port,
			Username: config.Username,
			Password: config.Password,
			client:   client,
		}, nil
	case config.Username != "" && config.ApiKey != "":
		return &apiKeyAuthenticator{Username: config.Username, Key: config.ApiKey}, nil
	case config.Username != "":
		return nil, &AuthError{Reason: "no usable credential: password or apikey is required"}
	default:
		return &anonymousAuthenticator{}, nil
	}
}

// sessionAuthenticator performs a cookie-based login against
// POST /api/auth/login. The server's session cookie is retained by the
// http.Client's cookie jar shared with the session, so all subsequent
// requests on the same client are authorized automatically.
type sessionAuthenticator struct {
	Host          string
	Port          uint64
	Username      string
	Password      string
	client        *http.Client
	authenticated bool
}

func (auth *sessionAuthenticator) authorize() error {
	auth.authenticated = false
	loginURL := url.URL{
		Scheme: "https",
		Host:   auth.Host + ":" + strconv.FormatUint(auth.Port, 10),
		Path:   "api/auth/login",
	}
	body, err := json.Marshal(map[string]string{
		"usernameOrEmail": auth.Username,
		"password":        auth.Password,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, loginURL.String(), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)

	resp, err := auth.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var rec Record
	_ = json.Unmarshal(out, &rec)
	if email, ok := rec["email"].(string); ok && email == auth.Username {
		auth.authenticated = true
		return nil
	}
	return &AuthError{Reason: loginFailureReason(rec, out)}
}

// loginFailureReason extracts the server-stated cause from a failed login
// response, falling back to the raw body.
func loginFailureReason(rec Record, body []byte) string {
	for _, key := range []string{"reason", "message", "key"} {
		if v, ok := rec[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return "unexpected login response"
}

func (auth *sessionAuthenticator) setAuthHeader(_ *http.Header) {
	// Session cookie is carried by the client's cookie jar.
}

func (auth *sessionAuthenticator) isAuthenticated() bool {
	return auth.authenticated
}

// apiKeyAuthenticator is a declared capability gap: the remote API's
// api-key scheme is not implemented, and authorize fails fast instead of
// guessing at a header format.
type apiKeyAuthenticator struct {
	Username string
	Key      string
}

func (auth *apiKeyAuthenticator) authorize() error {
	return &AuthError{Reason: ErrUnsupportedCredential.Error(), Err: ErrUnsupportedCredential}
}

func (auth *apiKeyAuthenticator) setAuthHeader(_ *http.Header) {}

func (auth *apiKeyAuthenticator) isAuthenticated() bool {
	return false
}

// anonymousAuthenticator is used when no username is configured. Guest
// access works for endpoints the server exposes publicly; everything else
// returns 401 from the server.
type anonymousAuthenticator struct{}

func (auth *anonymousAuthenticator) authorize() error { return nil }

func (auth *anonymousAuthenticator) setAuthHeader(_ *http.Header) {}

func (auth *anonymousAuthenticator) isAuthenticated() bool { return false }
