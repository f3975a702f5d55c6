package core

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

// sessionWithConfig is a minimal RESTSession stub for URL-building tests.
type sessionWithConfig struct {
	config *LinkuriousConfig
}

func (m *sessionWithConfig) Get(context.Context, string, Params, []http.Header) (Renderable, error) {
	return Record{}, nil
}

func (m *sessionWithConfig) Post(context.Context, string, Params, []http.Header) (Renderable, error) {
	return Record{}, nil
}

func (m *sessionWithConfig) Put(context.Context, string, Params, []http.Header) (Renderable, error) {
	return Record{}, nil
}

func (m *sessionWithConfig) Patch(context.Context, string, Params, []http.Header) (Renderable, error) {
	return Record{}, nil
}

func (m *sessionWithConfig) Delete(context.Context, string, Params, []http.Header) (Renderable, error) {
	return Record{}, nil
}

func (m *sessionWithConfig) Authenticate(string, string, string) error { return nil }

func (m *sessionWithConfig) IsAuthenticated() bool { return false }

func (m *sessionWithConfig) GetConfig() *LinkuriousConfig { return m.config }

func (m *sessionWithConfig) GetAuthenticator() Authenticator { return &anonymousAuthenticator{} }

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name       string
		response   *http.Response
		wantErrNil bool
	}{
		{
			name:       "successful response 200",
			response:   &http.Response{StatusCode: 200},
			wantErrNil: true,
		},
		{
			name:       "successful response 204",
			response:   &http.Response{StatusCode: 204},
			wantErrNil: true,
		},
		{
			name: "client error 400",
			response: &http.Response{
				StatusCode: 400,
				Body:       io.NopCloser(strings.NewReader("Bad Request")),
			},
			wantErrNil: false,
		},
		{
			name: "server error 500",
			response: &http.Response{
				StatusCode: 500,
				Body:       io.NopCloser(strings.NewReader("Internal Server Error")),
			},
			wantErrNil: false,
		},
		{
			name:       "nil response",
			response:   nil,
			wantErrNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.response)
			if (err == nil) != tt.wantErrNil {
				t.Errorf("validateResponse() error = %v, wantErrNil %v", err, tt.wantErrNil)
			}
			if err != nil {
				if !IsApiError(err) {
					t.Errorf("validateResponse() error should be ApiError, got %T", err)
				} else if tt.response != nil {
					apiErr := err.(*ApiError)
					if apiErr.StatusCode != tt.response.StatusCode {
						t.Errorf("ApiError.StatusCode = %v, want %v", apiErr.StatusCode, tt.response.StatusCode)
					}
				}
			}
		})
	}
}

func TestPathToUrl(t *testing.T) {
	session := &sessionWithConfig{config: &LinkuriousConfig{Host: "test.example.com", Port: 443}}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "relative path",
			input: "/users",
			want:  "https://test.example.com:443/api/users",
		},
		{
			name:  "path without leading slash",
			input: "users",
			want:  "https://test.example.com:443/api/users",
		},
		{
			name:  "path with query parameters",
			input: "/users?starts_with=ad",
			want:  "https://test.example.com:443/api/users?starts_with=ad",
		},
		{
			name:  "full URL - should return unchanged",
			input: "https://other.com/api/users",
			want:  "https://other.com/api/users",
		},
		{
			name:  "nested source path",
			input: "/s1/graph/run/query",
			want:  "https://test.example.com:443/api/s1/graph/run/query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pathToUrl(session, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("pathToUrl() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("pathToUrl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildUrl(t *testing.T) {
	session := &sessionWithConfig{config: &LinkuriousConfig{Host: "test.example.com", Port: 8443}}

	tests := []struct {
		name  string
		path  string
		query string
		want  string
	}{
		{
			name: "simple path",
			path: "users",
			want: "https://test.example.com:8443/api/users",
		},
		{
			name:  "path with query",
			path:  "users",
			query: "starts_with=ad&limit=10",
			want:  "https://test.example.com:8443/api/users?starts_with=ad&limit=10",
		},
		{
			name: "path with leading and trailing slashes",
			path: "/s1/visualizations/",
			want: "https://test.example.com:8443/api/s1/visualizations",
		},
		{
			name: "empty path",
			path: "",
			want: "https://test.example.com:8443/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildUrl(session, tt.path, tt.query)
			if err != nil {
				t.Fatalf("buildUrl() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("buildUrl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertMapToQuery(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   []string // multiple valid orderings
	}{
		{
			name:   "empty params",
			params: Params{},
			want:   []string{""},
		},
		{
			name:   "single param",
			params: Params{"starts_with": "adm"},
			want:   []string{"starts_with=adm"},
		},
		{
			name:   "integer flag",
			params: Params{"with_styles": 1},
			want:   []string{"with_styles=1"},
		},
		{
			name:   "boolean flags",
			params: Params{"withDigest": true, "withDegree": false},
			want: []string{
				"withDegree=false&withDigest=true",
				"withDigest=true&withDegree=false",
			},
		},
		{
			name:   "slice joined with commas",
			params: Params{"ids": []int{1, 2, 3}},
			want:   []string{"ids=1%2C2%2C3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertMapToQuery(tt.params)
			found := false
			for _, expected := range tt.want {
				if got == expected {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("convertMapToQuery() = %v, want one of %v", got, tt.want)
			}
		})
	}
}

func TestBuildResourcePathWithID(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		id       any
		segments []string
		want     string
	}{
		{
			name: "plain id",
			path: "s1/visualizations",
			id:   int64(5),
			want: "s1/visualizations/5",
		},
		{
			name:     "id with trailing segment",
			path:     "s1/visualizations",
			id:       5,
			segments: []string{"shares"},
			want:     "s1/visualizations/5/shares",
		},
		{
			name:     "share path with user id",
			path:     "s1/visualizations",
			id:       float64(5),
			segments: []string{"share", "9"},
			want:     "s1/visualizations/5/share/9",
		},
		{
			name: "string id",
			path: "admin",
			id:   "s1",
			want: "admin/s1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildResourcePathWithID(tt.path, tt.id, tt.segments...)
			if got != tt.want {
				t.Errorf("BuildResourcePathWithID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetResponseBodyAsStr(t *testing.T) {
	tests := []struct {
		name     string
		response *http.Response
		want     string
	}{
		{
			name:     "nil response",
			response: nil,
			want:     "",
		},
		{
			name: "invalid JSON response",
			response: &http.Response{
				Body: io.NopCloser(strings.NewReader("not json")),
			},
			want: "not json",
		},
		{
			name: "empty response body",
			response: &http.Response{
				Body: io.NopCloser(strings.NewReader("")),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getResponseBodyAsStr(tt.response)
			if got != tt.want {
				t.Errorf("getResponseBodyAsStr() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("valid JSON is indented", func(t *testing.T) {
		response := &http.Response{
			Body: io.NopCloser(strings.NewReader(`{"name":"test","id":123}`)),
		}
		got := getResponseBodyAsStr(response)
		if !strings.Contains(got, "\"name\"") || !strings.Contains(got, "  ") {
			t.Errorf("getResponseBodyAsStr() should return indented JSON, got %v", got)
		}
	})
}
