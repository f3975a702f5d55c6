package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"
)

// LinkuriousConfig represents the configuration required to create a Linkurious session.
type LinkuriousConfig struct {
	Host           string         // The hostname or IP address of the Linkurious server.
	Port           uint64         // The port to connect to on the Linkurious server.
	Username       string         // The username (or email) for authentication (used with Password).
	Password       string         // The password for authentication (used with Username).
	ApiKey         string         // Optional api key. Api-key authentication is not implemented; supplying it fails fast.
	SslVerify      bool           // Whether to verify SSL certificates.
	Timeout        *time.Duration // HTTP client timeout. If nil, a default is applied by validators.
	MaxConnections int            // Maximum number of concurrent HTTP connections.
	UserAgent      string         // Optional custom User-Agent header to use in HTTP requests. If empty, a default is applied.

	// Context is an optional external context for controlling HTTP request lifecycle.
	// When provided, it is used as the parent context for contextless resource methods.
	Context context.Context

	// BeforeRequestFn is an optional function hook executed before an API request is sent.
	// It allows for request inspection, mutation, or logging. Any error aborts the request.
	BeforeRequestFn func(ctx context.Context, r *http.Request, verb, url string, body io.Reader) error

	// AfterRequestFn is an optional function hook executed after receiving an API response.
	// It can be used for post-processing, transformation, or logging of the response.
	AfterRequestFn func(ctx context.Context, response Renderable) (Renderable, error)

	// FillFn optionally overrides the default function used to populate structs
	// from generic Record maps. If provided, this function is invoked instead of
	// the default JSON-based marshal/unmarshal logic.
	FillFn func(r Record, container any) error
}

// LinkuriousConfigFunc defines a function that can modify or validate a LinkuriousConfig.
type LinkuriousConfigFunc func(*LinkuriousConfig) error

// Validate applies the given LinkuriousConfigFunc validators to the config.
// Panics if any validator returns an error.
func (config *LinkuriousConfig) Validate(validators ...LinkuriousConfigFunc) {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			panic(err)
		}
	}
}

// WithTimeout returns a LinkuriousConfigFunc that sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) LinkuriousConfigFunc {
	return func(config *LinkuriousConfig) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		return nil
	}
}

// WithMaxConnections returns a LinkuriousConfigFunc that sets the maximum number
// of connections if not explicitly provided.
func WithMaxConnections(maxConnections int) LinkuriousConfigFunc {
	return func(config *LinkuriousConfig) error {
		if config.MaxConnections == 0 {
			config.MaxConnections = maxConnections
		}
		return nil
	}
}

// WithHost validates that the Host field is not empty.
// Panics if Host is an empty string.
func WithHost(config *LinkuriousConfig) error {
	if config.Host == "" {
		panic("host cannot be empty string")
	}
	return nil
}

// WithPort returns a LinkuriousConfigFunc that sets a default port if none is provided.
func WithPort(defaultPort uint64) LinkuriousConfigFunc {
	return func(config *LinkuriousConfig) error {
		if config.Port == 0 {
			config.Port = defaultPort
		}
		return nil
	}
}

// WithUserAgent sets a default User-Agent header if none is provided in the config.
// This helps identify the client in HTTP requests.
func WithUserAgent(config *LinkuriousConfig) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"go-linkurious-client-%s,os:%s,arch:%s",
			ClientVersion(),
			runtime.GOOS,
			runtime.GOARCH,
		)
	}
	return nil
}

// WithFillFn installs a custom FillFn into the fill function used by Record.Fill.
func WithFillFn(config *LinkuriousConfig) error {
	if config.FillFn != nil {
		fillFunc = config.FillFn
	}
	return nil
}
