package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Request/response logging is gated by the LINKURIOUS_LOG environment
// variable: unset disables it, "info" logs one line per call, "debug"
// additionally dumps bodies.
var httpLog zerolog.Logger

func init() {
	level := zerolog.Disabled
	switch strings.ToLower(os.Getenv("LINKURIOUS_LOG")) {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	}
	httpLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "linkurious-client").Logger()
}

// ######################################################
//
//	REQUEST/RESPONSE INTERCEPTORS
//
// ######################################################

// BeforeRequest No op in current implementation. You have to shadow this method
// on a particular resource, IOW declare the same method with the same signature
// for Visualizations or Users or Queries etc.
func (e *LinkuriousResource) BeforeRequest(_ context.Context, r *http.Request, verb, url string, body io.Reader) error {
	return nil
}

// AfterRequest No op in current implementation. You have to shadow this method
// on a particular resource, IOW declare the same method with the same signature
// for Visualizations or Users or Queries etc.
func (e *LinkuriousResource) AfterRequest(_ context.Context, response Renderable) (Renderable, error) {
	return response, nil
}

// doBeforeRequest Do not override this method in resource implementations. For internal use only
func (e *LinkuriousResource) doBeforeRequest(ctx context.Context, r *http.Request, verb, url string, body io.Reader) error {
	var err error
	session := e.Session()
	config := session.GetConfig()
	resourceType := e.GetResourceType()
	resourceCaller, ok := e.Rest.GetResourceMap()[resourceType]
	if !ok {
		panic(fmt.Sprintf("resource not found in resourceMap for %s", resourceType))
	}
	beforeRequestLog(verb, url, body)
	if interceptor, ok := resourceCaller.(RequestInterceptor); ok {
		if err = interceptor.BeforeRequest(ctx, r, verb, url, body); err != nil {
			return err
		}
	}
	// User-defined callback
	if config.BeforeRequestFn != nil {
		return config.BeforeRequestFn(ctx, r, verb, url, body)
	}
	return nil
}

// doAfterRequest Do not override this method in resource implementations. For internal use only
func (e *LinkuriousResource) doAfterRequest(ctx context.Context, response Renderable) (Renderable, error) {
	var err error
	session := e.Session()
	config := session.GetConfig()
	resourceType := e.GetResourceType()
	isDummyResource := resourceType == "Dummy"
	resourceCaller, ok := e.Rest.GetResourceMap()[resourceType]
	if !ok {
		panic(fmt.Sprintf("resource not found in resourceMap for %s", resourceType))
	}
	if !isDummyResource {
		// Attach @resourceType so resource hooks and user AfterRequestFn can
		// rely on it for formatting and branching.
		if err = setResourceKey(response, resourceType); err != nil {
			return nil, err
		}
	}
	afterRequestLog(response)
	if interceptor, ok := resourceCaller.(RequestInterceptor); ok {
		response, err = interceptor.AfterRequest(ctx, response)
		if err != nil {
			return nil, err
		}
	}
	// User-defined callback
	if config.AfterRequestFn != nil {
		response, err = config.AfterRequestFn(ctx, response)
		if err != nil {
			return nil, err
		}
	}
	return response, nil
}

// ######################################################
//
//	REQUEST/RESPONSE LOGGING
//
// ######################################################

// beforeRequestLog logs HTTP request details before sending the request.
// At debug level it includes the request body (if present).
func beforeRequestLog(verb, url string, body io.Reader) {
	if httpLog.GetLevel() == zerolog.Disabled {
		return
	}
	event := httpLog.Info().Str("verb", verb).Str("url", url)
	if body != nil && httpLog.GetLevel() <= zerolog.DebugLevel {
		bodyBytes, err := io.ReadAll(body)
		if err != nil {
			httpLog.Error().Err(err).Msg("failed to read request body")
			return
		}
		trimmed := bytes.TrimSpace(bodyBytes)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err == nil {
				event = event.RawJSON("body", compact.Bytes())
			} else {
				event = event.Str("body", string(trimmed))
			}
		}
	}
	event.Msg("http request start")
}

// afterRequestLog logs HTTP response details after receiving the response.
// At debug level it dumps the full response; at info level only a summary.
func afterRequestLog(response Renderable) {
	if httpLog.GetLevel() == zerolog.Disabled {
		return
	}
	event := httpLog.Info()
	switch resp := response.(type) {
	case Record:
		if resourceType, ok := resp[ResourceTypeKey].(string); ok && resourceType != "" {
			event = event.Str("resourceType", resourceType)
		}
	case RecordSet:
		event = event.Int("records", len(resp))
		if len(resp) > 0 {
			if resourceType, ok := resp[0][ResourceTypeKey].(string); ok && resourceType != "" {
				event = event.Str("resourceType", resourceType)
			}
		}
	}
	if httpLog.GetLevel() <= zerolog.DebugLevel {
		event = event.Str("response", response.PrettyJson())
	}
	event.Msg("http response")
}
