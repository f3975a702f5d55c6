package core

import (
	"context"
	"io"
	"net/http"
)

// ResourceAPI defines the minimal surface every Linkurious API resource exposes.
type ResourceAPI interface {
	Session() RESTSession
	GetResourceType() string
	GetResourcePath() string // normalized path to the resource in OpenAPI format
	// Resource-level mutex lock for callers that serialize access per key.
	Lock(...any) func()
}

// RequestInterceptor defines a middleware-style interface for intercepting API
// requests and responses. It allows implementing logic that runs before sending
// a request and after receiving a response. Typical use cases include logging,
// request mutation, and response transformation.
type RequestInterceptor interface {
	// BeforeRequest is invoked prior to sending the API request.
	//
	// Parameters:
	//   - ctx: The request context, useful for deadlines, tracing, or cancellation.
	//   - req: Request object
	//   - verb: The HTTP method (e.g., GET, POST, PUT).
	//   - url: The URL being accessed (including query params)
	//   - body: The request body as an io.Reader, typically containing JSON data.
	BeforeRequest(context.Context, *http.Request, string, string, io.Reader) error

	// AfterRequest is invoked after the API response is received. The input and
	// output are Renderable values (Record or RecordSet). This method can
	// inspect, mutate, or log the response data.
	AfterRequest(context.Context, Renderable) (Renderable, error)

	// doBeforeRequest No need to implement on API resources. For internal usage only
	doBeforeRequest(context.Context, *http.Request, string, string, io.Reader) error

	// doAfterRequest No need to implement on API resources. For internal usage only
	doAfterRequest(context.Context, Renderable) (Renderable, error)
}

// InterceptableResourceAPI combines request interception with resource behavior.
type InterceptableResourceAPI interface {
	RequestInterceptor
	ResourceAPI
}

// Rest is the facade contract resources use to reach their session and siblings.
type Rest interface {
	GetSession() RESTSession
	GetResourceMap() map[string]InterceptableResourceAPI
	GetCtx() context.Context
	SetCtx(context.Context)
}
