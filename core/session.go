package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

type contextKey string

const (
	caller     contextKey = "@caller" // resource caller object key
	maxRetries int        = 3
)

type RESTSession interface {
	Get(context.Context, string, Params, []http.Header) (Renderable, error)
	Post(context.Context, string, Params, []http.Header) (Renderable, error)
	Put(context.Context, string, Params, []http.Header) (Renderable, error)
	Patch(context.Context, string, Params, []http.Header) (Renderable, error)
	Delete(context.Context, string, Params, []http.Header) (Renderable, error)
	Authenticate(username, password, apikey string) error
	IsAuthenticated() bool
	GetConfig() *LinkuriousConfig
	GetAuthenticator() Authenticator
}

// ApiError represents an error returned from an API request.
type ApiError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	hints      string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("response body: %s", e.Body)
	}
	if e.hints == "" {
		return fmt.Sprintf(
			"%s request to %s returned status code %d"+
				" - response body: %s", e.Method, e.URL, e.StatusCode, e.Body,
		)
	}
	return fmt.Sprintf(
		"%s request to %s returned status code %d"+
			" - response body: %s\nResource details:\n%s", e.Method, e.URL, e.StatusCode, e.Body, e.hints,
	)
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

// IgnoreStatusCodes returns nil when err is an *ApiError carrying one of the
// given status codes; any other error is passed through.
func IgnoreStatusCodes(err error, codes ...int) error {
	if !IsApiError(err) {
		return err
	}
	apiErr := err.(*ApiError)
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return nil
		}
	}
	return err
}

func ExpectStatusCodes(err error, codes ...int) bool {
	if !IsApiError(err) {
		return false
	}
	apiErr := err.(*ApiError)
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// LinkuriousSession owns the HTTP transport (with its cookie jar) and the
// authenticator for one connection to a Linkurious server.
type LinkuriousSession struct {
	config *LinkuriousConfig
	client *http.Client
	auth   Authenticator
}

type sessionMethod func(context.Context, string, Params, []http.Header) (Renderable, error)

// NewLinkuriousSession creates a session bound to the configured host. When a
// username is configured, authentication runs immediately and any failure is
// returned (construction fails the same way a later Authenticate would).
func NewLinkuriousSession(config *LinkuriousConfig) (*LinkuriousSession, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !config.SslVerify}
	transport.MaxConnsPerHost = config.MaxConnections
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Transport: transport, Jar: jar}
	if config.Timeout != nil {
		client.Timeout = *config.Timeout
	}
	authenticator, err := createAuthenticator(config, client)
	if err != nil {
		return nil, err
	}
	if config.Username != "" {
		if err = authenticator.authorize(); err != nil {
			return nil, err
		}
	}
	session := &LinkuriousSession{
		config: config,
		client: client,
		auth:   authenticator,
	}
	return session, nil
}

// Authenticate re-runs the login flow with the given credentials against the
// same cookie jar. It does not consult prior state: calling it again simply
// performs another login. Exactly one of password or apikey is expected to be
// meaningful; the apikey path is a declared capability gap.
func (s *LinkuriousSession) Authenticate(username, password, apikey string) error {
	if username == "" {
		return &AuthError{Reason: "no usable credential was supplied"}
	}
	cfg := *s.config
	cfg.Username = username
	cfg.Password = password
	cfg.ApiKey = apikey
	authenticator, err := createAuthenticator(&cfg, s.client)
	if err != nil {
		return err
	}
	if err = authenticator.authorize(); err != nil {
		return err
	}
	s.auth = authenticator
	s.config.Username = username
	s.config.Password = password
	s.config.ApiKey = apikey
	return nil
}

// IsAuthenticated reports whether the last login on this session succeeded.
func (s *LinkuriousSession) IsAuthenticated() bool {
	return s.auth.isAuthenticated()
}

// Request performs an HTTP request for the given resource caller and asserts
// the response into the expected record shape.
func Request[T RecordUnion](
	ctx context.Context,
	r InterceptableResourceAPI,
	verb, path string,
	params, body Params,
) (T, error) {
	return RequestWithHeaders[T](ctx, r, verb, path, params, body, nil)
}

func RequestWithHeaders[T RecordUnion](
	ctx context.Context,
	r InterceptableResourceAPI,
	verb, path string,
	params, body Params,
	headers []http.Header,
) (T, error) {
	var (
		method sessionMethod
		query  string
		err    error
		zero   T
	)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, caller, r)
	verb = strings.ToUpper(verb)
	session := r.Session()

	switch verb {
	case http.MethodGet:
		method = session.Get
	case http.MethodPost:
		method = session.Post
	case http.MethodPut:
		method = session.Put
	case http.MethodPatch:
		method = session.Patch
	case http.MethodDelete:
		method = session.Delete
	default:
		return zero, fmt.Errorf("unknown verb: %s", verb)
	}
	if params != nil {
		query = params.ToQuery()
	}
	url, err := buildUrl(session, path, query)
	if err != nil {
		return zero, err
	}

	response, err := method(ctx, url, body, headers)
	if err != nil {
		if ExpectStatusCodes(err, http.StatusNotFound) {
			err.(*ApiError).hints = describeResourcePath(path)
		}
		return zero, err
	}

	if typeMatch[Record](response) {
		// Some endpoints return a single record where the caller expects a
		// list; normalize Record to RecordSet in that case.
		if typeMatch[RecordSet](Renderable(zero)) {
			if !response.(Record).Empty() {
				response = RecordSet{response.(Record)}
			} else {
				response = RecordSet{}
			}
		}
	}

	resultVal, ok := response.(T)
	if !ok {
		return zero, fmt.Errorf(
			"unexpected response type for request to %s: got %T, expected %T - "+
				"consider converting the response inside the AfterRequest interceptor",
			url,
			response,
			*new(T),
		)
	}
	return resultVal, nil
}

func (s *LinkuriousSession) Get(ctx context.Context, url string, _ Params, headers []http.Header) (Renderable, error) {
	return doRequestWithRetries(ctx, s, http.MethodGet, url, nil, headers)
}

func (s *LinkuriousSession) Post(ctx context.Context, url string, body Params, headers []http.Header) (Renderable, error) {
	return doRequestWithRetries(ctx, s, http.MethodPost, url, body, headers)
}

func (s *LinkuriousSession) Put(ctx context.Context, url string, body Params, headers []http.Header) (Renderable, error) {
	return doRequestWithRetries(ctx, s, http.MethodPut, url, body, headers)
}

func (s *LinkuriousSession) Patch(ctx context.Context, url string, body Params, headers []http.Header) (Renderable, error) {
	return doRequestWithRetries(ctx, s, http.MethodPatch, url, body, headers)
}

func (s *LinkuriousSession) Delete(ctx context.Context, url string, body Params, headers []http.Header) (Renderable, error) {
	return doRequestWithRetries(ctx, s, http.MethodDelete, url, body, headers)
}

func (s *LinkuriousSession) GetConfig() *LinkuriousConfig {
	return s.config
}

func (s *LinkuriousSession) GetAuthenticator() Authenticator {
	return s.auth
}

func consolidateHeaders(s RESTSession, customHeaders []http.Header) http.Header {
	finalHeaders := make(http.Header)

	// Apply custom headers first
	for _, header := range customHeaders {
		for key, values := range header {
			for _, value := range values {
				finalHeaders.Add(key, value)
			}
		}
	}

	// Set default headers only if not already provided
	if finalHeaders.Get(HeaderAccept) == "" {
		finalHeaders.Set(HeaderAccept, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderContentType) == "" {
		finalHeaders.Set(HeaderContentType, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderUserAgent) == "" {
		finalHeaders.Set(HeaderUserAgent, s.GetConfig().UserAgent)
	}

	return finalHeaders
}

func setupHeaders(s RESTSession, r *http.Request, headers http.Header) {
	s.GetAuthenticator().setAuthHeader(&r.Header)
	for key, values := range headers {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
}

// doRequest creates and processes one HTTP request using the context.
func doRequest(ctx context.Context, s *LinkuriousSession, verb, url string, body Params, headers []http.Header) (Renderable, error) {
	var (
		resourceCaller    InterceptableResourceAPI
		requestData       io.Reader
		beforeRequestData io.Reader
		err               error
	)
	originResource, resourceExist := ctx.Value(caller).(InterceptableResourceAPI)
	if !resourceExist {
		// Request issued via a "low level" session method; fall back to the
		// dummy resource so interceptors still run.
		resourceCaller = NewDummy(ctx, s)
	} else {
		resourceCaller = originResource
	}
	// Convert to full URI if needed.
	if url, err = pathToUrl(s, url); err != nil {
		return nil, err
	}

	finalHeaders := consolidateHeaders(s, headers)

	if body == nil {
		requestData = bytes.NewReader(nil)
	} else if requestData, err = body.ToBody(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, verb, url, requestData)
	if err != nil {
		return nil, err
	}
	// Fresh copy of the body for interceptors.
	if body != nil {
		if beforeRequestData, err = body.ToBody(); err != nil {
			return nil, err
		}
	}
	setupHeaders(s, req, finalHeaders)

	if err = resourceCaller.doBeforeRequest(ctx, req, verb, url, beforeRequestData); err != nil {
		return nil, err
	}
	response, responseErr := s.client.Do(req)
	if responseErr != nil {
		return nil, fmt.Errorf("failed to perform %s request to %s, error %v", verb, url, responseErr)
	}
	if err = validateResponse(response); err != nil {
		return nil, err
	}
	result, err := unmarshalToRecordUnion(response)
	if err != nil {
		return nil, err
	}
	return resourceCaller.doAfterRequest(ctx, result)
}

// doRequestWithRetries attempts to perform an HTTP request using doRequest,
// retrying up to 3 times if the request fails with a 401/403 API error. Each
// retry re-runs the authenticator's login first, which refreshes the session
// cookie. Non-retryable errors return immediately.
func doRequestWithRetries(ctx context.Context, s *LinkuriousSession, verb, url string, body Params, headers []http.Header) (Renderable, error) {
	var (
		err    error
		result Renderable
	)
	for i := 0; i < maxRetries; i++ {
		result, err = doRequest(ctx, s, verb, url, body, headers)
		if err != nil && IsApiError(err) {
			statusCode := err.(*ApiError).StatusCode
			if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
				if _, anonymous := s.auth.(*anonymousAuthenticator); anonymous {
					// Nothing to re-authorize with.
					break
				}
				if authErr := s.auth.authorize(); authErr != nil {
					return nil, authErr
				}
				continue
			}
		}
		break
	}
	return result, err
}
