package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"reflect"
	"strings"
)

// apiBasePath is the fixed base path every Linkurious endpoint lives under.
const apiBasePath = "api"

// validateResponse checks the response for valid HTTP status codes (specifically 2xx).
// It returns an *ApiError if the status code is not a 2xx code or if the response is nil.
func validateResponse(response *http.Response) error {
	requestURL := "<unknown URL>"
	method := "<unknown method>"
	if response == nil {
		return &ApiError{
			Method:     method,
			URL:        requestURL,
			StatusCode: 0,
			Body:       "server unreachable: verify the host is correct and the network is accessible",
		}
	}
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return nil
	}
	if response.Request != nil {
		if response.Request.URL != nil {
			requestURL = response.Request.URL.String()
		}
		method = response.Request.Method
	}
	return &ApiError{
		Method:     method,
		URL:        requestURL,
		StatusCode: response.StatusCode,
		Body:       getResponseBodyAsStr(response),
	}
}

// pathToUrl returns a full URI string based on the provided input.
// If the input string is already a full URI (i.e., contains a scheme like
// "http" or "https"), it is returned unchanged. Otherwise, the function
// constructs a full URI using the session's configuration, appending the
// input path (with optional query parameters) to the /api base path.
func pathToUrl(s RESTSession, input string) (string, error) {
	parsedURL, parseErr := urlpkg.Parse(input)
	if parseErr == nil && parsedURL.Scheme != "" {
		return input, nil // already a full URI
	}
	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}
	config := s.GetConfig()

	pathAndQuery, err := urlpkg.ParseRequestURI(input)
	if err != nil {
		return "", fmt.Errorf("invalid relative URL: %w", err)
	}
	joinedPath, err := urlpkg.JoinPath(apiBasePath, strings.Trim(pathAndQuery.Path, "/"))
	if err != nil {
		return "", err
	}
	fullURL := &urlpkg.URL{
		Scheme:   "https",
		Host:     fmt.Sprintf("%s:%v", config.Host, config.Port),
		Path:     joinedPath,
		RawQuery: pathAndQuery.RawQuery,
	}
	return fullURL.String(), nil
}

// buildUrl builds a full URL from a sub-resource path and a raw query string.
// Schema, host and port are taken from the session config; the path is always
// rooted under /api.
func buildUrl(s RESTSession, path, query string) (string, error) {
	var err error
	config := s.GetConfig()
	if path, err = urlpkg.JoinPath(apiBasePath, strings.Trim(path, "/")); err != nil {
		return "", err
	}
	url := urlpkg.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s:%v", config.Host, config.Port),
		Path:   path,
	}
	if query != "" {
		url.RawQuery = query
	}
	return url.String(), nil
}

// convertMapToQuery converts a map[string]any to a URL query string.
// Slice and array values are joined with commas; everything else is
// stringified with fmt.Sprint.
func convertMapToQuery(params Params) string {
	values := urlpkg.Values{}
	for k, v := range params {
		rv := reflect.ValueOf(v)
		if v != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			parts := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				parts[i] = fmt.Sprint(rv.Index(i).Interface())
			}
			values.Set(k, strings.Join(parts, ","))
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// getResponseBodyAsStr reads and returns the HTTP response body as a string.
// If the response body contains valid JSON, it returns a pretty-printed version.
// If the response is nil or an error occurs during reading, it returns an empty string.
//
// Note: This function consumes and closes the response body.
func getResponseBodyAsStr(r *http.Response) string {
	var b bytes.Buffer
	if r == nil {
		return ""
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	if err = json.Indent(&b, body, "", "  "); err == nil {
		return b.String()
	}
	return string(body)
}

// BuildResourcePathWithID builds a complete resource path with an id segment
// and optional additional segments, e.g. "/s1/visualizations" + 5 + "shares"
// becomes "/s1/visualizations/5/shares".
func BuildResourcePathWithID(resourcePath string, id any, additionalSegments ...string) string {
	var path string
	if intId, err := toInt(id); err == nil {
		path = fmt.Sprintf("%s/%d", resourcePath, intId)
	} else {
		path = fmt.Sprintf("%s/%v", resourcePath, id)
	}
	for _, segment := range additionalSegments {
		path += "/" + segment
	}
	return path
}
