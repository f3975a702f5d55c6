package core

// HTTP-related constants for REST operations.

// HTTP Header Names
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
)
