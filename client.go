package linkurious_client

import (
	"github.com/openpolis/go-linkurious-client/core"
	"github.com/openpolis/go-linkurious-client/rest"
)

// Aliases of the core types callers interact with, so that importing the
// root package is enough for typical usage.
type (
	LinkuriousConfig = core.LinkuriousConfig
	LinkuriousRest   = rest.LinkuriousRest
	Params           = core.Params
	Record           = core.Record
	RecordSet        = core.RecordSet
	Renderable       = core.Renderable
	ApiError         = core.ApiError
	AuthError        = core.AuthError
)

// NewLinkuriousRest creates a Linkurious REST client from the given config.
func NewLinkuriousRest(config *LinkuriousConfig) (*LinkuriousRest, error) {
	return rest.NewLinkuriousRest(config)
}

// ClientVersion returns the version of this client library.
func ClientVersion() string {
	return core.ClientVersion()
}
