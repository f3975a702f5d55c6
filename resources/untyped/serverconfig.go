package untyped

import (
	"context"
	"net/http"

	"github.com/openpolis/go-linkurious-client/core"
)

// ServerConfig reads and updates the server configuration.
type ServerConfig struct {
	*core.LinkuriousResource
}

// GetWithContext returns the configuration of the data-source at the
// given index.
//
// GET /api/config
func (c *ServerConfig) GetWithContext(ctx context.Context, sourceIndex int) (core.Record, error) {
	params := core.Params{"sourceIndex": sourceIndex}
	return core.Request[core.Record](ctx, c, http.MethodGet, "/config", params, nil)
}

func (c *ServerConfig) Get(sourceIndex int) (core.Record, error) {
	return c.GetWithContext(c.Rest.GetCtx(), sourceIndex)
}

// UpdateConfigParams describes a configuration update. SourceIndex and
// Reset are always sent; Path and Configuration only when set.
type UpdateConfigParams struct {
	SourceIndex   int    `json:"sourceIndex"`
	Path          string `json:"path,omitempty"`
	Configuration any    `json:"configuration,omitempty"`
	Reset         bool   `json:"reset"`
}

// UpdateWithContext updates part of the configuration of a data-source.
//
// POST /api/config
func (c *ServerConfig) UpdateWithContext(ctx context.Context, updateParams UpdateConfigParams) (core.Record, error) {
	body, err := core.NewParamsFromStruct(updateParams)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, c, http.MethodPost, "/config", nil, body)
}

func (c *ServerConfig) Update(updateParams UpdateConfigParams) (core.Record, error) {
	return c.UpdateWithContext(c.Rest.GetCtx(), updateParams)
}
