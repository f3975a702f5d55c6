package untyped

import (
	"context"
	"net/http"

	"github.com/openpolis/go-linkurious-client/core"
)

// Application manages the API applications of the instance.
type Application struct {
	*core.LinkuriousResource
}

// ListWithContext returns all API applications.
//
// GET /api/admin/applications
func (a *Application) ListWithContext(ctx context.Context) (core.RecordSet, error) {
	return core.Request[core.RecordSet](ctx, a, http.MethodGet, a.GetResourcePath(), nil, nil)
}

func (a *Application) List() (core.RecordSet, error) {
	return a.ListWithContext(a.Rest.GetCtx())
}

// CreateWithContext creates a new API application.
//
// POST /api/admin/applications
func (a *Application) CreateWithContext(ctx context.Context, name string, groups []int64, rights []string, enabled bool) (core.Record, error) {
	body := core.Params{
		"name":    name,
		"groups":  groups,
		"rights":  rights,
		"enabled": enabled,
	}
	return core.Request[core.Record](ctx, a, http.MethodPost, a.GetResourcePath(), nil, body)
}

func (a *Application) Create(name string, groups []int64, rights []string, enabled bool) (core.Record, error) {
	return a.CreateWithContext(a.Rest.GetCtx(), name, groups, rights, enabled)
}

// UpdateApplicationParams carries the mutable fields of an application.
// Enabled is always sent; the other fields only when set.
type UpdateApplicationParams struct {
	Name    string   `json:"name,omitempty"`
	Enabled bool     `json:"enabled"`
	Groups  []int64  `json:"groups,omitempty"`
	Rights  []string `json:"rights,omitempty"`
}

// UpdateWithContext updates an existing API application. The server
// accepts updates on the collection endpoint, keyed by id in the body.
//
// POST /api/admin/applications
func (a *Application) UpdateWithContext(ctx context.Context, id int64, updateParams UpdateApplicationParams) (core.Record, error) {
	body, err := core.NewParamsFromStruct(updateParams)
	if err != nil {
		return nil, err
	}
	body["id"] = id
	return core.Request[core.Record](ctx, a, http.MethodPost, a.GetResourcePath(), nil, body)
}

func (a *Application) Update(id int64, updateParams UpdateApplicationParams) (core.Record, error) {
	return a.UpdateWithContext(a.Rest.GetCtx(), id, updateParams)
}
