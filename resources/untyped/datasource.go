package untyped

import (
	"context"
	"net/http"

	"github.com/openpolis/go-linkurious-client/core"
)

// DataSource exposes the status and admin info of the configured graph
// data connections.
type DataSource struct {
	*core.LinkuriousResource
}

// StatusesWithContext returns the status of all data-sources.
//
// GET /api/dataSources
//
// The remote API expects with_styles/with_captions as the integers 0/1,
// not booleans; the flags are only sent when set.
func (d *DataSource) StatusesWithContext(ctx context.Context, withStyles, withCaptions bool) (core.Record, error) {
	params := core.Params{}
	if withStyles {
		params["with_styles"] = 1
	}
	if withCaptions {
		params["with_captions"] = 1
	}
	return core.Request[core.Record](ctx, d, http.MethodGet, "/dataSources", params, nil)
}

func (d *DataSource) Statuses(withStyles, withCaptions bool) (core.Record, error) {
	return d.StatusesWithContext(d.Rest.GetCtx(), withStyles, withCaptions)
}

// AdminInfoWithContext returns the admin info of all data-sources.
//
// GET /api/admin/sources
func (d *DataSource) AdminInfoWithContext(ctx context.Context) (core.RecordSet, error) {
	return core.Request[core.RecordSet](ctx, d, http.MethodGet, "/admin/sources", nil, nil)
}

func (d *DataSource) AdminInfo() (core.RecordSet, error) {
	return d.AdminInfoWithContext(d.Rest.GetCtx())
}
