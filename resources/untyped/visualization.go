package untyped

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/openpolis/go-linkurious-client/core"
)

// Visualization manages saved graph visualizations of a data-source,
// including the folder tree and per-user share rights.
type Visualization struct {
	*core.LinkuriousResource
}

func (v *Visualization) collectionPath(sourceKey string) string {
	return fmt.Sprintf("%s/visualizations", sourceKey)
}

// TreeWithContext returns the visualizations tree of a data-source.
//
// GET /api/:sourceKey/visualizations/tree
func (v *Visualization) TreeWithContext(ctx context.Context, sourceKey string) (core.Record, error) {
	path := v.collectionPath(sourceKey) + "/tree"
	return core.Request[core.Record](ctx, v, http.MethodGet, path, nil, nil)
}

func (v *Visualization) Tree(sourceKey string) (core.Record, error) {
	return v.TreeWithContext(v.Rest.GetCtx(), sourceKey)
}

// GetWithContext returns a visualization by id.
//
// GET /api/:sourceKey/visualizations/:id
func (v *Visualization) GetWithContext(ctx context.Context, sourceKey string, id int64, withDigest, withDegree bool) (core.Record, error) {
	path := core.BuildResourcePathWithID(v.collectionPath(sourceKey), id)
	params := core.Params{
		"withDigest": withDigest,
		"withDegree": withDegree,
	}
	return core.Request[core.Record](ctx, v, http.MethodGet, path, params, nil)
}

func (v *Visualization) Get(sourceKey string, id int64, withDigest, withDegree bool) (core.Record, error) {
	return v.GetWithContext(v.Rest.GetCtx(), sourceKey, id, withDigest, withDegree)
}

// CreateWithContext creates a visualization with the given title, nodes
// and edges. The layout and the alternative id mapping are fixed: force
// layout in fast mode, nodes and edges keyed by their "id" property.
//
// POST /api/:sourceKey/visualizations
func (v *Visualization) CreateWithContext(ctx context.Context, sourceKey, title string, nodes, edges []core.Params) (core.Record, error) {
	if nodes == nil {
		nodes = []core.Params{}
	}
	if edges == nil {
		edges = []core.Params{}
	}
	body := core.Params{
		"title": title,
		"layout": core.Params{
			"algorithm": "force",
			"mode":      "fast",
		},
		"nodes": nodes,
		"edges": edges,
		"alternativeIds": core.Params{
			"node": "id",
			"edge": "id",
		},
	}
	return core.Request[core.Record](ctx, v, http.MethodPost, v.collectionPath(sourceKey), nil, body)
}

func (v *Visualization) Create(sourceKey, title string, nodes, edges []core.Params) (core.Record, error) {
	return v.CreateWithContext(v.Rest.GetCtx(), sourceKey, title, nodes, edges)
}

// UpdateWithContext updates a visualization. The forceLock and doLayout
// flags are only sent when true.
//
// PATCH /api/:sourceKey/visualizations/:id
func (v *Visualization) UpdateWithContext(ctx context.Context, sourceKey string, id int64, visualization core.Params, forceLock, doLayout bool) (core.Record, error) {
	unlock := v.Lock(sourceKey, id)
	defer unlock()
	if visualization == nil {
		visualization = core.Params{}
	}
	body := core.Params{"visualization": visualization}
	if forceLock {
		body["forceLock"] = true
	}
	if doLayout {
		body["doLayout"] = true
	}
	path := core.BuildResourcePathWithID(v.collectionPath(sourceKey), id)
	return core.Request[core.Record](ctx, v, http.MethodPatch, path, nil, body)
}

func (v *Visualization) Update(sourceKey string, id int64, visualization core.Params, forceLock, doLayout bool) (core.Record, error) {
	return v.UpdateWithContext(v.Rest.GetCtx(), sourceKey, id, visualization, forceLock, doLayout)
}

// DeleteWithContext deletes a visualization by id.
//
// DELETE /api/:sourceKey/visualizations/:id
func (v *Visualization) DeleteWithContext(ctx context.Context, sourceKey string, id int64) (core.Record, error) {
	unlock := v.Lock(sourceKey, id)
	defer unlock()
	path := core.BuildResourcePathWithID(v.collectionPath(sourceKey), id)
	return core.Request[core.Record](ctx, v, http.MethodDelete, path, nil, nil)
}

func (v *Visualization) Delete(sourceKey string, id int64) (core.Record, error) {
	return v.DeleteWithContext(v.Rest.GetCtx(), sourceKey, id)
}

// SharesWithContext returns the share rights of a visualization.
//
// GET /api/:sourceKey/visualizations/:id/shares
func (v *Visualization) SharesWithContext(ctx context.Context, sourceKey string, id int64) (core.Record, error) {
	path := core.BuildResourcePathWithID(v.collectionPath(sourceKey), id, "shares")
	return core.Request[core.Record](ctx, v, http.MethodGet, path, nil, nil)
}

func (v *Visualization) Shares(sourceKey string, id int64) (core.Record, error) {
	return v.SharesWithContext(v.Rest.GetCtx(), sourceKey, id)
}

// ShareWithContext shares a visualization with a user, granting the
// given right ("read", "write" or "owner").
//
// PUT /api/:sourceKey/visualizations/:id/share/:userId
func (v *Visualization) ShareWithContext(ctx context.Context, sourceKey string, id, userID int64, right string) (core.Record, error) {
	unlock := v.Lock(sourceKey, id)
	defer unlock()
	path := core.BuildResourcePathWithID(v.collectionPath(sourceKey), id, "share", strconv.FormatInt(userID, 10))
	body := core.Params{"right": right}
	return core.Request[core.Record](ctx, v, http.MethodPut, path, nil, body)
}

func (v *Visualization) Share(sourceKey string, id, userID int64, right string) (core.Record, error) {
	return v.ShareWithContext(v.Rest.GetCtx(), sourceKey, id, userID, right)
}

// UnshareWithContext removes a user's access to a visualization.
//
// DELETE /api/:sourceKey/visualizations/:id/share/:userId
func (v *Visualization) UnshareWithContext(ctx context.Context, sourceKey string, id, userID int64) (core.Record, error) {
	unlock := v.Lock(sourceKey, id)
	defer unlock()
	path := core.BuildResourcePathWithID(v.collectionPath(sourceKey), id, "share", strconv.FormatInt(userID, 10))
	return core.Request[core.Record](ctx, v, http.MethodDelete, path, nil, nil)
}

func (v *Visualization) Unshare(sourceKey string, id, userID int64) (core.Record, error) {
	return v.UnshareWithContext(v.Rest.GetCtx(), sourceKey, id, userID)
}
