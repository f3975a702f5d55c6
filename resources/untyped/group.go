package untyped

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openpolis/go-linkurious-client/core"
)

// Group lists the user groups of a data-source.
type Group struct {
	*core.LinkuriousResource
}

// ListWithContext returns all the groups of the given data-source.
//
// GET /api/admin/:sourceKey/groups
func (g *Group) ListWithContext(ctx context.Context, sourceKey string) (core.RecordSet, error) {
	path := fmt.Sprintf("admin/%s/groups", sourceKey)
	return core.Request[core.RecordSet](ctx, g, http.MethodGet, path, nil, nil)
}

func (g *Group) List(sourceKey string) (core.RecordSet, error) {
	return g.ListWithContext(g.Rest.GetCtx(), sourceKey)
}
