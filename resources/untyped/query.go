package untyped

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openpolis/go-linkurious-client/core"
)

// Query runs graph queries against a data-source.
type Query struct {
	*core.LinkuriousResource
}

// RunCypherWithContext runs a cypher query against the given data-source
// and returns the resulting subgraph.
//
// POST /api/:sourceKey/graph/run/query
func (q *Query) RunCypherWithContext(ctx context.Context, sourceKey, query string, withDigest, withDegree bool) (core.Record, error) {
	path := fmt.Sprintf("%s/graph/run/query", sourceKey)
	body := core.Params{
		"query":      query,
		"dialect":    "cypher",
		"withDigest": withDigest,
		"withDegree": withDegree,
	}
	return core.Request[core.Record](ctx, q, http.MethodPost, path, nil, body)
}

func (q *Query) RunCypher(sourceKey, query string, withDigest, withDegree bool) (core.Record, error) {
	return q.RunCypherWithContext(q.Rest.GetCtx(), sourceKey, query, withDigest, withDegree)
}
