package untyped

import (
	"context"
	"net/http"

	"github.com/openpolis/go-linkurious-client/core"
)

// User searches the users known to the instance.
type User struct {
	*core.LinkuriousResource
}

// SearchUsersParams filters and paginates a user search. Unset fields
// are absent from the outgoing request.
type SearchUsersParams struct {
	StartsWith    string `json:"starts_with,omitempty"`
	Contains      string `json:"contains,omitempty"`
	GroupID       int64  `json:"group_id,omitempty"`
	Limit         int64  `json:"limit,omitempty"`
	Offset        int64  `json:"offset,omitempty"`
	SortBy        string `json:"sort_by,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
}

// SearchWithContext returns the users matching the given filters.
//
// GET /api/users
func (u *User) SearchWithContext(ctx context.Context, searchParams SearchUsersParams) (core.Record, error) {
	params, err := core.NewParamsFromStruct(searchParams)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, u, http.MethodGet, u.GetResourcePath(), params, nil)
}

func (u *User) Search(searchParams SearchUsersParams) (core.Record, error) {
	return u.SearchWithContext(u.Rest.GetCtx(), searchParams)
}
