// Package rest assembles the per-endpoint resources into a single
// Linkurious client facade.
package rest

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/openpolis/go-linkurious-client/core"
	"github.com/openpolis/go-linkurious-client/resources/untyped"
)

// LinkuriousRest is the entry point of the client. It owns the session
// and exposes one field per endpoint group.
type LinkuriousRest struct {
	ctx         context.Context
	Session     core.RESTSession
	resourceMap map[string]core.InterceptableResourceAPI

	Server         *untyped.Server
	DataSources    *untyped.DataSource
	Configs        *untyped.ServerConfig
	Applications   *untyped.Application
	Queries        *untyped.Query
	Visualizations *untyped.Visualization
	Users          *untyped.User
	Groups         *untyped.Group
}

// resourcePaths maps a resource type name to the path of its primary
// collection. Resources whose endpoints are built per call (from a
// sourceKey or an id) carry the templated form here; it is only used
// as the default GetResourcePath value and for diagnostics.
var resourcePaths = map[string]string{
	"Server":        "/status",
	"DataSource":    "/dataSources",
	"ServerConfig":  "/config",
	"Application":   "/admin/applications",
	"Query":         "/{sourceKey}/graph/run/query",
	"Visualization": "/{sourceKey}/visualizations",
	"User":          "/users",
	"Group":         "/admin/{sourceKey}/groups",
}

// NewLinkuriousRest creates a LinkuriousRest client from the given config.
// Defaults are applied for port, timeout, connection pool size and user
// agent; the host is required. When credentials are configured the login
// runs immediately and a failure aborts construction.
func NewLinkuriousRest(config *core.LinkuriousConfig) (*LinkuriousRest, error) {
	config.Validate(
		core.WithHost,
		core.WithPort(443),
		core.WithTimeout(30*time.Second),
		core.WithMaxConnections(10),
		core.WithUserAgent,
		core.WithFillFn,
	)
	session, err := core.NewLinkuriousSession(config)
	if err != nil {
		return nil, err
	}
	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	rest := &LinkuriousRest{
		ctx:         ctx,
		Session:     session,
		resourceMap: make(map[string]core.InterceptableResourceAPI),
	}
	rest.Server = newResource[untyped.Server](rest)
	rest.DataSources = newResource[untyped.DataSource](rest)
	rest.Configs = newResource[untyped.ServerConfig](rest)
	rest.Applications = newResource[untyped.Application](rest)
	rest.Queries = newResource[untyped.Query](rest)
	rest.Visualizations = newResource[untyped.Visualization](rest)
	rest.Users = newResource[untyped.User](rest)
	rest.Groups = newResource[untyped.Group](rest)
	return rest, nil
}

// newResource builds a resource of type T, wires the shared rest object
// into it and registers it in the resource map under its type name.
func newResource[T any](rest *LinkuriousRest) *T {
	resource := new(T)
	resourceType := reflect.TypeOf(resource).Elem().Name()
	resourcePath, ok := resourcePaths[resourceType]
	if !ok {
		panic(fmt.Sprintf("no resource path registered for %s", resourceType))
	}
	base := core.NewLinkuriousResource(resourcePath, resourceType, rest)
	reflect.ValueOf(resource).Elem().
		FieldByName("LinkuriousResource").
		Set(reflect.ValueOf(base))
	interceptable, ok := any(resource).(core.InterceptableResourceAPI)
	if !ok {
		panic(fmt.Sprintf("resource %s does not implement InterceptableResourceAPI", resourceType))
	}
	rest.resourceMap[resourceType] = interceptable
	return resource
}

// Authenticate logs in again with the given credentials over the same
// underlying session.
func (rest *LinkuriousRest) Authenticate(username, password, apikey string) error {
	return rest.Session.Authenticate(username, password, apikey)
}

// IsAuthenticated reports whether the session holds a valid login.
func (rest *LinkuriousRest) IsAuthenticated() bool {
	return rest.Session.IsAuthenticated()
}

func (rest *LinkuriousRest) GetSession() core.RESTSession {
	return rest.Session
}

func (rest *LinkuriousRest) GetResourceMap() map[string]core.InterceptableResourceAPI {
	return rest.resourceMap
}

// GetCtx returns the context used by contextless resource methods.
func (rest *LinkuriousRest) GetCtx() context.Context {
	return rest.ctx
}

// SetCtx replaces the context used by contextless resource methods.
func (rest *LinkuriousRest) SetCtx(ctx context.Context) {
	rest.ctx = ctx
}
