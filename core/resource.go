package core

import (
	"context"
	"strings"

	"github.com/openpolis/go-linkurious-client/openapi_schema"
)

// Dummy resource is used to support request interceptors for "low level"
// session methods like GET, POST etc.
type Dummy struct {
	*LinkuriousResource
}

type dummyRest struct {
	ctx         context.Context
	session     RESTSession
	resourceMap map[string]InterceptableResourceAPI
}

func (rest *dummyRest) GetSession() RESTSession {
	return rest.session
}

func (rest *dummyRest) GetResourceMap() map[string]InterceptableResourceAPI {
	return rest.resourceMap
}

func (rest *dummyRest) GetCtx() context.Context {
	return rest.ctx
}

func (rest *dummyRest) SetCtx(ctx context.Context) {
	rest.ctx = ctx
}

func NewDummy(ctx context.Context, session RESTSession) *Dummy {
	dummy := &Dummy{
		LinkuriousResource: &LinkuriousResource{
			resourceType: "Dummy",
			resourcePath: "",
			mu:           NewKeyLocker(),
		},
	}
	rest := &dummyRest{
		ctx:         ctx,
		session:     session,
		resourceMap: map[string]InterceptableResourceAPI{"Dummy": dummy},
	}
	dummy.Rest = rest
	return dummy
}

// LinkuriousResource implements ResourceAPI and provides common behavior for
// the per-endpoint resources under resources/untyped.
type LinkuriousResource struct {
	resourcePath string
	resourceType string
	Rest         Rest
	mu           *KeyLocker
}

func NewLinkuriousResource(resourcePath, resourceType string, rest Rest) *LinkuriousResource {
	return &LinkuriousResource{
		resourcePath: resourcePath,
		resourceType: resourceType,
		Rest:         rest,
		mu:           NewKeyLocker(),
	}
}

// Session returns the current session associated with the resource.
func (e *LinkuriousResource) Session() RESTSession {
	return e.Rest.GetSession()
}

func (e *LinkuriousResource) GetResourceType() string {
	return e.resourceType
}

func (e *LinkuriousResource) GetResourcePath() string {
	trimmed := strings.Trim(e.resourcePath, "/")
	return "/" + trimmed
}

// Lock acquires a per-key lock scoped to this resource and returns the
// corresponding unlock function.
func (e *LinkuriousResource) Lock(keys ...any) func() {
	combined := append([]any{e.resourceType}, keys...)
	return e.mu.Lock(combined...)
}

// describeResourcePath returns a human-readable summary of the operations the
// embedded OpenAPI catalogue declares for the given concrete path. Used to
// enrich 404 errors; an empty string means no hint is available.
func describeResourcePath(path string) string {
	hint, err := openapi_schema.DescribePath(path)
	if err != nil {
		return ""
	}
	return hint
}
