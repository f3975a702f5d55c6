package untyped

import (
	"context"
	"fmt"
	"net/http"

	version "github.com/hashicorp/go-version"
	"github.com/openpolis/go-linkurious-client/core"
)

// Server groups the instance-level endpoints: status, version and the
// custom files catalogue.
type Server struct {
	*core.LinkuriousResource
}

// StatusWithContext returns the status of the Linkurious server.
//
// GET /api/status
func (s *Server) StatusWithContext(ctx context.Context) (core.Record, error) {
	return core.Request[core.Record](ctx, s, http.MethodGet, "/status", nil, nil)
}

func (s *Server) Status() (core.Record, error) {
	return s.StatusWithContext(s.Rest.GetCtx())
}

// VersionWithContext returns the raw version response of the Linkurious server.
//
// GET /api/version
func (s *Server) VersionWithContext(ctx context.Context) (core.Record, error) {
	return core.Request[core.Record](ctx, s, http.MethodGet, "/version", nil, nil)
}

func (s *Server) Version() (core.Record, error) {
	return s.VersionWithContext(s.Rest.GetCtx())
}

// ServerVersionWithContext parses the server's tag_name into a semantic version.
func (s *Server) ServerVersionWithContext(ctx context.Context) (*version.Version, error) {
	result, err := s.VersionWithContext(ctx)
	if err != nil {
		return nil, err
	}
	tagName, ok := result["tag_name"].(string)
	if !ok {
		return nil, fmt.Errorf("version response has no tag_name: %s", result.PrettyJson())
	}
	serverVersion, err := version.NewVersion(tagName)
	if err != nil {
		return nil, err
	}
	return serverVersion.Core(), nil
}

func (s *Server) ServerVersion() (*version.Version, error) {
	return s.ServerVersionWithContext(s.Rest.GetCtx())
}

// CompareWithWithContext compares the server version with the given one.
// It returns -1, 0, or 1 if the server version is smaller, equal,
// or larger than the other version, respectively.
func (s *Server) CompareWithWithContext(ctx context.Context, other *version.Version) (int, error) {
	serverVersion, err := s.ServerVersionWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return serverVersion.Compare(other), nil
}

func (s *Server) CompareWith(other *version.Version) (int, error) {
	return s.CompareWithWithContext(s.Rest.GetCtx(), other)
}

// CustomFilesParams narrows the custom files listing. Unset fields are
// absent from the outgoing request.
type CustomFilesParams struct {
	Root       string `json:"root,omitempty"`
	Extensions string `json:"extensions,omitempty"`
}

// CustomFilesWithContext returns the list of custom files of the instance.
//
// GET /api/customFiles
func (s *Server) CustomFilesWithContext(ctx context.Context, searchParams CustomFilesParams) (core.Record, error) {
	params, err := core.NewParamsFromStruct(searchParams)
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, s, http.MethodGet, "/customFiles", params, nil)
}

func (s *Server) CustomFiles(searchParams CustomFilesParams) (core.Record, error) {
	return s.CustomFilesWithContext(s.Rest.GetCtx(), searchParams)
}
