// Package openapi_schema embeds an OpenAPI v3 catalogue of the Linkurious
// REST endpoints this client wraps. It is used for diagnostics (listing the
// operations available on a path when the server returns 404) and for
// programmatic endpoint discovery.
package openapi_schema

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	//go:embed schema/openapi.json
	FS             embed.FS
	openApiDocOnce sync.Once
	openApiDoc     *openapi3.T
	openApiDocErr  error
	schemaRelPath  = "schema/openapi.json"
)

// loadOpenAPIDocOnce loads and parses the embedded OpenAPI v3 document exactly
// once. The document is parsed with the kin-openapi loader and cached for
// future calls; errors encountered during the initial load are cached too.
func loadOpenAPIDocOnce() (*openapi3.T, error) {
	openApiDocOnce.Do(func() {
		data, err := FS.ReadFile(schemaRelPath)
		if err != nil {
			openApiDocErr = fmt.Errorf("read embedded schema: %w", err)
			return
		}
		loader := openapi3.NewLoader()
		openApiDoc, openApiDocErr = loader.LoadFromData(data)
	})
	return openApiDoc, openApiDocErr
}

// FindPathItem resolves a concrete request path (e.g. "/s1/visualizations/5")
// against the templated paths of the catalogue ("/{sourceKey}/visualizations/{id}").
// A literal segment only matches itself; a {param} segment matches any single
// segment. When several templates match, the one with the most literal
// segments wins, so "/s1/visualizations/tree" resolves to the tree endpoint
// rather than to "/{sourceKey}/visualizations/{id}".
func FindPathItem(path string) (string, *openapi3.PathItem, error) {
	doc, err := loadOpenAPIDocOnce()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	segments := splitPath(path)

	var (
		bestTemplate string
		bestItem     *openapi3.PathItem
		bestScore    = -1
	)
	for template, item := range doc.Paths.Map() {
		score, ok := matchTemplate(splitPath(template), segments)
		if ok && score > bestScore {
			bestTemplate = template
			bestItem = item
			bestScore = score
		}
	}
	if bestItem == nil {
		return "", nil, fmt.Errorf("path %q not found in OpenAPI schema", path)
	}
	return bestTemplate, bestItem, nil
}

// DescribePath returns a human-readable summary of the operations declared
// for the given concrete path.
func DescribePath(path string) (string, error) {
	template, item, err := FindPathItem(path)
	if err != nil {
		return "", err
	}
	var lines []string
	for verb, op := range item.Operations() {
		line := fmt.Sprintf("  %s %s", verb, template)
		if op.Summary != "" {
			line += " - " + op.Summary
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return fmt.Sprintf("operations available on %s:\n%s", template, strings.Join(lines, "\n")), nil
}

// ListPaths returns the sorted path templates of the catalogue.
func ListPaths() ([]string, error) {
	doc, err := loadOpenAPIDocOnce()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	var paths []string
	for path := range doc.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// GetComponentSchema retrieves a named schema from the components section.
func GetComponentSchema(name string) (*openapi3.SchemaRef, error) {
	doc, err := loadOpenAPIDocOnce()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("OpenAPI document has no components defined")
	}
	schemaRef, ok := doc.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %q not found in OpenAPI components", name)
	}
	return schemaRef, nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// matchTemplate reports whether the concrete segments satisfy the template
// segments, and how many template segments are literal matches.
func matchTemplate(template, concrete []string) (int, bool) {
	if len(template) != len(concrete) {
		return 0, false
	}
	score := 0
	for i, seg := range template {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			continue
		}
		if seg != concrete[i] {
			return 0, false
		}
		score++
	}
	return score, true
}
