package openapi_schema

import (
	"strings"
	"testing"
)

func TestFindPathItem(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantTemplate string
		wantErr      bool
	}{
		{
			name:         "literal path",
			path:         "/status",
			wantTemplate: "/status",
		},
		{
			name:         "templated source key",
			path:         "/s1/graph/run/query",
			wantTemplate: "/{sourceKey}/graph/run/query",
		},
		{
			name:         "visualization by id",
			path:         "/s1/visualizations/5",
			wantTemplate: "/{sourceKey}/visualizations/{id}",
		},
		{
			name:         "tree wins over id template",
			path:         "/s1/visualizations/tree",
			wantTemplate: "/{sourceKey}/visualizations/tree",
		},
		{
			name:         "share path",
			path:         "/s1/visualizations/5/share/9",
			wantTemplate: "/{sourceKey}/visualizations/{id}/share/{userId}",
		},
		{
			name:         "groups under admin",
			path:         "/admin/s1/groups",
			wantTemplate: "/admin/{sourceKey}/groups",
		},
		{
			name:         "path without leading slash",
			path:         "users",
			wantTemplate: "/users",
		},
		{
			name:    "unknown path",
			path:    "/definitely/not/an/endpoint",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, item, err := FindPathItem(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindPathItem() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if template != tt.wantTemplate {
				t.Errorf("FindPathItem() template = %q, want %q", template, tt.wantTemplate)
			}
			if item == nil {
				t.Error("FindPathItem() item = nil")
			}
		})
	}
}

func TestDescribePath(t *testing.T) {
	hint, err := DescribePath("/s1/visualizations/5")
	if err != nil {
		t.Fatalf("DescribePath() error = %v", err)
	}
	for _, want := range []string{"GET", "PATCH", "DELETE", "/{sourceKey}/visualizations/{id}"} {
		if !strings.Contains(hint, want) {
			t.Errorf("DescribePath() missing %q:\n%s", want, hint)
		}
	}
}

func TestListPaths(t *testing.T) {
	paths, err := ListPaths()
	if err != nil {
		t.Fatalf("ListPaths() error = %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("ListPaths() returned no paths")
	}
	found := false
	for _, p := range paths {
		if p == "/auth/login" {
			found = true
			break
		}
	}
	if !found {
		t.Error("ListPaths() missing /auth/login")
	}
}

func TestGetComponentSchema(t *testing.T) {
	schema, err := GetComponentSchema("LoginRequest")
	if err != nil {
		t.Fatalf("GetComponentSchema() error = %v", err)
	}
	if schema == nil || schema.Value == nil {
		t.Fatal("GetComponentSchema() returned nil schema")
	}
	if _, ok := schema.Value.Properties["usernameOrEmail"]; !ok {
		t.Error("LoginRequest schema missing usernameOrEmail property")
	}

	if _, err = GetComponentSchema("NoSuchSchema"); err == nil {
		t.Error("GetComponentSchema() expected error for unknown schema")
	}
}
