// Package testsupport holds shared fixtures and helpers for kroviz tests.
package testsupport

import (
	"context"
	"embed"
	"path"
	"testing"

	"github.com/goliatone/go-kroviz/pkg/layout"
	"github.com/goliatone/go-kroviz/pkg/ro"
)

// Fixture names shipped with the package.
const (
	ObjectFixture     = "object.json"
	MenubarsFixture   = "menubars.json"
	ListResultFixture = "action_result_list.json"
	LayoutJSON        = "layout.json"
	LayoutXML         = "layout.xml"
	LayoutYAML        = "layout.yaml"
)

//go:embed testdata
var fixtures embed.FS

// MustFixture returns the raw bytes of a shared fixture.
func MustFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := fixtures.ReadFile(path.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// MustObject decodes the sample domain object.
func MustObject(t *testing.T) ro.DomainObject {
	t.Helper()

	obj, err := ro.ParseObject(MustFixture(t, ObjectFixture))
	if err != nil {
		t.Fatalf("parse object fixture: %v", err)
	}
	return obj
}

// MustMenubars decodes the sample menu bars.
func MustMenubars(t *testing.T) ro.Menubars {
	t.Helper()

	bars, err := ro.ParseMenubars(MustFixture(t, MenubarsFixture))
	if err != nil {
		t.Fatalf("parse menubars fixture: %v", err)
	}
	return bars
}

// MustGrid parses one of the layout fixtures.
func MustGrid(t *testing.T, name string) layout.Grid {
	t.Helper()

	grid, err := layout.Parse(MustFixture(t, name))
	if err != nil {
		t.Fatalf("parse layout fixture %s: %v", name, err)
	}
	return grid
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
