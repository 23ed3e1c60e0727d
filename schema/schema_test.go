package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/hydradoc/drone"
	"github.com/c360studio/hydradoc/hydra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMatchesDroneServerDoc(t *testing.T) {
	s, err := LoadFile("testdata/drone.yaml")
	require.NoError(t, err)
	assert.Len(t, s.Classes, 7)

	fromYAML, err := s.Build()
	require.NoError(t, err)
	fromGo, err := drone.ServerDoc("serverapi", "http://localhost/")
	require.NoError(t, err)

	want, err := json.MarshalIndent(fromGo, "", "  ")
	require.NoError(t, err)
	got, err := json.MarshalIndent(fromYAML, "", "  ")
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, string(want), string(got))
}

func TestLoadGlobMergesInPathOrder(t *testing.T) {
	s, err := LoadGlob("testdata/split/**/*.yaml")
	require.NoError(t, err)

	assert.Equal(t, "fleet", s.API)
	assert.Equal(t, "http://fleet.example/", s.BaseURL)
	require.Len(t, s.Classes, 2)
	assert.Equal(t, "Drone", s.Classes[0].Title)
	assert.Equal(t, "Area", s.Classes[1].Title)

	doc, err := s.Build()
	require.NoError(t, err)
	links := doc.Links()
	require.Len(t, links, 2)
	assert.Equal(t, "http://fleet.example/fleet/DroneCollection", links[0].Target)
	assert.Equal(t, "http://fleet.example/fleet/Area", links[1].Target)
}

func TestResolvePaths(t *testing.T) {
	t.Run("deduplicates overlapping patterns", func(t *testing.T) {
		paths, err := ResolvePaths("testdata/split/*.yaml", "testdata/split/**/*.yaml")
		require.NoError(t, err)
		assert.Len(t, paths, 3)
		for _, p := range paths {
			assert.True(t, filepath.IsAbs(p))
		}
	})

	t.Run("no matches", func(t *testing.T) {
		_, err := ResolvePaths("testdata/nothing/*.yaml")
		require.Error(t, err)
	})
}

func TestBuildRejectsDuplicateClass(t *testing.T) {
	s, err := LoadFile("testdata/duplicate.yaml")
	require.NoError(t, err)

	_, err = s.Build()
	require.ErrorIs(t, err, hydra.ErrDuplicateClassIRI)
	assert.Contains(t, err.Error(), "class 1 (A)")
}

func TestBuildEmptyEntryPoint(t *testing.T) {
	s := &Schema{
		API:     "bare",
		BaseURL: "http://localhost/",
		Title:   "Bare",
		Classes: []ClassSpec{{IRI: "http://x.example/Thing", Title: "Thing"}},
	}

	doc, err := s.Build()
	require.ErrorIs(t, err, hydra.ErrEmptyEntryPoint)
	require.NotNil(t, doc)
	assert.Equal(t, hydra.StateFinalized, doc.State())
}

func TestBuildInvalidDescriptors(t *testing.T) {
	tests := []struct {
		name  string
		class ClassSpec
	}{
		{"class without title", ClassSpec{IRI: "http://x.example/A"}},
		{"property without iri", ClassSpec{IRI: "http://x.example/A", Title: "A",
			Properties: []PropertySpec{{Title: "p"}}}},
		{"operation with bad method", ClassSpec{IRI: "http://x.example/A", Title: "A",
			Operations: []OperationSpec{{Title: "op", Method: "FETCH"}}}},
		{"operation with bad status", ClassSpec{IRI: "http://x.example/A", Title: "A",
			Operations: []OperationSpec{{Title: "op", Method: "GET", Statuses: []StatusSpec{{Code: 7}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{API: "x", BaseURL: "http://localhost/", Title: "X", Classes: []ClassSpec{tt.class}}
			_, err := s.Build()
			require.ErrorIs(t, err, hydra.ErrInvalidDescriptor)
		})
	}
}

func TestBuildEntryPointOverride(t *testing.T) {
	s := &Schema{
		API:        "serverapi",
		BaseURL:    "http://localhost/",
		Title:      "T",
		EntryPoint: "api",
		Classes:    []ClassSpec{{IRI: "http://x.example/A", Title: "A", Endpoint: true}},
	}
	doc, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/api", doc.EntryPointURL())
	assert.Equal(t, "http://localhost/api/A", doc.Links()[0].Target)
}

func TestParse(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("api: x\nbogus: true\n"))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		s, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, s.Classes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestMerge(t *testing.T) {
	base := &Schema{API: "a", Title: "A", Classes: []ClassSpec{{Title: "One"}}}
	base.Merge(&Schema{Title: "B", Classes: []ClassSpec{{Title: "Two"}}})
	base.Merge(nil)

	assert.Equal(t, "a", base.API)
	assert.Equal(t, "B", base.Title)
	require.Len(t, base.Classes, 2)
	assert.Equal(t, "Two", base.Classes[1].Title)
}

func TestBuildSubClassOf(t *testing.T) {
	s, err := Parse([]byte(`api: fleet
base_url: http://fleet.example/
title: Fleet
classes:
  - iri: http://fleet.example/Drone
    title: Drone
    endpoint: true
  - iri: http://fleet.example/Quadcopter
    title: Quadcopter
    sub_class_of: http://fleet.example/Drone
    endpoint: true
  - iri: http://fleet.example/Rover
    title: Rover
    sub_class_of: Vehicle
`))
	require.NoError(t, err)

	doc, err := s.Build()
	require.NoError(t, err)
	quad, ok := doc.Class("http://fleet.example/Quadcopter")
	require.True(t, ok)
	assert.Equal(t, "http://fleet.example/Drone", quad.SubClassOf())
	rover, ok := doc.Class("http://fleet.example/Rover")
	require.True(t, ok)
	assert.Equal(t, "vocab:Vehicle", rover.SubClassOf())

	raw, err := json.Marshal(doc.Generate())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subClassOf":"http://fleet.example/Drone"`)
}
