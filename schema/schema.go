// Package schema loads declarative API descriptions from YAML and replays
// them against a hydra.Document.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/hydradoc/hydra"
	"gopkg.in/yaml.v3"
)

// Schema is the caller-supplied description of an API.
type Schema struct {
	API         string `yaml:"api"`
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// EntryPoint is the entry point path relative to the base URL.
	// Defaults to the API identifier.
	EntryPoint string      `yaml:"entrypoint,omitempty"`
	Classes    []ClassSpec `yaml:"classes"`
}

// ClassSpec describes one class and how it is registered.
type ClassSpec struct {
	IRI         string          `yaml:"iri"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	SubClassOf  string          `yaml:"sub_class_of,omitempty"`
	Endpoint    bool            `yaml:"endpoint,omitempty"`
	Collection  bool            `yaml:"collection,omitempty"`
	Properties  []PropertySpec  `yaml:"properties,omitempty"`
	Operations  []OperationSpec `yaml:"operations,omitempty"`
}

// PropertySpec describes a supported property.
type PropertySpec struct {
	IRI         string `yaml:"iri"`
	Title       string `yaml:"title"`
	Readable    bool   `yaml:"readable"`
	Writable    bool   `yaml:"writable"`
	ObjectRange bool   `yaml:"object_range,omitempty"`
}

// OperationSpec describes a supported operation.
type OperationSpec struct {
	Title    string       `yaml:"title"`
	Method   string       `yaml:"method"`
	Expects  string       `yaml:"expects,omitempty"`
	Returns  string       `yaml:"returns,omitempty"`
	Statuses []StatusSpec `yaml:"statuses,omitempty"`
}

// StatusSpec describes one operation outcome.
type StatusSpec struct {
	Code        int    `yaml:"code"`
	Description string `yaml:"description"`
}

// Parse decodes a schema document. Unknown fields are rejected.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &s, nil
}

// LoadFile reads and parses a schema file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ResolvePaths expands glob patterns (with ** support) into a sorted,
// de-duplicated list of files.
func ResolvePaths(patterns ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", m, err)
			}
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			paths = append(paths, abs)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no schema files match patterns: %v", patterns)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadGlob loads every file matching patterns and merges them in path
// order.
func LoadGlob(patterns ...string) (*Schema, error) {
	paths, err := ResolvePaths(patterns...)
	if err != nil {
		return nil, err
	}
	merged := &Schema{}
	for _, path := range paths {
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged.Merge(s)
	}
	return merged, nil
}

// Merge folds other into s. Non-empty metadata in other takes precedence
// and other's classes are appended after s's.
func (s *Schema) Merge(other *Schema) {
	if other == nil {
		return
	}
	if other.API != "" {
		s.API = other.API
	}
	if other.BaseURL != "" {
		s.BaseURL = other.BaseURL
	}
	if other.Title != "" {
		s.Title = other.Title
	}
	if other.Description != "" {
		s.Description = other.Description
	}
	if other.EntryPoint != "" {
		s.EntryPoint = other.EntryPoint
	}
	s.Classes = append(s.Classes, other.Classes...)
}

// Build registers every class in order, then adds the base classes and
// generates the entry point. When the entry point has no links the
// finalized document is returned together with hydra.ErrEmptyEntryPoint.
func (s *Schema) Build(opts ...hydra.DocumentOption) (*hydra.Document, error) {
	if s.EntryPoint != "" {
		opts = append(opts, hydra.WithEntryPoint(s.EntryPoint))
	}
	doc, err := hydra.NewDocument(s.API, s.Title, s.Description, s.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	for i, spec := range s.Classes {
		c, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("class %d (%s): %w", i, spec.Title, err)
		}
		if err := doc.AddSupportedClass(c, spec.Collection); err != nil {
			return nil, fmt.Errorf("class %d (%s): %w", i, spec.Title, err)
		}
	}

	if err := doc.AddBaseResource(); err != nil {
		return nil, err
	}
	if err := doc.AddBaseCollection(); err != nil {
		return nil, err
	}
	if err := doc.GenEntryPoint(); err != nil {
		if errors.Is(err, hydra.ErrEmptyEntryPoint) {
			return doc, err
		}
		return nil, err
	}
	return doc, nil
}

// Build constructs the class with its properties and operations.
func (c ClassSpec) Build() (*hydra.Class, error) {
	var opts []hydra.ClassOption
	if c.Endpoint {
		opts = append(opts, hydra.AsEndpoint())
	}
	if c.SubClassOf != "" {
		opts = append(opts, hydra.WithSubClassOf(c.SubClassOf))
	}
	class, err := hydra.NewClass(c.IRI, c.Title, c.Description, opts...)
	if err != nil {
		return nil, err
	}

	for i, p := range c.Properties {
		prop, err := hydra.NewProperty(p.IRI, p.Title, p.Readable, p.Writable, p.ObjectRange)
		if err != nil {
			return nil, fmt.Errorf("property %d: %w", i, err)
		}
		if err := class.AddSupportedProp(prop); err != nil {
			return nil, fmt.Errorf("property %d: %w", i, err)
		}
	}

	for i, o := range c.Operations {
		statuses := make([]hydra.Status, 0, len(o.Statuses))
		for _, st := range o.Statuses {
			statuses = append(statuses, hydra.Status{Code: st.Code, Description: st.Description})
		}
		op, err := hydra.NewOperation(o.Title, o.Method, o.Expects, o.Returns, statuses...)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		if err := class.AddSupportedOp(op); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
	}
	return class, nil
}
