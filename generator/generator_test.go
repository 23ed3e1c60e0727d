package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/hydradoc/config"
	"github.com/c360studio/hydradoc/hydra"
	"github.com/c360studio/hydradoc/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fleetSchema = `api: fleet
base_url: http://fleet.example/
title: Fleet API
description: Vehicles of the fleet
classes:
  - iri: http://fleet.example/Vehicle
    title: Vehicle
    description: A vehicle
    collection: true
    properties:
      - iri: http://schema.org/name
        title: Name
        readable: true
        writable: true
    operations:
      - title: GetVehicle
        method: GET
        returns: http://fleet.example/Vehicle
        statuses:
          - code: 200
            description: Vehicle returned
`

const danglingSchema = `api: fleet
base_url: http://fleet.example/
title: Fleet API
classes:
  - iri: http://fleet.example/Vehicle
    title: Vehicle
    description: A vehicle
    endpoint: true
    operations:
      - title: GetDriver
        method: GET
        returns: http://fleet.example/Driver
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type recordingPublisher struct {
	calls []string
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, api, format string, content []byte) (*storage.Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.calls = append(p.calls, api+"."+format)
	return &storage.Record{API: api, Format: format, Content: string(content), Revision: uint64(len(p.calls))}, nil
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "xml"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Schema.Builtin = ""
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestRunBuiltinToWriter(t *testing.T) {
	var out bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	g, err := New(config.DefaultConfig(), WithLogger(quietLogger()), WithOutput(&out), WithMetrics(metrics))
	require.NoError(t, err)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Path)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, res.Output, out.Bytes())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "http://localhost/serverapi/vocab", doc["@id"])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("jsonld", "success")))
	assert.Equal(t, 15.0, testutil.ToFloat64(metrics.classes))
	assert.Equal(t, 6.0, testutil.ToFloat64(metrics.links))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.published))
}

func TestRunBuiltinOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Doc.API = "droneapi"
	cfg.Doc.BaseURL = "http://drones.example/"

	var out bytes.Buffer
	g, err := New(cfg, WithLogger(quietLogger()), WithOutput(&out))
	require.NoError(t, err)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://drones.example/droneapi", res.Document.EntryPointURL())
}

func TestRunSchemaFilesToPath(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "api/fleet.yaml", fleetSchema)

	cfg := config.DefaultConfig()
	cfg.Schema.Builtin = ""
	cfg.Schema.Paths = []string{filepath.Join(dir, "api", "*.yaml")}
	cfg.Doc.Title = "Fleet API v2"
	cfg.Output.Path = filepath.Join(dir, "out", "fleet.ttl")
	cfg.Output.Format = "turtle"

	pub := &recordingPublisher{}
	g, err := New(cfg, WithLogger(quietLogger()), WithPublisher(pub))
	require.NoError(t, err)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Output.Path, res.Path)
	require.NotNil(t, res.Record)
	assert.Equal(t, []string{"fleet.turtle"}, pub.calls)

	written, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, res.Output, written)
	assert.Contains(t, string(written), "\"Fleet API v2\"")
	assert.Contains(t, string(written), "<http://fleet.example/VehicleCollection>")
}

func TestRunEmptyEntryPointWarns(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "empty.yaml", "api: empty\nbase_url: http://empty.example/\ntitle: Empty\n")

	cfg := config.DefaultConfig()
	cfg.Schema.Paths = []string{filepath.Join(dir, "empty.yaml")}

	var out bytes.Buffer
	g, err := New(cfg, WithLogger(quietLogger()), WithOutput(&out))
	require.NoError(t, err)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], hydra.ErrEmptyEntryPoint)
	assert.Equal(t, hydra.StateFinalized, res.Document.State())
}

func TestRunDanglingReferenceFails(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "dangling.yaml", danglingSchema)

	cfg := config.DefaultConfig()
	cfg.Schema.Paths = []string{filepath.Join(dir, "dangling.yaml")}

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	var out bytes.Buffer
	g, err := New(cfg, WithLogger(quietLogger()), WithOutput(&out), WithMetrics(metrics))
	require.NoError(t, err)

	_, err = g.Run(context.Background())
	assert.ErrorIs(t, err, hydra.ErrDanglingReference)
	assert.Empty(t, out.Bytes())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("jsonld", "error")))
}

func TestRunPublishError(t *testing.T) {
	var out bytes.Buffer
	pub := &recordingPublisher{err: errors.New("nats: no responders")}
	g, err := New(config.DefaultConfig(), WithLogger(quietLogger()), WithOutput(&out), WithPublisher(pub))
	require.NoError(t, err)

	_, err = g.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish documentation")
}

func TestRunMissingSchemaFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Schema.Paths = []string{filepath.Join(t.TempDir(), "*.yaml")}

	g, err := New(cfg, WithLogger(quietLogger()), WithOutput(io.Discard))
	require.NoError(t, err)

	_, err = g.Run(context.Background())
	assert.Error(t, err)
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) }, "duplicate registration")

	assert.NotPanics(t, func() { NewMetrics(nil) })
}
