// Package generator turns configuration into rendered API documentation:
// it loads the schema, builds the hydra document, exports it, writes the
// output and optionally publishes it to NATS KV.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/c360studio/hydradoc/config"
	"github.com/c360studio/hydradoc/drone"
	"github.com/c360studio/hydradoc/export"
	"github.com/c360studio/hydradoc/hydra"
	"github.com/c360studio/hydradoc/schema"
	"github.com/c360studio/hydradoc/storage"
)

// Publisher stores rendered documentation.
type Publisher interface {
	Publish(ctx context.Context, api, format string, content []byte) (*storage.Record, error)
}

// Result describes one generation run.
type Result struct {
	Document *hydra.Document
	Format   export.Format
	Output   []byte
	// Path is the written file, empty when output went to the writer.
	Path   string
	Record *storage.Record
	// Warnings are non-fatal problems such as an entry point without links.
	Warnings []error
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithPublisher publishes every rendered document.
func WithPublisher(p Publisher) Option {
	return func(g *Generator) { g.publisher = p }
}

// WithMetrics records runs in m.
func WithMetrics(m *Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithOutput sets the writer used when no output path is configured.
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.stdout = w }
}

// Generator renders documentation from a configuration.
type Generator struct {
	cfg       *config.Config
	format    export.Format
	exporter  *export.Exporter
	publisher Publisher
	metrics   *Metrics
	stdout    io.Writer
	logger    *slog.Logger
}

// New creates a generator for cfg.
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:    cfg,
		format: format,
		exporter: export.NewExporter(export.Options{
			PythonVariable: cfg.Output.PythonVariable,
			GoPackage:      cfg.Output.GoPackage,
			GoConstant:     cfg.Output.GoConstant,
		}),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.metrics == nil {
		g.metrics = NewMetrics(nil)
	}
	return g, nil
}

// Build loads the configured schema and returns the finalized document.
// An entry point without links is reported as a warning.
func (g *Generator) Build() (*hydra.Document, []error, error) {
	docOpts := []hydra.DocumentOption{hydra.WithLogger(g.logger)}

	if len(g.cfg.Schema.Paths) == 0 {
		api := firstNonEmpty(g.cfg.Doc.API, drone.DefaultAPI)
		baseURL := firstNonEmpty(g.cfg.Doc.BaseURL, drone.DefaultBaseURL)
		if g.cfg.Doc.Title != "" || g.cfg.Doc.Description != "" {
			g.logger.Debug("Title overrides do not apply to the builtin schema", "builtin", g.cfg.Schema.Builtin)
		}
		doc, err := drone.ServerDoc(api, baseURL, docOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("build builtin %s schema: %w", g.cfg.Schema.Builtin, err)
		}
		return doc, nil, nil
	}

	s, err := schema.LoadGlob(g.cfg.Schema.Paths...)
	if err != nil {
		return nil, nil, err
	}
	g.applyOverrides(s)

	doc, err := s.Build(docOpts...)
	if errors.Is(err, hydra.ErrEmptyEntryPoint) {
		return doc, []error{err}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return doc, nil, nil
}

// Run builds, renders and writes the documentation.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := g.run(ctx)
	g.metrics.duration.Observe(time.Since(start).Seconds())

	if err != nil {
		g.metrics.runs.WithLabelValues(string(g.format), "error").Inc()
		g.logger.Error("Generation failed", "format", g.format, "error", err)
		return nil, err
	}
	g.metrics.runs.WithLabelValues(string(g.format), "success").Inc()
	return res, nil
}

func (g *Generator) run(ctx context.Context) (*Result, error) {
	doc, warnings, err := g.Build()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		g.logger.Warn("Documentation generated with warnings", "warning", w)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("validate documentation: %w", err)
	}

	out, err := g.exporter.Export(doc, g.format)
	if err != nil {
		return nil, err
	}

	res := &Result{Document: doc, Format: g.format, Output: out, Warnings: warnings}
	g.metrics.classes.Set(float64(len(doc.Classes())))
	g.metrics.links.Set(float64(len(doc.Links())))

	if res.Path, err = g.write(out); err != nil {
		return nil, err
	}

	if g.publisher != nil {
		rec, err := g.publisher.Publish(ctx, doc.APIID(), string(g.format), out)
		if err != nil {
			return nil, fmt.Errorf("publish documentation: %w", err)
		}
		res.Record = rec
		g.metrics.published.Inc()
		g.logger.Info("Published documentation", "key", rec.Key(), "revision", rec.Revision)
	}

	g.logger.Info("Generated documentation",
		"api", doc.APIID(),
		"format", g.format,
		"classes", len(doc.Classes()),
		"links", len(doc.Links()),
		"path", res.Path)
	return res, nil
}

// write stores out at the configured path, replacing any previous file
// atomically. Without a path it goes to the output writer.
func (g *Generator) write(out []byte) (string, error) {
	path := g.cfg.Output.Path
	if path == "" || path == "-" {
		if _, err := g.stdout.Write(out); err != nil {
			return "", fmt.Errorf("write output: %w", err)
		}
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("replace output: %w", err)
	}
	return path, nil
}

func (g *Generator) applyOverrides(s *schema.Schema) {
	d := g.cfg.Doc
	s.Merge(&schema.Schema{API: d.API, BaseURL: d.BaseURL, Title: d.Title, Description: d.Description})
}

// SchemaPatterns returns the configured schema globs.
func (g *Generator) SchemaPatterns() []string {
	return g.cfg.Schema.Paths
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
