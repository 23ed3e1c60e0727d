package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/c360studio/hydradoc/hydra"
	"github.com/dave/jennifer/jen"
)

// Options tune format specific output.
type Options struct {
	// Indent is the JSON indentation. Defaults to two spaces.
	Indent string

	// PythonVariable names the variable of the python format.
	PythonVariable string

	// PythonDocstring is the module docstring of the python format.
	PythonDocstring string

	// GoPackage is the package clause of the go format.
	GoPackage string

	// GoConstant names the constant of the go format.
	GoConstant string
}

// DefaultOptions returns the options used when none are set.
func DefaultOptions() Options {
	return Options{
		Indent:          "  ",
		PythonVariable:  "server_doc",
		PythonDocstring: "Generated API Documentation for Server API.",
		GoPackage:       "apidoc",
		GoConstant:      "ServerDoc",
	}
}

// Exporter renders documents in the supported formats.
type Exporter struct {
	opts Options
}

// NewExporter creates an exporter. Zero option fields take their defaults.
func NewExporter(opts Options) *Exporter {
	def := DefaultOptions()
	if opts.Indent == "" {
		opts.Indent = def.Indent
	}
	if opts.PythonVariable == "" {
		opts.PythonVariable = def.PythonVariable
	}
	if opts.PythonDocstring == "" {
		opts.PythonDocstring = def.PythonDocstring
	}
	if opts.GoPackage == "" {
		opts.GoPackage = def.GoPackage
	}
	if opts.GoConstant == "" {
		opts.GoConstant = def.GoConstant
	}
	return &Exporter{opts: opts}
}

// Export serializes the document to the specified format.
func (e *Exporter) Export(doc *hydra.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSONLD:
		return e.toJSONLD(doc.Generate())
	case FormatTurtle:
		return []byte(toTurtle(Flatten(doc.Generate()))), nil
	case FormatNTriples:
		return []byte(toNTriples(Flatten(doc.Generate()))), nil
	case FormatPython:
		return e.toPython(doc.Generate())
	case FormatGo:
		return e.toGo(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// toJSONLD writes indented JSON without HTML escaping.
func (e *Exporter) toJSONLD(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", e.opts.Indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json-ld: %w", err)
	}
	return buf.Bytes(), nil
}

// toPython writes the documentation as a module level dict literal. Keys
// are sorted and booleans and null become the quoted sentinels "true",
// "false" and "null". Only values are substituted, never text inside
// strings.
func (e *Exporter) toPython(out *hydra.APIDocumentation) ([]byte, error) {
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode documentation: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode documentation: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(sentinelize(generic)); err != nil {
		return nil, fmt.Errorf("encode python literal: %w", err)
	}

	var sb bytes.Buffer
	fmt.Fprintf(&sb, "\"\"\"%s\"\"\"\n\n%s = %s", e.opts.PythonDocstring, e.opts.PythonVariable, buf.String())
	return sb.Bytes(), nil
}

// sentinelize replaces booleans and null with their string spellings.
func sentinelize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = sentinelize(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = sentinelize(item)
		}
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	default:
		return val
	}
}

// toGo renders a Go source file exposing the JSON-LD documentation.
func (e *Exporter) toGo(doc *hydra.Document) ([]byte, error) {
	raw, err := json.Marshal(doc.Generate())
	if err != nil {
		return nil, fmt.Errorf("encode documentation: %w", err)
	}

	f := jen.NewFile(e.opts.GoPackage)
	f.HeaderComment("Code generated by hydradoc. DO NOT EDIT.")
	f.Commentf("%s is the JSON-LD documentation of the %s API.", e.opts.GoConstant, doc.APIID())
	f.Const().Id(e.opts.GoConstant).Op("=").Lit(string(raw))
	f.Line()
	f.Commentf("%sEntryPoint is the URL of the %s API entry point.", e.opts.GoConstant, doc.APIID())
	f.Const().Id(e.opts.GoConstant + "EntryPoint").Op("=").Lit(doc.EntryPointURL())

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render go source: %w", err)
	}
	return buf.Bytes(), nil
}
