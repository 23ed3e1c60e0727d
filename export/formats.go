// Package export renders generated API documentation in several formats.
package export

import (
	"fmt"
	"sort"
	"strings"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"

	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatPython produces a Python module assigning the documentation to
	// a variable, with booleans and null written as quoted sentinels.
	FormatPython Format = "python"

	// FormatGo produces a Go source file holding the JSON-LD as a constant.
	FormatGo Format = "go"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatPython: {
		Name:        FormatPython,
		MIMEType:    "text/x-python",
		Extension:   ".py",
		Description: "Python module with the documentation as a dict literal",
	},
	FormatGo: {
		Name:        FormatGo,
		MIMEType:    "text/x-go",
		Extension:   ".go",
		Description: "Go source file with the documentation as a string constant",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name or common alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jsonld", "json-ld", "json":
		return FormatJSONLD, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt":
		return FormatNTriples, nil
	case "python", "py":
		return FormatPython, nil
	case "go", "golang":
		return FormatGo, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (valid: %s)", name, strings.Join(FormatNames(), ", "))
	}
}

// FormatNames returns the canonical format names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
