package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/hydradoc/hydra"
	vocab "github.com/c360studio/hydradoc/vocabulary/hydra"
)

// IRI is a resource identifier object.
type IRI string

// BlankNode is a document-local node label, without the "_:" prefix.
type BlankNode string

// Triple represents a semantic triple for export. Predicate is either a
// registered vocabulary predicate or rdf:type.
type Triple struct {
	Subject   any
	Predicate string
	Object    any
}

// predicateType is the pseudo predicate for type assertions.
const predicateType = "rdf.type"

// flattener turns a serialized documentation into triples with blank node
// labels assigned in traversal order.
type flattener struct {
	prefixes map[string]string
	triples  []Triple
	next     int
}

// Flatten converts a serialized documentation into triples. The output is
// a pure function of its input.
func Flatten(doc *hydra.APIDocumentation) []Triple {
	f := &flattener{prefixes: documentPrefixes(doc)}

	root := IRI(doc.ID)
	f.add(root, predicateType, IRI(vocab.ClassAPIDocumentation))
	f.add(root, vocab.DocTitle, doc.Title)
	if doc.Description != "" {
		f.add(root, vocab.DocDescription, doc.Description)
	}
	if doc.EntryPoint != "" {
		f.add(root, vocab.DocEntrypoint, IRI(doc.EntryPoint))
	}
	for _, c := range doc.SupportedClass {
		f.add(root, vocab.ClassSupportedClass, f.iri(c.ID))
	}
	for _, s := range doc.PossibleStatus {
		status := f.blank()
		f.add(root, vocab.DocPossibleStatus, status)
		f.add(status, predicateType, IRI(vocab.ClassStatus))
		f.add(status, vocab.StatusCode, s.StatusCode)
		f.add(status, vocab.DocDescription, s.Description)
	}
	for _, c := range doc.SupportedClass {
		f.class(c)
	}
	return f.triples
}

func (f *flattener) class(c hydra.ClassNode) {
	subject := f.iri(c.ID)
	f.add(subject, predicateType, f.iri(c.Type))
	f.add(subject, vocab.DocTitle, c.Title)
	if c.Description != "" {
		f.add(subject, vocab.DocDescription, c.Description)
	}
	if c.SubClassOf != "" {
		f.add(subject, vocab.ClassSubClassOf, f.iri(c.SubClassOf))
	}
	for _, p := range c.SupportedProperty {
		node := f.blank()
		f.add(subject, vocab.ClassSupportedProperty, node)
		f.property(node, p)
	}
	for _, o := range c.SupportedOperation {
		node := f.blank()
		f.add(subject, vocab.ClassSupportedOperation, node)
		f.operation(node, o)
	}
}

func (f *flattener) property(node BlankNode, p hydra.PropertyNode) {
	f.add(node, predicateType, f.iri(p.Type))
	if link := p.Property.Link; link != nil {
		target := f.iri(link.ID)
		f.add(node, vocab.PropertyProperty, target)
		f.add(target, predicateType, f.iri(link.Type))
		f.add(target, vocab.DocLabel, link.Label)
		f.add(target, vocab.DocDescription, link.Description)
		f.add(target, vocab.PropertyDomain, f.iri(link.Domain))
		f.add(target, vocab.PropertyRange, f.iri(link.Range))
		f.add(target, vocab.LinkTarget, IRI(link.Target))
		for _, o := range link.SupportedOperation {
			op := f.blank()
			f.add(target, vocab.ClassSupportedOperation, op)
			f.operation(op, o)
		}
	} else {
		f.add(node, vocab.PropertyProperty, f.iri(p.Property.IRI))
	}
	f.add(node, vocab.DocTitle, p.Title)
	f.add(node, vocab.PropertyReadable, p.Readable)
	f.add(node, vocab.PropertyWritable, p.Writable)
	f.add(node, vocab.PropertyRequired, p.Required)
}

func (f *flattener) operation(node BlankNode, o hydra.OperationNode) {
	f.add(node, predicateType, f.iri(o.Type))
	f.add(node, vocab.DocTitle, o.Title)
	f.add(node, vocab.OperationMethod, o.Method)
	if o.Expects != nil {
		f.add(node, vocab.OperationExpects, f.iri(*o.Expects))
	}
	if o.Returns != nil {
		f.add(node, vocab.OperationReturns, f.iri(*o.Returns))
	}
	for _, s := range o.StatusCodes {
		status := f.blank()
		f.add(node, vocab.OperationStatusCodes, status)
		f.add(status, vocab.StatusCode, s.StatusCode)
		f.add(status, vocab.DocDescription, s.Description)
	}
}

func (f *flattener) add(subject any, predicate string, object any) {
	f.triples = append(f.triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

func (f *flattener) blank() BlankNode {
	node := BlankNode(fmt.Sprintf("b%d", f.next))
	f.next++
	return node
}

// iri expands compact IRIs using the document prefixes.
func (f *flattener) iri(compact string) IRI {
	return IRI(expandIRI(f.prefixes, compact))
}

// documentPrefixes returns the string-valued prefixes of the document
// context.
func documentPrefixes(doc *hydra.APIDocumentation) map[string]string {
	prefixes := map[string]string{
		"hydra": vocab.Namespace,
		"rdf":   vocab.RDFNamespace,
		"rdfs":  vocab.RDFSNamespace,
		"xsd":   vocab.XSDNamespace,
		"vocab": doc.ID + "#",
	}
	for _, name := range []string{"hydra", "rdf", "rdfs", "xsd", "vocab"} {
		if v, ok := doc.Context[name].(string); ok {
			prefixes[name] = v
		}
	}
	return prefixes
}

func expandIRI(prefixes map[string]string, compact string) string {
	prefix, local, ok := strings.Cut(compact, ":")
	if !ok {
		return compact
	}
	if ns, known := prefixes[prefix]; known && !strings.HasPrefix(local, "//") {
		return ns + local
	}
	return compact
}

// predicateIRI resolves a predicate through the vocabulary registry.
func predicateIRI(predicate string) string {
	if predicate == predicateType {
		return vocab.RDFType
	}
	return vocab.GetPredicateIRI(predicate)
}

// toTurtle serializes triples to Turtle, grouping by subject in order of
// first appearance.
func toTurtle(triples []Triple) string {
	w := NewTurtleWriter()
	w.WritePrefixes()

	var order []any
	grouped := make(map[any][]Triple)
	for _, t := range triples {
		if _, seen := grouped[t.Subject]; !seen {
			order = append(order, t.Subject)
		}
		grouped[t.Subject] = append(grouped[t.Subject], t)
	}

	for _, subject := range order {
		group := grouped[subject]
		w.WriteSubject(formatTerm(subject))
		for i, t := range group {
			w.WritePredicate(predicateIRI(t.Predicate), t.Object, i == len(group)-1)
		}
		w.WriteBlank()
	}
	return w.String()
}

// toNTriples serializes triples to N-Triples.
func toNTriples(triples []Triple) string {
	w := NewNTriplesWriter()
	for _, t := range triples {
		w.WriteTriple(formatTerm(t.Subject), predicateIRI(t.Predicate), t.Object)
	}
	return w.String()
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a new Turtle writer with default prefixes.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: map[string]string{
			"hydra": vocab.Namespace,
			"rdf":   vocab.RDFNamespace,
			"rdfs":  vocab.RDFSNamespace,
			"xsd":   vocab.XSDNamespace,
		},
	}
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(term string) {
	w.sb.WriteString(term + "\n")
}

// WritePredicate writes a predicate-object pair.
func (w *TurtleWriter) WritePredicate(predicateIRI string, object any, last bool) {
	terminator := " ;"
	if last {
		terminator = " ."
	}
	w.sb.WriteString(fmt.Sprintf("    <%s> %s%s\n", predicateIRI, formatObject(object), terminator))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(subject, predicate string, object any) {
	w.sb.WriteString(fmt.Sprintf("%s <%s> %s .\n", subject, predicate, formatObjectNTriples(object)))
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

// formatTerm formats a subject term.
func formatTerm(v any) string {
	switch t := v.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", t)
	case BlankNode:
		return "_:" + string(t)
	default:
		return fmt.Sprintf("<%v>", t)
	}
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case IRI, BlankNode:
		return formatTerm(v)
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case IRI, BlankNode:
		return formatTerm(v)
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int:
		return fmt.Sprintf("\"%d\"^^<%sinteger>", v, vocab.XSDNamespace)
	case bool:
		return fmt.Sprintf("\"%t\"^^<%sboolean>", v, vocab.XSDNamespace)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
