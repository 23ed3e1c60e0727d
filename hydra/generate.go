package hydra

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	vocab "github.com/c360studio/hydradoc/vocabulary/hydra"
)

// APIDocumentation is the serialized form of a Document. Field order is
// fixed, so marshaling it is deterministic.
type APIDocumentation struct {
	Context        map[string]any `json:"@context"`
	ID             string         `json:"@id"`
	Type           string         `json:"@type"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	EntryPoint     string         `json:"entrypoint,omitempty"`
	SupportedClass []ClassNode    `json:"supportedClass"`
	PossibleStatus []StatusNode   `json:"possibleStatus"`
}

// ClassNode is a serialized class.
type ClassNode struct {
	ID                 string          `json:"@id"`
	Type               string          `json:"@type"`
	SubClassOf         string          `json:"subClassOf,omitempty"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	SupportedProperty  []PropertyNode  `json:"supportedProperty"`
	SupportedOperation []OperationNode `json:"supportedOperation"`
}

// PropertyNode is a serialized supported property. Property is the IRI of
// the described term, or a link definition for entry point links.
type PropertyNode struct {
	Type     string      `json:"@type"`
	Property PropertyRef `json:"property"`
	Title    string      `json:"title"`
	Readable bool        `json:"readable"`
	Writable bool        `json:"writable"`
	Required bool        `json:"required"`
}

// PropertyRef is either a plain IRI or an inline link definition.
type PropertyRef struct {
	IRI  string
	Link *LinkNode
}

// MarshalJSON encodes the reference as a string or as the link object.
func (r PropertyRef) MarshalJSON() ([]byte, error) {
	if r.Link != nil {
		return json.Marshal(r.Link)
	}
	return json.Marshal(r.IRI)
}

// UnmarshalJSON accepts either encoding produced by MarshalJSON.
func (r *PropertyRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		r.Link = &LinkNode{}
		return json.Unmarshal(data, r.Link)
	}
	return json.Unmarshal(data, &r.IRI)
}

// LinkNode defines an entry point link property.
type LinkNode struct {
	ID                 string          `json:"@id"`
	Type               string          `json:"@type"`
	Label              string          `json:"label"`
	Description        string          `json:"description"`
	Domain             string          `json:"domain"`
	Range              string          `json:"range"`
	Target             string          `json:"target"`
	SupportedOperation []OperationNode `json:"supportedOperation"`
}

// OperationNode is a serialized operation. Absent bodies encode as null.
type OperationNode struct {
	ID          string       `json:"@id,omitempty"`
	Type        string       `json:"@type"`
	Title       string       `json:"title"`
	Method      string       `json:"method"`
	Expects     *string      `json:"expects"`
	Returns     *string      `json:"returns"`
	StatusCodes []StatusNode `json:"statusCodes"`
}

// StatusNode is a serialized operation outcome.
type StatusNode struct {
	StatusCode  int    `json:"statusCode"`
	Description string `json:"description"`
}

// Generate serializes the documentation. It does not modify the document
// and returns equal output for equal input.
func (d *Document) Generate() *APIDocumentation {
	classes := d.orderedClasses()
	out := &APIDocumentation{
		Context:        d.Context(),
		ID:             d.ID(),
		Type:           "ApiDocumentation",
		Title:          d.title,
		Description:    d.description,
		SupportedClass: make([]ClassNode, 0, len(classes)),
	}
	if d.entryPoint != nil {
		out.EntryPoint = d.EntryPointURL()
	}

	for _, c := range classes {
		if c == d.entryPoint {
			out.SupportedClass = append(out.SupportedClass, d.entryPointNode())
			continue
		}
		out.SupportedClass = append(out.SupportedClass, classNode(c))
	}
	out.PossibleStatus = possibleStatus(classes)
	return out
}

// MarshalJSON returns the JSON-LD encoding of the documentation.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Generate())
}

// Validate reports operations whose expects or returns reference a class
// the document does not describe. Hydra core classes are always known.
func (d *Document) Validate() error {
	var errs []error
	for _, c := range d.orderedClasses() {
		for _, o := range c.operations {
			for _, ref := range []struct{ field, iri string }{{"expects", o.Expects}, {"returns", o.Returns}} {
				if ref.iri == "" || strings.HasPrefix(ref.iri, vocab.Namespace) {
					continue
				}
				if _, ok := d.iris[ref.iri]; ok || ref.iri == EntryPointIRI {
					continue
				}
				errs = append(errs, fmt.Errorf("%w: %s operation %q %s %s",
					ErrDanglingReference, c.iri, o.Title, ref.field, ref.iri))
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Document) entryPointNode() ClassNode {
	node := classNode(d.entryPoint)
	node.SupportedProperty = make([]PropertyNode, 0, len(d.links))
	for _, l := range d.links {
		ops := make([]OperationNode, 0, len(l.Operations))
		for _, o := range l.Operations {
			ops = append(ops, operationNode(o))
		}
		node.SupportedProperty = append(node.SupportedProperty, PropertyNode{
			Type: compactIRI(vocab.TypeSupportedProperty),
			Property: PropertyRef{Link: &LinkNode{
				ID:                 l.IRI,
				Type:               compactIRI(vocab.ClassLink),
				Label:              l.Path,
				Description:        linkDescription(l),
				Domain:             EntryPointIRI,
				Range:              compactIRI(l.Range),
				Target:             l.Target,
				SupportedOperation: ops,
			}},
			Title:    l.Name,
			Readable: true,
		})
	}
	return node
}

func classNode(c *Class) ClassNode {
	node := ClassNode{
		ID:                 compactIRI(c.iri),
		Type:               compactIRI(vocab.ClassClass),
		SubClassOf:         compactIRI(c.subClassOf),
		Title:              c.title,
		Description:        c.description,
		SupportedProperty:  make([]PropertyNode, 0, len(c.properties)),
		SupportedOperation: make([]OperationNode, 0, len(c.operations)),
	}
	for _, p := range c.properties {
		node.SupportedProperty = append(node.SupportedProperty, PropertyNode{
			Type:     compactIRI(vocab.TypeSupportedProperty),
			Property: PropertyRef{IRI: compactIRI(p.IRI)},
			Title:    p.Title,
			Readable: p.Readable,
			Writable: p.Writable,
			Required: p.Required(),
		})
	}
	for _, o := range c.operations {
		node.SupportedOperation = append(node.SupportedOperation, operationNode(o))
	}
	return node
}

func operationNode(o Operation) OperationNode {
	node := OperationNode{
		ID:          o.ID,
		Type:        compactIRI(o.RDFType()),
		Title:       o.Title,
		Method:      o.Method,
		Expects:     optionalIRI(o.Expects),
		Returns:     optionalIRI(o.Returns),
		StatusCodes: make([]StatusNode, 0, len(o.Statuses)),
	}
	for _, s := range o.Statuses {
		node.StatusCodes = append(node.StatusCodes, StatusNode{StatusCode: s.Code, Description: s.Description})
	}
	return node
}

func optionalIRI(iri string) *string {
	if iri == "" {
		return nil
	}
	iri = compactIRI(iri)
	return &iri
}

// possibleStatus collects every distinct outcome, ordered by code and then
// description.
func possibleStatus(classes []*Class) []StatusNode {
	seen := make(map[StatusNode]struct{})
	out := make([]StatusNode, 0)
	for _, c := range classes {
		for _, o := range c.operations {
			for _, s := range o.Statuses {
				node := StatusNode{StatusCode: s.Code, Description: s.Description}
				if _, ok := seen[node]; ok {
					continue
				}
				seen[node] = struct{}{}
				out = append(out, node)
			}
		}
	}
	slices.SortFunc(out, func(a, b StatusNode) int {
		return cmp.Or(cmp.Compare(a.StatusCode, b.StatusCode), strings.Compare(a.Description, b.Description))
	})
	return out
}
