package hydra

import (
	"slices"
	"strings"
)

// VocabPrefix is the compact prefix for terms defined by the documentation
// itself.
const VocabPrefix = "vocab:"

// Class is a vocabulary class with ordered supported properties and
// operations. Properties and operations are append-only.
type Class struct {
	iri         string
	title       string
	description string

	endpoint   bool
	subClassOf string
	properties []Property
	operations []Operation

	owner *Document
}

// ClassOption configures a class at construction.
type ClassOption func(*Class)

// AsEndpoint marks the class as directly reachable at a fixed path.
func AsEndpoint() ClassOption {
	return func(c *Class) {
		c.endpoint = true
	}
}

// WithSubClassOf records the class's superclass.
func WithSubClassOf(iri string) ClassOption {
	return func(c *Class) {
		c.subClassOf = expandIRI(iri)
	}
}

// NewClass returns a validated class. IRIs without a scheme are placed in
// the documentation's own vocabulary.
func NewClass(iri, title, description string, opts ...ClassOption) (*Class, error) {
	input := struct {
		IRI   string `validate:"required"`
		Title string `validate:"required"`
	}{IRI: iri, Title: title}
	if err := validateDescriptor("class", input); err != nil {
		return nil, err
	}

	c := &Class{
		iri:         expandIRI(iri),
		title:       title,
		description: description,
		properties:  make([]Property, 0),
		operations:  make([]Operation, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IRI returns the class identifier.
func (c *Class) IRI() string {
	return c.iri
}

// Title returns the class's human readable name.
func (c *Class) Title() string {
	return c.title
}

// Description returns the class description.
func (c *Class) Description() string {
	return c.description
}

// IsEndpoint reports whether the class is reachable without a collection.
func (c *Class) IsEndpoint() bool {
	return c.endpoint
}

// SubClassOf returns the superclass IRI, if any.
func (c *Class) SubClassOf() string {
	return c.subClassOf
}

// AddSupportedProp appends a property. The same property IRI may appear
// more than once.
func (c *Class) AddSupportedProp(p Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.IRI = expandIRI(p.IRI)
	c.properties = append(c.properties, p)
	return nil
}

// AddSupportedOp appends an operation.
func (c *Class) AddSupportedOp(o Operation) error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.Expects = expandIRI(o.Expects)
	o.Returns = expandIRI(o.Returns)
	c.operations = append(c.operations, o.clone())
	return nil
}

// Properties returns the supported properties in insertion order.
func (c *Class) Properties() []Property {
	return slices.Clone(c.properties)
}

// Operations returns the supported operations in insertion order.
func (c *Class) Operations() []Operation {
	ops := make([]Operation, len(c.operations))
	for i, o := range c.operations {
		ops[i] = o.clone()
	}
	return ops
}

// expandIRI places scheme-less identifiers in the documentation vocabulary.
func expandIRI(iri string) string {
	if iri == "" || strings.Contains(iri, ":") {
		return iri
	}
	return VocabPrefix + iri
}
