package hydra

import (
	"slices"
	"strings"

	vocab "github.com/c360studio/hydradoc/vocabulary/hydra"
)

// Status is one possible outcome of an operation.
type Status struct {
	Code        int `validate:"gte=100,lte=599"`
	Description string
}

// Operation describes one action clients may invoke on a class.
//
// Expects and Returns hold class IRIs; an empty value means the operation
// carries no body in that direction.
type Operation struct {
	// ID is an optional node identifier, typically a blank node.
	ID string

	// Type is the operation's RDF type. Empty means hydra:Operation.
	Type string

	Title    string `validate:"required"`
	Method   string `validate:"required,oneof=GET HEAD POST PUT PATCH DELETE OPTIONS"`
	Expects  string
	Returns  string
	Statuses []Status `validate:"dive"`
}

// NewOperation returns a validated operation descriptor. The method is
// normalized to upper case.
func NewOperation(title, method, expects, returns string, statuses ...Status) (Operation, error) {
	o := Operation{
		Title:    title,
		Method:   strings.ToUpper(strings.TrimSpace(method)),
		Expects:  expandIRI(expects),
		Returns:  expandIRI(returns),
		Statuses: slices.Clone(statuses),
	}
	if err := o.Validate(); err != nil {
		return Operation{}, err
	}
	return o, nil
}

// Validate reports whether the descriptor is well formed.
func (o Operation) Validate() error {
	return validateDescriptor("operation", o)
}

// RDFType returns the operation's type, defaulting to hydra:Operation.
func (o Operation) RDFType() string {
	if o.Type == "" {
		return vocab.ClassOperation
	}
	return o.Type
}

func (o Operation) clone() Operation {
	o.Statuses = slices.Clone(o.Statuses)
	return o
}
