package hydra

// Property describes one semantic property supported by a class.
//
// ObjectRange marks properties whose value references another class rather
// than a scalar. Such properties are serialized as required.
type Property struct {
	IRI         string `validate:"required"`
	Title       string `validate:"required"`
	Readable    bool
	Writable    bool
	ObjectRange bool
}

// NewProperty returns a validated property descriptor.
func NewProperty(iri, title string, readable, writable, objectRange bool) (Property, error) {
	p := Property{
		IRI:         expandIRI(iri),
		Title:       title,
		Readable:    readable,
		Writable:    writable,
		ObjectRange: objectRange,
	}
	if err := p.Validate(); err != nil {
		return Property{}, err
	}
	return p, nil
}

// Validate reports whether the descriptor carries every required field.
func (p Property) Validate() error {
	return validateDescriptor("property", p)
}

// Required reports whether clients must supply the property.
func (p Property) Required() bool {
	return p.ObjectRange
}
