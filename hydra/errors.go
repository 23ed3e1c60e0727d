package hydra

import "errors"

var (
	// ErrInvalidDescriptor is returned when a property, operation, class or
	// document is missing a required field or carries a malformed value.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrDuplicateClassIRI is returned when a class IRI is registered twice.
	ErrDuplicateClassIRI = errors.New("duplicate class IRI")

	// ErrDuplicateTitle is returned when a class title would produce the
	// same link name, link path or operation id as a registered class.
	ErrDuplicateTitle = errors.New("duplicate class title")

	// ErrClassOwned is returned when a class already registered with one
	// document is registered with another.
	ErrClassOwned = errors.New("class belongs to another document")

	// ErrEmptyEntryPoint is a warning returned when the entry point is
	// generated without any collection or endpoint to link to.
	ErrEmptyEntryPoint = errors.New("entry point has no links")

	// ErrDanglingReference is returned by Validate for operations that
	// expect or return a class the document does not describe.
	ErrDanglingReference = errors.New("reference to undeclared class")
)
