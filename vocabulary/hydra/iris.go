package hydra

// Namespace is the base IRI of the Hydra core vocabulary.
const Namespace = "http://www.w3.org/ns/hydra/core#"

// Standard namespaces referenced by generated documents.
const (
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace   = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema#"
	SchemaNamespace = "http://schema.org/"
)

// Class IRIs.
const (
	// ClassResource is the supertype of every dereferenceable resource.
	ClassResource = Namespace + "Resource"

	// ClassCollection is the supertype of every collection wrapper.
	ClassCollection = Namespace + "Collection"

	// ClassClass types every class described by the documentation.
	ClassClass = Namespace + "Class"

	// ClassLink types properties whose values are dereferenceable links.
	ClassLink = Namespace + "Link"

	// ClassOperation types supported operations.
	ClassOperation = Namespace + "Operation"

	// TypeSupportedProperty types supported property entries.
	TypeSupportedProperty = Namespace + "SupportedProperty"

	// ClassAPIDocumentation types the documentation root.
	ClassAPIDocumentation = Namespace + "ApiDocumentation"

	// ClassStatus types status code descriptions.
	ClassStatus = Namespace + "Status"
)

// Property IRIs.
const (
	PropMember             = Namespace + "member"
	PropTitle              = Namespace + "title"
	PropDescription        = Namespace + "description"
	PropSupportedClass     = Namespace + "supportedClass"
	PropSupportedProperty  = Namespace + "supportedProperty"
	PropSupportedOperation = Namespace + "supportedOperation"
	PropProperty           = Namespace + "property"
	PropReadable           = Namespace + "readable"
	PropWritable           = Namespace + "writable"
	PropRequired           = Namespace + "required"
	PropMethod             = Namespace + "method"
	PropExpects            = Namespace + "expects"
	PropReturns            = Namespace + "returns"
	PropStatusCodes        = Namespace + "statusCodes"
	PropStatusCode         = Namespace + "statusCode"
	PropPossibleStatus     = Namespace + "possibleStatus"
	PropEntrypoint         = Namespace + "entrypoint"
	PropTarget             = Namespace + "target"

	RDFType        = RDFNamespace + "type"
	RDFSLabel      = RDFSNamespace + "label"
	RDFSDomain     = RDFSNamespace + "domain"
	RDFSRange      = RDFSNamespace + "range"
	RDFSSubClassOf = RDFSNamespace + "subClassOf"
)

// schema.org action types used for the generic collection operations.
const (
	ActionFind = SchemaNamespace + "FindAction"
	ActionAdd  = SchemaNamespace + "AddAction"
)
