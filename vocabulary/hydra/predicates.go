package hydra

import "github.com/c360studio/semstreams/vocabulary"

// Documentation predicates in dotted notation.
const (
	// DocTitle is the human readable title of a documented term.
	DocTitle = "hydra.doc.title"

	// DocDescription is the free text description of a documented term.
	DocDescription = "hydra.doc.description"

	// DocLabel is the short label of a documented term.
	DocLabel = "hydra.doc.label"

	// DocEntrypoint links the documentation to its entry point.
	DocEntrypoint = "hydra.doc.entrypoint"

	// DocPossibleStatus lists every outcome the API can produce.
	DocPossibleStatus = "hydra.doc.possible_status"

	// LinkTarget is the dereferenceable URL of an entry point link.
	LinkTarget = "hydra.link.target"
)

// Class structure predicates.
const (
	ClassSupportedClass     = "hydra.class.supported_class"
	ClassSupportedProperty  = "hydra.class.supported_property"
	ClassSupportedOperation = "hydra.class.supported_operation"
	ClassSubClassOf         = "hydra.class.sub_class_of"
)

// Property description predicates.
const (
	PropertyProperty = "hydra.property.property"
	PropertyReadable = "hydra.property.readable"
	PropertyWritable = "hydra.property.writable"
	PropertyRequired = "hydra.property.required"
	PropertyDomain   = "hydra.property.domain"
	PropertyRange    = "hydra.property.range"
)

// Operation description predicates.
const (
	OperationMethod      = "hydra.operation.method"
	OperationExpects     = "hydra.operation.expects"
	OperationReturns     = "hydra.operation.returns"
	OperationStatusCodes = "hydra.operation.status_codes"
	StatusCode           = "hydra.status.code"
)

func init() {
	vocabulary.Register(DocTitle,
		vocabulary.WithDescription("Human readable title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropTitle))

	vocabulary.Register(DocDescription,
		vocabulary.WithDescription("Free text description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropDescription))

	vocabulary.Register(DocLabel,
		vocabulary.WithDescription("Short label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSLabel))

	vocabulary.Register(DocEntrypoint,
		vocabulary.WithDescription("Links the documentation to the API entry point"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropEntrypoint))

	vocabulary.Register(DocPossibleStatus,
		vocabulary.WithDescription("Outcome the API can produce"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(PropPossibleStatus))

	vocabulary.Register(LinkTarget,
		vocabulary.WithDescription("URL an entry point link resolves to"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropTarget))

	vocabulary.Register(ClassSupportedClass,
		vocabulary.WithDescription("Class supported by the API"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropSupportedClass))

	vocabulary.Register(ClassSupportedProperty,
		vocabulary.WithDescription("Property supported by instances of a class"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropSupportedProperty))

	vocabulary.Register(ClassSupportedOperation,
		vocabulary.WithDescription("Operation supported by instances of a class"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropSupportedOperation))

	vocabulary.Register(ClassSubClassOf,
		vocabulary.WithDescription("Superclass of a documented class"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSSubClassOf))

	vocabulary.Register(PropertyProperty,
		vocabulary.WithDescription("Vocabulary term described by a supported property"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropProperty))

	vocabulary.Register(PropertyReadable,
		vocabulary.WithDescription("Whether clients can read the property"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(PropReadable))

	vocabulary.Register(PropertyWritable,
		vocabulary.WithDescription("Whether clients can write the property"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(PropWritable))

	vocabulary.Register(PropertyRequired,
		vocabulary.WithDescription("Whether the property must be supplied"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(PropRequired))

	vocabulary.Register(PropertyDomain,
		vocabulary.WithDescription("Class a link property belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSDomain))

	vocabulary.Register(PropertyRange,
		vocabulary.WithDescription("Class a link property points to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSRange))

	vocabulary.Register(OperationMethod,
		vocabulary.WithDescription("HTTP method of an operation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropMethod))

	vocabulary.Register(OperationExpects,
		vocabulary.WithDescription("Class of the request body"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropExpects))

	vocabulary.Register(OperationReturns,
		vocabulary.WithDescription("Class of the response body"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropReturns))

	vocabulary.Register(OperationStatusCodes,
		vocabulary.WithDescription("Possible outcomes of an operation"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(PropStatusCodes))

	vocabulary.Register(StatusCode,
		vocabulary.WithDescription("HTTP status code of an outcome"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(PropStatusCode))
}

// GetPredicateIRI returns the standard IRI for a predicate.
// Unregistered predicates fall back to the Hydra namespace.
func GetPredicateIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + predicate
}
