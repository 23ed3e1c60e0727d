package hydra

import (
	"strings"

	vocab "github.com/c360studio/hydradoc/vocabulary/hydra"
)

// idTerm is a context term whose values are IRIs.
type idTerm struct {
	ID   string `json:"@id"`
	Type string `json:"@type"`
}

func iriValued(id string) idTerm {
	return idTerm{ID: id, Type: "@id"}
}

// Context builds the JSON-LD @context: the fixed Hydra terms plus one term
// per class title. When two classes share a title the first registered wins.
func (d *Document) Context() map[string]any {
	ctx := map[string]any{
		"vocab": d.ID() + "#",
		"hydra": vocab.Namespace,
		"rdf":   vocab.RDFNamespace,
		"rdfs":  vocab.RDFSNamespace,
		"xsd":   vocab.XSDNamespace,

		"ApiDocumentation":   "hydra:ApiDocumentation",
		"supportedClass":     "hydra:supportedClass",
		"supportedProperty":  "hydra:supportedProperty",
		"supportedOperation": "hydra:supportedOperation",
		"possibleStatus":     "hydra:possibleStatus",
		"property":           iriValued("hydra:property"),
		"readable":           "hydra:readable",
		"writable":           "hydra:writable",
		"required":           "hydra:required",
		"method":             "hydra:method",
		"statusCodes":        "hydra:statusCodes",
		"statusCode":         "hydra:statusCode",
		"title":              "hydra:title",
		"description":        "hydra:description",
		"expects":            iriValued("hydra:expects"),
		"returns":            iriValued("hydra:returns"),
		"entrypoint":         iriValued("hydra:entrypoint"),
		"label":              "rdfs:label",
		"domain":             iriValued("rdfs:domain"),
		"range":              iriValued("rdfs:range"),
		"subClassOf":         iriValued("rdfs:subClassOf"),
		"target":             iriValued("hydra:target"),
	}

	for _, c := range d.orderedClasses() {
		if _, taken := ctx[c.title]; taken {
			continue
		}
		ctx[c.title] = compactIRI(c.iri)
	}
	return ctx
}

// compactIRI shortens IRIs in the Hydra namespace to the hydra: prefix.
func compactIRI(iri string) string {
	if rest, ok := strings.CutPrefix(iri, vocab.Namespace); ok {
		return "hydra:" + rest
	}
	return iri
}
