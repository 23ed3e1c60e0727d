// Package hydra provides vocabulary terms for Hydra API documentation.
//
// It defines the IRIs of the Hydra core vocabulary and the RDF, RDFS and
// schema.org terms that an API documentation refers to, and registers the
// documentation predicates with the semstreams vocabulary registry so that
// exporters can resolve them to standard IRIs.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/hydradoc/vocabulary/hydra"
package hydra
