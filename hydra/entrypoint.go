package hydra

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-openapi/inflect"
)

// EntryPointIRI identifies the synthesized entry point class.
const EntryPointIRI = VocabPrefix + "EntryPoint"

// Link is one navigation link from the entry point to a collection wrapper
// or endpoint class.
type Link struct {
	// Name is the link's stable name in the entry point object.
	Name string

	// Path is the link target relative to the entry point.
	Path string

	// IRI identifies the link property.
	IRI string

	// Range is the IRI of the class the link points to.
	Range string

	// Target is the absolute URL of the linked resource.
	Target string

	// Collection reports whether the link points to a collection wrapper.
	Collection bool

	// Operations are those supported by the linked class.
	Operations []Operation
}

// GenEntryPoint synthesizes the entry point from the classes registered so
// far. Every collection wrapper and every endpoint class gets one link; a
// class that is both is linked through its collection. Classes registered
// afterwards are not linked until GenEntryPoint runs again.
//
// The entry point is installed even when it has no links, in which case
// ErrEmptyEntryPoint is returned as a warning.
func (d *Document) GenEntryPoint() error {
	links := make([]Link, 0, len(d.classes))
	for _, reg := range d.classes {
		switch {
		case reg.collection != nil:
			links = append(links, d.newLink(reg.collection, true))
		case reg.class.endpoint:
			links = append(links, d.newLink(reg.class, false))
		}
	}

	ep := &Class{
		iri:         EntryPointIRI,
		title:       "EntryPoint",
		description: "The main entry point or homepage of the API.",
		properties:  make([]Property, 0),
		operations: []Operation{{
			ID:      "_:entry_point",
			Title:   "The APIs main entry point.",
			Method:  "GET",
			Returns: EntryPointIRI,
			Statuses: []Status{
				{Code: 200, Description: "Entry point returned"},
			},
		}},
		owner: d,
	}
	for _, l := range links {
		ep.properties = append(ep.properties, Property{
			IRI:      l.IRI,
			Title:    l.Name,
			Readable: true,
		})
	}

	d.entryPoint = ep
	d.links = links
	d.state = StateFinalized

	if len(links) == 0 {
		d.logger.Warn("Entry point generated without links",
			slog.String("api", d.apiID),
			slog.Int("classes", len(d.classes)))
		return fmt.Errorf("%w: api %s", ErrEmptyEntryPoint, d.apiID)
	}

	d.logger.Debug("Generated entry point",
		slog.String("api", d.apiID),
		slog.Int("links", len(links)))
	return nil
}

// Links returns the entry point links captured by the last GenEntryPoint.
func (d *Document) Links() []Link {
	out := make([]Link, len(d.links))
	for i, l := range d.links {
		l.Operations = slices.Clone(l.Operations)
		out[i] = l
	}
	return out
}

// EntryPointObject renders the entry point resource itself: one member per
// link, mapping the link name to its absolute URL. It returns nil before
// GenEntryPoint has run.
func (d *Document) EntryPointObject() map[string]any {
	if d.entryPoint == nil {
		return nil
	}
	obj := map[string]any{
		"@context": joinURL(d.EntryPointURL(), "contexts", "EntryPoint.jsonld"),
		"@id":      d.EntryPointURL(),
		"@type":    "EntryPoint",
	}
	for _, l := range d.links {
		obj[l.Name] = l.Target
	}
	return obj
}

func (d *Document) newLink(c *Class, collection bool) Link {
	path := c.title
	return Link{
		Name:       inflect.CamelizeDownFirst(path),
		Path:       path,
		IRI:        EntryPointIRI + "/" + path,
		Range:      c.iri,
		Target:     joinURL(d.EntryPointURL(), path),
		Collection: collection,
		Operations: c.Operations(),
	}
}

// linkDescription returns the description of a link property.
func linkDescription(l Link) string {
	if l.Collection {
		return fmt.Sprintf("The %s collection", l.Path)
	}
	return fmt.Sprintf("The %s endpoint", l.Path)
}
