package hydra

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// State is the lifecycle stage of a Document.
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateBaseAdded
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateBaseAdded:
		return "base_added"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// registration is one registered domain class and its optional collection.
type registration struct {
	class      *Class
	collection *Class
}

// Document is the root of an API documentation. It exclusively owns every
// class registered with it.
type Document struct {
	apiID          string
	title          string
	description    string
	baseURL        string
	entryPointPath string

	classes        []registration
	iris           map[string]struct{}
	names          map[string]string
	baseResource   *Class
	baseCollection *Class
	entryPoint     *Class
	links          []Link

	state  State
	logger *slog.Logger
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithEntryPoint sets the entry point path relative to the base URL.
// Defaults to the API identifier.
func WithEntryPoint(path string) DocumentOption {
	return func(d *Document) {
		d.entryPointPath = path
	}
}

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *slog.Logger) DocumentOption {
	return func(d *Document) {
		d.logger = logger
	}
}

// NewDocument returns an empty documentation for the API served under
// baseURL + apiID.
func NewDocument(apiID, title, description, baseURL string, opts ...DocumentOption) (*Document, error) {
	input := struct {
		APIID   string `validate:"required"`
		Title   string `validate:"required"`
		BaseURL string `validate:"required,url"`
	}{APIID: apiID, Title: title, BaseURL: baseURL}
	if err := validateDescriptor("document", input); err != nil {
		return nil, err
	}

	d := &Document{
		apiID:          apiID,
		title:          title,
		description:    description,
		baseURL:        baseURL,
		entryPointPath: apiID,
		iris:           make(map[string]struct{}),
		names:          make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d, nil
}

// ID returns the documentation's IRI.
func (d *Document) ID() string {
	return joinURL(d.baseURL, d.apiID, "vocab")
}

// APIID returns the API identifier.
func (d *Document) APIID() string {
	return d.apiID
}

// BaseURL returns the base URL the API is served under.
func (d *Document) BaseURL() string {
	return d.baseURL
}

// EntryPointURL returns the absolute URL of the API entry point.
func (d *Document) EntryPointURL() string {
	return joinURL(d.baseURL, d.entryPointPath)
}

// State returns the current lifecycle stage.
func (d *Document) State() State {
	return d.state
}

// AddSupportedClass registers c. When asCollection is set a collection
// wrapper is derived from c and emitted right after it.
func (d *Document) AddSupportedClass(c *Class, asCollection bool) error {
	if c == nil {
		return fmt.Errorf("%w: class is nil", ErrInvalidDescriptor)
	}
	if c.owner != nil && c.owner != d {
		return fmt.Errorf("%w: %s", ErrClassOwned, c.iri)
	}

	reg := registration{class: c}
	if asCollection {
		reg.collection = DeriveCollection(c)
	}

	if err := d.checkAvailable(c.iri); err != nil {
		return err
	}
	if reg.collection != nil {
		if err := d.checkAvailable(reg.collection.iri); err != nil {
			return err
		}
	}
	keys := reg.nameKeys()
	for _, key := range keys {
		if other, ok := d.names[key]; ok {
			return fmt.Errorf("%w: %q of %s clashes with %s", ErrDuplicateTitle, c.title, c.iri, other)
		}
	}

	c.owner = d
	d.classes = append(d.classes, reg)
	d.iris[c.iri] = struct{}{}
	for _, key := range keys {
		d.names[key] = c.iri
	}
	if reg.collection != nil {
		reg.collection.owner = d
		d.iris[reg.collection.iri] = struct{}{}
	}

	if d.state == StateFinalized {
		d.logger.Warn("Class registered after entry point generation; entry point is stale",
			slog.String("class", c.iri))
		d.rewind()
	} else {
		d.advance(StatePopulated)
	}

	d.logger.Debug("Registered class",
		slog.String("class", c.iri),
		slog.Bool("collection", asCollection),
		slog.Bool("endpoint", c.endpoint))
	return nil
}

// AddBaseResource registers the generic Resource class. It is never linked
// from the entry point.
func (d *Document) AddBaseResource() error {
	c := BaseResource()
	if err := d.checkAvailable(c.iri); err != nil {
		return err
	}
	c.owner = d
	d.baseResource = c
	d.iris[c.iri] = struct{}{}
	d.advance(StateBaseAdded)
	return nil
}

// AddBaseCollection registers the generic Collection class. It is never
// linked from the entry point.
func (d *Document) AddBaseCollection() error {
	c := BaseCollection()
	if err := d.checkAvailable(c.iri); err != nil {
		return err
	}
	c.owner = d
	d.baseCollection = c
	d.iris[c.iri] = struct{}{}
	d.advance(StateBaseAdded)
	return nil
}

// Class returns the registered class with the given IRI, including derived
// collections and synthesized classes.
func (d *Document) Class(iri string) (*Class, bool) {
	for _, c := range d.orderedClasses() {
		if c.iri == iri {
			return c, true
		}
	}
	return nil, false
}

// Classes returns every class in emission order.
func (d *Document) Classes() []*Class {
	return d.orderedClasses()
}

// orderedClasses lists classes in the order they are serialized: domain
// classes each followed by their collection, then the base classes, then
// the entry point.
func (d *Document) orderedClasses() []*Class {
	out := make([]*Class, 0, 2*len(d.classes)+3)
	for _, reg := range d.classes {
		out = append(out, reg.class)
		if reg.collection != nil {
			out = append(out, reg.collection)
		}
	}
	if d.baseResource != nil {
		out = append(out, d.baseResource)
	}
	if d.baseCollection != nil {
		out = append(out, d.baseCollection)
	}
	if d.entryPoint != nil {
		out = append(out, d.entryPoint)
	}
	return out
}

// nameKeys returns the normalized names the registration derives link
// names, link paths and operation ids from.
func (r registration) nameKeys() []string {
	titles := []string{r.class.title}
	if r.collection != nil {
		titles = append(titles, r.collection.title)
	}
	var keys []string
	for _, t := range titles {
		lower := cases.Lower(language.Und).String(t)
		keys = append(keys, lower)
		if camel := strings.ToLower(inflect.CamelizeDownFirst(t)); camel != lower {
			keys = append(keys, camel)
		}
	}
	return keys
}

func (d *Document) checkAvailable(iri string) error {
	if iri == EntryPointIRI {
		return fmt.Errorf("%w: %s is reserved for the entry point", ErrDuplicateClassIRI, iri)
	}
	if _, ok := d.iris[iri]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClassIRI, iri)
	}
	return nil
}

// advance moves the lifecycle forward, never backward.
func (d *Document) advance(to State) {
	if to > d.state {
		d.state = to
	}
}

// rewind drops the lifecycle back below Finalized once the entry point no
// longer reflects the registry.
func (d *Document) rewind() {
	if d.baseResource != nil || d.baseCollection != nil {
		d.state = StateBaseAdded
		return
	}
	d.state = StatePopulated
}

// joinURL joins path elements onto base, falling back to concatenation
// when base does not parse.
func joinURL(base string, elem ...string) string {
	joined, err := url.JoinPath(base, elem...)
	if err != nil {
		return strings.TrimSuffix(base, "/") + "/" + strings.Join(elem, "/")
	}
	return joined
}
