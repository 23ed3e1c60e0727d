// Package drone describes the drone server API: drones, their status, log
// entries, sensor data, the area of interest and GUI messages.
package drone

import (
	"fmt"
	"log/slog"

	"github.com/c360studio/hydradoc/hydra"
)

// Defaults of the original drone server deployment.
const (
	DefaultAPI     = "serverapi"
	DefaultBaseURL = "http://localhost/"
)

// Class IRIs of the drone vocabulary.
const (
	Namespace = "http://hydrus.com/"

	ClassStatus   = Namespace + "Status"
	ClassDrone    = Namespace + "Drone"
	ClassCommand  = Namespace + "Command"
	ClassLogEntry = Namespace + "LogEntry"
	ClassData     = Namespace + "Data"
	ClassArea     = Namespace + "Area"
	ClassMessage  = Namespace + "Message"
)

// propSpec is the tabular form of a supported property.
type propSpec struct {
	iri         string
	title       string
	read, write bool
	objectRange bool
}

// opSpec is the tabular form of a supported operation.
type opSpec struct {
	title    string
	method   string
	expects  string
	returns  string
	statuses []hydra.Status
}

// classSpec is one class of the drone API and how it is registered.
type classSpec struct {
	iri         string
	title       string
	description string
	endpoint    bool
	collection  bool
	props       []propSpec
	ops         []opSpec
}

// classes lists the drone API in registration order.
var classes = []classSpec{
	{
		iri: ClassDrone, title: "Drone", description: "Class for a drone", collection: true,
		props: []propSpec{
			{ClassStatus, "DroneStatus", true, false, false},
			{"http://schema.org/name", "name", true, false, false},
			{"http://schema.org/model", "model", true, false, false},
			{"http://auto.schema.org/speed", "MaxSpeed", true, false, false},
			{"http://schema.org/device", "Sensor", true, true, false},
		},
		ops: []opSpec{
			{"SubmitStatus", "PUT", ClassStatus, "", []hydra.Status{{Code: 200, Description: "Drone Status updated"}}},
			{"GetDrone", "GET", "", ClassDrone, []hydra.Status{{Code: 200, Description: "Drone Returned"}}},
		},
	},
	{
		iri: ClassStatus, title: "Status", description: "Class for drone status objects", collection: true,
		props: []propSpec{
			{"http://auto.schema.org/speed", "Speed", true, false, false},
			{"http://schema.org/geo", "Position", true, false, false},
			{"http://schema.org/fuelCapacity", "Battery", true, true, false},
			{"https://schema.org/status", "SensorStatus", true, false, false},
		},
	},
	{
		iri: ClassData, title: "Data", description: "Class for a data entry", collection: true,
		props: []propSpec{
			{"http://schema.org/QuantitativeValue", "Temperature", true, false, false},
			{"http://schema.org/identifier", "DroneID", true, false, false},
			{"http://schema.org/geo", "Position", true, false, false},
		},
		ops: []opSpec{
			{"ReadData", "GET", "", ClassData, []hydra.Status{
				{Code: 404, Description: "Data not found"},
				{Code: 200, Description: "Data returned"},
			}},
			{"SubmitData", "POST", ClassData, "", []hydra.Status{{Code: 201, Description: "Data added"}}},
		},
	},
	{
		iri: ClassLogEntry, title: "LogEntry", description: "Class for a log entry", collection: true,
		props: []propSpec{
			// subject
			{"http://schema.org/identifier", "DroneID", true, true, false},
			// predicate
			{"http://schema.org/UpdateAction", "Update", false, true, false},
			{"http://schema.org/ReplyAction", "Get", false, true, false},
			{"http://schema.org/SendAction", "Send", false, true, false},
			// object
			{ClassStatus, "Status", false, true, false},
			{ClassData, "Data", false, true, false},
			{ClassCommand, "Command", false, true, false},
		},
		ops: []opSpec{
			{"GetLog", "GET", "", ClassLogEntry, []hydra.Status{
				{Code: 404, Description: "Log entry not found"},
				{Code: 200, Description: "Log entry returned"},
			}},
		},
	},
	{
		iri: ClassArea, title: "Area", description: "Class for Area of Interest of the server", endpoint: true,
		props: []propSpec{
			// two positions make a bounding box
			{"http://schema.org/geo", "TopLeft", true, true, true},
			{"http://schema.org/geo", "BottomRight", true, true, true},
		},
		ops: []opSpec{
			{"UpdateArea", "PUT", ClassArea, "", []hydra.Status{{Code: 200, Description: "Area of interest changed"}}},
			{"GetArea", "GET", "", ClassArea, []hydra.Status{
				{Code: 404, Description: "Area of not found"},
				{Code: 200, Description: "Area of returned"},
			}},
		},
	},
	{
		iri: ClassCommand, title: "Command", description: "Class for drone commands",
		props: []propSpec{
			{"http://schema.org/UpdateAction", "Update", false, true, false},
			{ClassStatus, "Status", false, false, false},
		},
	},
	{
		iri: ClassMessage, title: "Message", description: "Class for messages received by the GUI interface", collection: true,
		props: []propSpec{
			{"http://schema.org/Text", "MessageString", true, true, false},
		},
	},
}

// ServerDoc builds the finalized documentation of the drone server API.
func ServerDoc(api, baseURL string, opts ...hydra.DocumentOption) (*hydra.Document, error) {
	doc, err := hydra.NewDocument(api,
		"API Doc for the server side API",
		"API Documentation for the server side system",
		baseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	for _, spec := range classes {
		c, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("build class %s: %w", spec.title, err)
		}
		if err := doc.AddSupportedClass(c, spec.collection); err != nil {
			return nil, fmt.Errorf("register class %s: %w", spec.title, err)
		}
	}

	if err := doc.AddBaseResource(); err != nil {
		return nil, err
	}
	if err := doc.AddBaseCollection(); err != nil {
		return nil, err
	}
	if err := doc.GenEntryPoint(); err != nil {
		return nil, err
	}

	slog.Debug("Built drone server documentation", "api", api, "classes", len(doc.Classes()))
	return doc, nil
}

func (s classSpec) build() (*hydra.Class, error) {
	var opts []hydra.ClassOption
	if s.endpoint {
		opts = append(opts, hydra.AsEndpoint())
	}
	c, err := hydra.NewClass(s.iri, s.title, s.description, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range s.props {
		prop, err := hydra.NewProperty(p.iri, p.title, p.read, p.write, p.objectRange)
		if err != nil {
			return nil, err
		}
		if err := c.AddSupportedProp(prop); err != nil {
			return nil, err
		}
	}
	for _, o := range s.ops {
		op, err := hydra.NewOperation(o.title, o.method, o.expects, o.returns, o.statuses...)
		if err != nil {
			return nil, err
		}
		if err := c.AddSupportedOp(op); err != nil {
			return nil, err
		}
	}
	return c, nil
}
