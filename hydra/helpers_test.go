package hydra

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := NewDocument("serverapi", "API Doc for the server side API",
		"API Documentation for the server side system", "http://localhost/",
		WithLogger(quietLogger()))
	require.NoError(t, err)
	return doc
}

func mustProperty(t *testing.T, iri, title string, readable, writable, objectRange bool) Property {
	t.Helper()
	p, err := NewProperty(iri, title, readable, writable, objectRange)
	require.NoError(t, err)
	return p
}

func mustOperation(t *testing.T, title, method, expects, returns string, statuses ...Status) Operation {
	t.Helper()
	o, err := NewOperation(title, method, expects, returns, statuses...)
	require.NoError(t, err)
	return o
}

// dataClass builds the Data class with its three properties and two operations.
func dataClass(t *testing.T) *Class {
	t.Helper()
	c, err := NewClass("http://hydrus.com/Data", "Data", "Class for a data entry")
	require.NoError(t, err)
	require.NoError(t, c.AddSupportedProp(mustProperty(t, "http://schema.org/QuantitativeValue", "Temperature", true, false, false)))
	require.NoError(t, c.AddSupportedProp(mustProperty(t, "http://schema.org/identifier", "DroneID", true, false, false)))
	require.NoError(t, c.AddSupportedProp(mustProperty(t, "http://schema.org/geo", "Position", true, false, false)))
	require.NoError(t, c.AddSupportedOp(mustOperation(t, "ReadData", "GET", "", "http://hydrus.com/Data",
		Status{Code: 404, Description: "Data not found"},
		Status{Code: 200, Description: "Data returned"})))
	require.NoError(t, c.AddSupportedOp(mustOperation(t, "SubmitData", "POST", "http://hydrus.com/Data", "",
		Status{Code: 201, Description: "Data added"})))
	return c
}

func areaClass(t *testing.T) *Class {
	t.Helper()
	c, err := NewClass("http://hydrus.com/Area", "Area", "Class for Area of Interest of the server", AsEndpoint())
	require.NoError(t, err)
	require.NoError(t, c.AddSupportedProp(mustProperty(t, "http://schema.org/geo", "TopLeft", true, true, true)))
	require.NoError(t, c.AddSupportedProp(mustProperty(t, "http://schema.org/geo", "BottomRight", true, true, true)))
	return c
}

// scenarioDocument registers Data as a collection and Area as an endpoint,
// then finalizes the document.
func scenarioDocument(t *testing.T) *Document {
	t.Helper()
	doc := newTestDocument(t)
	require.NoError(t, doc.AddSupportedClass(dataClass(t), true))
	require.NoError(t, doc.AddSupportedClass(areaClass(t), false))
	require.NoError(t, doc.AddBaseResource())
	require.NoError(t, doc.AddBaseCollection())
	require.NoError(t, doc.GenEntryPoint())
	return doc
}
