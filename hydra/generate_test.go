package hydra

import (
	"encoding/json"
	"strings"
	"testing"

	vocab "github.com/c360studio/hydradoc/vocabulary/hydra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateScenario(t *testing.T) {
	out := scenarioDocument(t).Generate()

	assert.Equal(t, "http://localhost/serverapi/vocab", out.ID)
	assert.Equal(t, "ApiDocumentation", out.Type)
	assert.Equal(t, "API Doc for the server side API", out.Title)
	assert.Equal(t, "http://localhost/serverapi", out.EntryPoint)

	byID := make(map[string]ClassNode)
	var order []string
	for _, c := range out.SupportedClass {
		byID[c.ID] = c
		order = append(order, c.ID)
	}
	assert.Equal(t, []string{
		"http://hydrus.com/Data",
		"http://hydrus.com/DataCollection",
		"http://hydrus.com/Area",
		"hydra:Resource",
		"hydra:Collection",
		"vocab:EntryPoint",
	}, order)

	data := byID["http://hydrus.com/Data"]
	assert.Equal(t, "hydra:Class", data.Type)
	require.Len(t, data.SupportedProperty, 3)
	assert.Equal(t, "Temperature", data.SupportedProperty[0].Title)
	assert.Equal(t, "DroneID", data.SupportedProperty[1].Title)
	assert.Equal(t, "Position", data.SupportedProperty[2].Title)
	require.Len(t, data.SupportedOperation, 2)
	read := data.SupportedOperation[0]
	assert.Equal(t, "ReadData", read.Title)
	assert.Nil(t, read.Expects)
	require.NotNil(t, read.Returns)
	assert.Equal(t, "http://hydrus.com/Data", *read.Returns)
	assert.Equal(t, []StatusNode{{404, "Data not found"}, {200, "Data returned"}}, read.StatusCodes)
	submit := data.SupportedOperation[1]
	assert.Equal(t, "POST", submit.Method)
	assert.Nil(t, submit.Returns)
	assert.Equal(t, []StatusNode{{201, "Data added"}}, submit.StatusCodes)

	coll := byID["http://hydrus.com/DataCollection"]
	assert.Equal(t, "hydra:Collection", coll.SubClassOf)
	var methods []string
	for _, op := range coll.SupportedOperation {
		methods = append(methods, op.Method)
	}
	assert.Equal(t, []string{"GET", "POST"}, methods)

	area := byID["http://hydrus.com/Area"]
	require.Len(t, area.SupportedProperty, 2)
	assert.True(t, area.SupportedProperty[0].Required)

	ep := byID["vocab:EntryPoint"]
	require.Len(t, ep.SupportedProperty, 2)
	first := ep.SupportedProperty[0].Property.Link
	require.NotNil(t, first)
	assert.Equal(t, "hydra:Link", first.Type)
	assert.Equal(t, "http://hydrus.com/DataCollection", first.Range)
	assert.Equal(t, "http://localhost/serverapi/DataCollection", first.Target)
	assert.Equal(t, "The DataCollection collection", first.Description)
	second := ep.SupportedProperty[1].Property.Link
	require.NotNil(t, second)
	assert.Equal(t, "http://hydrus.com/Area", second.Range)
	assert.Equal(t, "The Area endpoint", second.Description)
}

func TestGenerateIsDeterministic(t *testing.T) {
	doc := scenarioDocument(t)

	first, err := json.MarshalIndent(doc.Generate(), "", "  ")
	require.NoError(t, err)
	second, err := json.MarshalIndent(doc.Generate(), "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	rebuilt, err := json.MarshalIndent(scenarioDocument(t).Generate(), "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(rebuilt))
}

func TestGenerateJSONShape(t *testing.T) {
	raw, err := json.Marshal(scenarioDocument(t))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	classes := doc["supportedClass"].([]any)
	data := classes[0].(map[string]any)
	for _, key := range []string{"@id", "@type", "title", "description", "supportedProperty", "supportedOperation"} {
		assert.Contains(t, data, key)
	}

	prop := data["supportedProperty"].([]any)[0].(map[string]any)
	assert.Equal(t, "http://schema.org/QuantitativeValue", prop["property"])
	for _, key := range []string{"title", "readable", "writable", "required"} {
		assert.Contains(t, prop, key)
	}

	op := data["supportedOperation"].([]any)[0].(map[string]any)
	assert.Contains(t, op, "expects")
	assert.Nil(t, op["expects"])
	assert.Equal(t, "GET", op["method"])
	codes := op["statusCodes"].([]any)
	assert.Equal(t, float64(404), codes[0].(map[string]any)["statusCode"])

	resource := classes[3].(map[string]any)
	assert.Equal(t, []any{}, resource["supportedProperty"])
	assert.Equal(t, []any{}, resource["supportedOperation"])
}

func TestGenerateBeforeEntryPoint(t *testing.T) {
	doc := newTestDocument(t)
	require.NoError(t, doc.AddSupportedClass(dataClass(t), true))

	out := doc.Generate()
	assert.Empty(t, out.EntryPoint)
	for _, c := range out.SupportedClass {
		assert.NotEqual(t, "vocab:EntryPoint", c.ID)
	}
}

func TestGenerateDoesNotMutate(t *testing.T) {
	doc := scenarioDocument(t)
	state := doc.State()
	classes := len(doc.Classes())

	doc.Generate()
	doc.Generate()

	assert.Equal(t, state, doc.State())
	assert.Len(t, doc.Classes(), classes)
}

func TestContext(t *testing.T) {
	ctx := scenarioDocument(t).Context()

	assert.Equal(t, "http://localhost/serverapi/vocab#", ctx["vocab"])
	assert.Equal(t, "http://www.w3.org/ns/hydra/core#", ctx["hydra"])
	assert.Equal(t, "http://hydrus.com/Data", ctx["Data"])
	assert.Equal(t, "http://hydrus.com/DataCollection", ctx["DataCollection"])
	assert.Equal(t, "hydra:Resource", ctx["Resource"])
	assert.Equal(t, "vocab:EntryPoint", ctx["EntryPoint"])
	assert.Equal(t, iriValued("hydra:expects"), ctx["expects"])
}

func TestPossibleStatus(t *testing.T) {
	out := scenarioDocument(t).Generate()
	require.NotEmpty(t, out.PossibleStatus)
	for i := 1; i < len(out.PossibleStatus); i++ {
		prev, cur := out.PossibleStatus[i-1], out.PossibleStatus[i]
		assert.LessOrEqual(t, prev.StatusCode, cur.StatusCode)
		assert.NotEqual(t, prev, cur)
	}
	assert.Contains(t, out.PossibleStatus, StatusNode{404, "Data not found"})
}

func TestPropertyRefRoundTrip(t *testing.T) {
	raw := `[{"@type":"hydra:SupportedProperty","property":"http://schema.org/geo","title":"Position","readable":true,"writable":false,"required":false},` +
		`{"@type":"hydra:SupportedProperty","property":{"@id":"vocab:EntryPoint/Area","@type":"hydra:Link","label":"Area","description":"","domain":"vocab:EntryPoint","range":"http://hydrus.com/Area","target":"http://localhost/serverapi/Area","supportedOperation":[]},"title":"area","readable":true,"writable":false,"required":false}]`

	var props []PropertyNode
	require.NoError(t, json.Unmarshal([]byte(raw), &props))
	require.Len(t, props, 2)
	assert.Equal(t, "http://schema.org/geo", props[0].Property.IRI)
	assert.Nil(t, props[0].Property.Link)
	require.NotNil(t, props[1].Property.Link)
	assert.Equal(t, "http://hydrus.com/Area", props[1].Property.Link.Range)

	again, err := json.Marshal(props)
	require.NoError(t, err)
	assert.Equal(t, raw, string(again))
}

func TestValidate(t *testing.T) {
	t.Run("clean document", func(t *testing.T) {
		require.NoError(t, scenarioDocument(t).Validate())
	})

	t.Run("dangling reference", func(t *testing.T) {
		doc := newTestDocument(t)
		drone, err := NewClass("http://hydrus.com/Drone", "Drone", "")
		require.NoError(t, err)
		require.NoError(t, drone.AddSupportedOp(mustOperation(t, "SubmitStatus", "PUT", "http://hydrus.com/Status", "")))
		require.NoError(t, doc.AddSupportedClass(drone, true))

		err = doc.Validate()
		require.ErrorIs(t, err, ErrDanglingReference)
		assert.True(t, strings.Contains(err.Error(), "http://hydrus.com/Status"))
	})
}

func TestGenerateSupportedPropertyType(t *testing.T) {
	assert.Equal(t, "http://www.w3.org/ns/hydra/core#SupportedProperty", vocab.TypeSupportedProperty)

	out := scenarioDocument(t).Generate()
	for _, c := range out.SupportedClass {
		for _, p := range c.SupportedProperty {
			assert.Equal(t, "hydra:SupportedProperty", p.Type, "class %s", c.ID)
		}
	}
}

func TestGenerateOmitsEntryPointUntilFinalized(t *testing.T) {
	doc := newTestDocument(t)
	require.NoError(t, doc.AddSupportedClass(dataClass(t), true))

	raw, err := json.Marshal(doc.Generate())
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "entrypoint")

	require.NoError(t, doc.GenEntryPoint())
	raw, err = json.Marshal(doc.Generate())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "http://localhost/serverapi", fields["entrypoint"])
}

func TestContextTargetIsHydraTerm(t *testing.T) {
	ctx := scenarioDocument(t).Context()
	assert.Equal(t, iriValued("hydra:target"), ctx["target"])

	raw, err := json.Marshal(ctx["target"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"@id":"hydra:target","@type":"@id"}`, string(raw))
}

func TestValidateResolvesRelativeIRIs(t *testing.T) {
	doc := newTestDocument(t)
	data, err := NewClass("Data", "Data", "")
	require.NoError(t, err)
	require.NoError(t, data.AddSupportedOp(mustOperation(t, "ReadData", "GET", "", "Data")))
	require.NoError(t, doc.AddSupportedClass(data, true))
	require.NoError(t, doc.AddBaseResource())
	require.NoError(t, doc.AddBaseCollection())
	require.NoError(t, doc.GenEntryPoint())

	require.NoError(t, doc.Validate())
	out := doc.Generate()
	require.NotEmpty(t, out.SupportedClass)
	assert.Equal(t, "vocab:Data", out.SupportedClass[0].ID)
	require.NotNil(t, out.SupportedClass[0].SupportedOperation[0].Returns)
	assert.Equal(t, "vocab:Data", *out.SupportedClass[0].SupportedOperation[0].Returns)
}
