// Package hydra builds Hydra API documentation and serializes it to JSON-LD.
//
// A Document is populated bottom-up:
//
//	data, _ := hydra.NewClass("http://hydrus.com/Data", "Data", "Class for a data entry")
//	temp, _ := hydra.NewProperty("http://schema.org/QuantitativeValue", "Temperature", true, false, false)
//	_ = data.AddSupportedProp(temp)
//
//	doc, _ := hydra.NewDocument("serverapi", "API Doc", "Server API", "http://localhost/")
//	_ = doc.AddSupportedClass(data, true)
//	_ = doc.AddBaseResource()
//	_ = doc.AddBaseCollection()
//	_ = doc.GenEntryPoint()
//	out := doc.Generate()
//
// The entry point is a snapshot of the classes registered when GenEntryPoint
// runs, so it must be generated after every class of interest is registered.
//
// A Document is not safe for concurrent mutation. Once population is
// complete, Generate may be called from any number of goroutines.
package hydra
