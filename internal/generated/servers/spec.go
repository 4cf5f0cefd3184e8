package servers

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// InstanceName is the swag registry name the API document is published under.
const InstanceName = "orderflow"

//go:embed openapi.yaml
var rawSpec []byte

var (
	registerOnce sync.Once
	registerErr  error
)

// RawSpec returns the OpenAPI document as embedded.
func RawSpec() []byte {
	out := make([]byte, len(rawSpec))
	copy(out, rawSpec)
	return out
}

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

// RegisterSwaggerDoc publishes the document as JSON in the swag registry so
// the swagger UI handler can serve it. Only the first call registers.
func RegisterSwaggerDoc() error {
	registerOnce.Do(func() {
		doc, err := GetSwagger()
		if err != nil {
			registerErr = err
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			registerErr = err
			return
		}
		swag.Register(InstanceName, &swag.Spec{
			InfoInstanceName: InstanceName,
			SwaggerTemplate:  string(raw),
		})
	})
	return registerErr
}
