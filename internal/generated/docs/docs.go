// Package docs registers the OpenAPI document with swag so that echo-swagger
// can serve it under /swagger/doc.json.
package docs

import (
	"encoding/json"
	"sync"

	"github.com/swaggo/swag"

	"logistics/internal/generated/servers"
)

// SwaggerInfo holds the exported metadata of the registered document.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/",
	Title:            "Shipment Lifecycle API",
	Description:      "Shipment status timelines and carrier capacity accounting.",
	InfoInstanceName: swag.Name,
}

type openAPIDoc struct {
	once sync.Once
	doc  string
}

// ReadDoc renders the embedded OpenAPI document as JSON. A document that
// fails to load is reported as an empty object.
func (d *openAPIDoc) ReadDoc() string {
	d.once.Do(func() {
		d.doc = "{}"
		swagger, err := servers.GetSwagger()
		if err != nil {
			return
		}
		raw, err := json.Marshal(swagger)
		if err != nil {
			return
		}
		d.doc = string(raw)
	})
	return d.doc
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), &openAPIDoc{})
}
