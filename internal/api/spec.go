package api

import (
	"net/http"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/pkg/openapi"
)

func ptr[T any](v T) *T { return &v }

var (
	str      = openapi.Type("string")
	nullable = openapi.Type("string", "null")
)

// NewSpec builds the OpenAPI document for the API module. Configured servers
// are listed first, followed by the module base path.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	for _, s := range cfg.API.OpenAPI.Servers {
		spec.AddServer(s)
	}
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"IdentifyRequest": {
			Type:     openapi.Type("object"),
			Required: []string{"image"},
			Properties: map[string]*openapi.Schema{
				"image": {
					Type:        str,
					Description: "Base64 image data URI",
					Example:     "data:image/jpeg;base64,/9j/4AAQ...",
				},
			},
		},
		"IdentifyResponse": {
			Type:     openapi.Type("object"),
			Required: []string{"denomination", "currency_code", "confidence", "message"},
			Properties: map[string]*openapi.Schema{
				"denomination":  {Type: nullable, Description: "Note value; null when unreadable", Example: "500"},
				"currency_code": {Type: nullable, Description: "ISO 4217 code; null when unreadable", Example: "INR"},
				"confidence": {
					Type:        openapi.Type("number"),
					Description: "Identification confidence; below 0.7 is uncertain",
					Minimum:     ptr(0.0),
					Maximum:     ptr(1.0),
					Example:     0.93,
				},
				"orientation_note": {
					Type:    str,
					Default: "correct",
					Enum:    []any{"correct", "rotated", "upside_down", "unclear"},
				},
				"message":  {Type: str, Example: "This is five hundred rupees"},
				"isBlurry": {Type: openapi.Type("boolean"), Default: false},
			},
		},
	})

	spec.AddOperation(http.MethodPost, "/identify", &openapi.Operation{
		Summary:     "Identify a currency note",
		Description: "Decodes the submitted image and returns the identified denomination.",
		Tags:        []string{"Recognition"},
		RequestBody: openapi.RequestBodyJSON("IdentifyRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Identification result", "IdentifyResponse"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			500: openapi.ResponseRef("InternalError"),
			503: openapi.ResponseRef("ServiceUnavailable"),
		},
	})

	return spec
}
