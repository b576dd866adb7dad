package openapi

import "maps"

// NewComponents creates Components with the shared Error schema and the
// error responses every endpoint can return.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     Type("object"),
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: Type("string"), Description: "Error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":         errorResponse("Invalid request"),
			"PayloadTooLarge":    errorResponse("Request body exceeds the upload limit"),
			"ServiceUnavailable": errorResponse("Service at capacity; retry later"),
			"InternalError":      errorResponse("Unexpected server failure"),
		},
	}
}

func errorResponse(description string) *Response {
	return ResponseJSON(description, "Error")
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
