package openapi

import "maps"

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {
				Schema: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"error": {Type: "string", Description: "Error message"},
					},
				},
			},
		},
	}
}

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":       {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size":  {Type: "integer", Description: "Results per page", Example: 10},
					"sort":       {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: clinic_name,-call_start_time"},
					"sort_by":    {Type: "string", Description: "Single sort field, used when sort is absent"},
					"sort_order": {Type: "string", Description: "Order for sort_by", Enum: []any{"asc", "desc"}, Default: "desc"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":  errorResponse("Invalid request"),
			"NotFound":    errorResponse("Resource not found"),
			"Unavailable": errorResponse("Backing store temporarily unavailable"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}
