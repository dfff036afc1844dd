package clinics

import "github.com/JaimeStill/callqa/pkg/openapi"

var spec = struct {
	Options *openapi.Operation
}{
	Options: &openapi.Operation{
		Summary:     "List filter options",
		Description: "Returns every clinic, and the assistants of clinic_id when given.",
		Parameters: []*openapi.Parameter{
			{
				Name:        "clinic_id",
				In:          "query",
				Description: "Scope assistants to one clinic",
				Schema:      &openapi.Schema{Type: "string", Format: "uuid"},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Clinics and assistants", "Options"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
}

var schemas = map[string]*openapi.Schema{
	"Clinic": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":   {Type: "string", Format: "uuid"},
			"name": {Type: "string"},
		},
	},
	"Assistant": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":        {Type: "string", Format: "uuid"},
			"name":      {Type: "string"},
			"clinic_id": {Type: "string", Format: "uuid"},
		},
	},
	"Options": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"clinics":    {Type: "array", Items: openapi.SchemaRef("Clinic")},
			"assistants": {Type: "array", Items: openapi.SchemaRef("Assistant")},
		},
	},
}
