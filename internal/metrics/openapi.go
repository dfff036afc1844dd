package metrics

import (
	"github.com/JaimeStill/callqa/internal/calls"
	"github.com/JaimeStill/callqa/pkg/openapi"
)

func rankingOperation(summary string) *openapi.Operation {
	return &openapi.Operation{
		Summary:     summary,
		Description: "Groups human-scored calls and orders them by average score, highest first.",
		Parameters:  calls.FilterParams(),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Ranking",
				Content: map[string]*openapi.MediaType{
					"application/json": {
						Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Ranking")},
					},
				},
			},
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	}
}

var spec = struct {
	Summary    *openapi.Operation
	Clinics    *openapi.Operation
	Assistants *openapi.Operation
}{
	Summary: &openapi.Operation{
		Summary:    "Evaluation KPIs",
		Parameters: calls.FilterParams(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("KPI summary", "MetricsSummary"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
	Clinics:    rankingOperation("Clinic ranking"),
	Assistants: rankingOperation("Assistant ranking"),
}

var schemas = map[string]*openapi.Schema{
	"MetricsSummary": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"total_calls":           {Type: "integer"},
			"success_rate":          {Type: "number", Description: "Share of calls at or above the success threshold"},
			"avg_human_score":       {Type: "number"},
			"avg_llm_score":         {Type: "number"},
			"evaluated_rate":        {Type: "number"},
			"avg_score_difference":  {Type: "number", Description: "Mean absolute human/LLM gap over calls scored by both"},
			"high_discrepancy_rate": {Type: "number"},
			"scores_over_time": {Type: "array", Items: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"date":            {Type: "string", Format: "date"},
					"avg_human_score": {Type: "number"},
					"avg_llm_score":   {Type: "number"},
				},
			}},
			"scores_by_assistant": {Type: "array", Items: openapi.SchemaRef("NameScore")},
			"scores_by_clinic":    {Type: "array", Items: openapi.SchemaRef("NameScore")},
		},
	},
	"NameScore": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":      {Type: "string"},
			"avg_score": {Type: "number"},
		},
	},
	"Ranking": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":        {Type: "string", Format: "uuid"},
			"name":      {Type: "string"},
			"calls":     {Type: "integer", Description: "Human-scored calls"},
			"avg_score": {Type: "number"},
		},
	},
}
