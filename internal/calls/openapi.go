package calls

import "github.com/JaimeStill/callqa/pkg/openapi"

// FilterParams documents the query parameters accepted by FiltersFromQuery.
func FilterParams() []*openapi.Parameter {
	status := openapi.QueryParam("evaluation_status", "string", "Evaluation status", false)
	status.Schema.Enum = []any{"all", "pending", "evaluated"}

	clinic := openapi.QueryParam("clinic_id", "string", "Restrict to one clinic", false)
	clinic.Schema.Format = "uuid"
	assistant := openapi.QueryParam("assistant_id", "string", "Restrict to one assistant", false)
	assistant.Schema.Format = "uuid"

	return []*openapi.Parameter{
		clinic,
		assistant,
		openapi.QueryParam("start_date", "string", "Inclusive lower bound on call start (YYYY-MM-DD or RFC 3339)", false),
		openapi.QueryParam("end_date", "string", "Inclusive upper bound on call start. A bare date covers the whole day", false),
		openapi.QueryParam("search", "string", "Case-insensitive match on transcript, call id, assistant, or clinic name", false),
		status,
	}
}

func pageParams() []*openapi.Parameter {
	sortBy := openapi.QueryParam("sort_by", "string", "Sort key", false)
	sortBy.Schema.Enum = sortKeyEnum()

	return []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort keys. Prefix with - for descending", false),
		sortBy,
		openapi.QueryParam("sort_order", "string", "asc or desc", false),
	}
}

func sortKeyEnum() []any {
	keys := SortKeys()
	enum := make([]any, len(keys))
	for i, k := range keys {
		enum[i] = k
	}
	return enum
}

var spec = struct {
	List      *openapi.Operation
	Search    *openapi.Operation
	Export    *openapi.Operation
	Find      *openapi.Operation
	Recording *openapi.Operation
	Evaluate  *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:    "List calls",
		Parameters: append(pageParams(), FilterParams()...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of calls", "CallPage"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search calls",
		Description: "Accepts pagination, sort, and filter fields as a JSON body.",
		RequestBody: openapi.RequestBodyJSON("CallSearch", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of calls", "CallPage"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
	Export: &openapi.Operation{
		Summary:    "Export calls",
		Parameters: FilterParams(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("XLSX workbook of matching calls", xlsxContentType),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find call",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Call ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Call", "Call"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Recording: &openapi.Operation{
		Summary:    "Stream call recording",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Call ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Recording audio", "application/octet-stream"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Evaluate: &openapi.Operation{
		Summary:     "Evaluate call",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Call ID")},
		RequestBody: openapi.RequestBodyJSON("EvaluateCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated call", "Call"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
}

var schemas = map[string]*openapi.Schema{
	"Call": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                       {Type: "string", Format: "uuid"},
			"call_id":                  {Type: "string", Description: "External call identifier"},
			"clinic_id":                {Type: "string", Format: "uuid"},
			"clinic_name":              {Type: "string"},
			"assistant_id":             {Type: "string", Format: "uuid"},
			"assistant_name":           {Type: "string"},
			"agent_type":               {Type: "string", Enum: []any{"inbound", "outbound"}},
			"call_start_time":          {Type: "string", Format: "date-time"},
			"call_end_time":            {Type: "string", Format: "date-time"},
			"duration":                 {Type: "integer", Description: "Seconds"},
			"call_reason":              {Type: "string"},
			"summary":                  {Type: "string"},
			"audio_url":                {Type: "string"},
			"transcript":               {Type: "string"},
			"evaluated":                {Type: "boolean"},
			"qa_check":                 {Type: "boolean"},
			"reviewer":                 {Type: "string"},
			"comments_engineer":        {Type: "string"},
			"evaluation_score_human":   {Type: "number"},
			"evaluation_comment_human": {Type: "string"},
			"evaluation_score_llm":     {Type: "number"},
			"evaluation_comment_llm":   {Type: "string"},
			"created_at":               {Type: "string", Format: "date-time"},
		},
	},
	"CallPage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Call")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	},
	"CallSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":              {Type: "integer"},
			"page_size":         {Type: "integer"},
			"sort":              {Type: "string"},
			"sort_by":           {Type: "string"},
			"sort_order":        {Type: "string", Enum: []any{"asc", "desc"}},
			"clinic_id":         {Type: "string", Format: "uuid"},
			"assistant_id":      {Type: "string", Format: "uuid"},
			"start_date":        {Type: "string"},
			"end_date":          {Type: "string"},
			"search":            {Type: "string"},
			"evaluation_status": {Type: "string", Enum: []any{"all", "pending", "evaluated"}},
		},
	},
	"EvaluateCommand": {
		Type:     "object",
		Required: []string{"evaluation_score_human"},
		Properties: map[string]*openapi.Schema{
			"evaluation_score_human":   {Type: "number", Description: "Reviewer score"},
			"evaluation_comment_human": {Type: "string"},
			"comments_engineer":        {Type: "string"},
		},
	},
}
