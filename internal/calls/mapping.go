package calls

import (
	"github.com/JaimeStill/callqa/pkg/query"
	"github.com/JaimeStill/callqa/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "calls", "c").
	Project("id", "ID").
	Project("call_id", "CallID").
	Project("clinic_id", "ClinicID").
	Project("assistant_id", "AssistantID").
	Project("agent_type", "AgentType").
	Project("call_start_time", "CallStartTime").
	Project("call_end_time", "CallEndTime").
	Project("duration", "Duration").
	Project("call_reason", "CallReason").
	Project("summary", "Summary").
	Project("audio_url", "AudioURL").
	Project("transcript", "Transcript").
	Project("evaluated", "Evaluated").
	Project("qa_check", "QACheck").
	Project("reviewer", "Reviewer").
	Project("comments_engineer", "CommentsEngineer").
	Project("evaluation_score_human", "EvaluationScoreHuman").
	Project("evaluation_comment_human", "EvaluationCommentHuman").
	Project("evaluation_score_llm", "EvaluationScoreLLM").
	Project("evaluation_comment_llm", "EvaluationCommentLLM").
	Project("created_at", "CreatedAt").
	Join("public", "clinics", "cl", "JOIN", "cl.id = c.clinic_id").
	Project("name", "ClinicName").
	Join("public", "assistants", "a", "JOIN", "a.id = c.assistant_id").
	Project("name", "AssistantName")

var defaultSort = query.SortField{
	Field:      "CallStartTime",
	Descending: true,
}

// sortKeys maps the public sort keys to projection fields. Keys outside this
// set are dropped before the query is built.
var sortKeys = map[string]string{
	"call_start_time": "CallStartTime",
	"assistant_name":  "AssistantName",
	"clinic_name":     "ClinicName",
	"duration":        "Duration",
	"human_score":     "EvaluationScoreHuman",
	"llm_score":       "EvaluationScoreLLM",
	"agent_type":      "AgentType",
}

// resolveSort translates public sort keys to projection fields, dropping unknown keys.
func resolveSort(fields []query.SortField) []query.SortField {
	resolved := make([]query.SortField, 0, len(fields))
	for _, f := range fields {
		if name, ok := sortKeys[f.Field]; ok {
			resolved = append(resolved, query.SortField{Field: name, Descending: f.Descending})
		}
	}
	return resolved
}

func newQuery(filters Filters, sort []query.SortField) *query.Builder {
	qb := query.
		NewBuilder(projection, defaultSort).
		Tiebreak("ID")

	filters.Apply(qb)

	if resolved := resolveSort(sort); len(resolved) > 0 {
		qb.OrderByFields(resolved)
	}

	return qb
}

func scanCall(s repository.Scanner) (Call, error) {
	var c Call
	err := s.Scan(
		&c.ID,
		&c.CallID,
		&c.ClinicID,
		&c.AssistantID,
		&c.AgentType,
		&c.CallStartTime,
		&c.CallEndTime,
		&c.Duration,
		&c.CallReason,
		&c.Summary,
		&c.AudioURL,
		&c.Transcript,
		&c.Evaluated,
		&c.QACheck,
		&c.Reviewer,
		&c.CommentsEngineer,
		&c.EvaluationScoreHuman,
		&c.EvaluationCommentHuman,
		&c.EvaluationScoreLLM,
		&c.EvaluationCommentLLM,
		&c.CreatedAt,
		&c.ClinicName,
		&c.AssistantName,
	)
	return c, err
}
