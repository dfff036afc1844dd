// Package calls implements the call record domain for CallQA.
// It provides the call read model, filtering and sorting over the call store,
// and the human evaluation write.
package calls

import (
	"time"

	"github.com/google/uuid"
)

// AgentType distinguishes inbound from outbound assistant calls.
type AgentType string

const (
	AgentInbound  AgentType = "inbound"
	AgentOutbound AgentType = "outbound"
)

// Call is the read model for a call record. ClinicName and AssistantName are
// always resolved from the clinic and assistant tables.
// A nil score means the call has not been evaluated by that party.
type Call struct {
	ID                     uuid.UUID  `json:"id"`
	CallID                 string     `json:"call_id"`
	ClinicID               uuid.UUID  `json:"clinic_id"`
	ClinicName             string     `json:"clinic_name"`
	AssistantID            uuid.UUID  `json:"assistant_id"`
	AssistantName          string     `json:"assistant_name"`
	AgentType              AgentType  `json:"agent_type"`
	CallStartTime          time.Time  `json:"call_start_time"`
	CallEndTime            *time.Time `json:"call_end_time"`
	Duration               *int       `json:"duration"`
	CallReason             *string    `json:"call_reason"`
	Summary                *string    `json:"summary"`
	AudioURL               *string    `json:"audio_url"`
	Transcript             *string    `json:"transcript"`
	Evaluated              bool       `json:"evaluated"`
	QACheck                bool       `json:"qa_check"`
	Reviewer               *string    `json:"reviewer"`
	CommentsEngineer       *string    `json:"comments_engineer"`
	EvaluationScoreHuman   *float64   `json:"evaluation_score_human"`
	EvaluationCommentHuman *string    `json:"evaluation_comment_human"`
	EvaluationScoreLLM     *float64   `json:"evaluation_score_llm"`
	EvaluationCommentLLM   *string    `json:"evaluation_comment_llm"`
	CreatedAt              time.Time  `json:"created_at"`
}

// EvaluateCommand carries a reviewer's evaluation of a single call.
// HumanScore must be present; its range is not checked.
type EvaluateCommand struct {
	HumanScore       *float64 `json:"evaluation_score_human" validate:"required"`
	HumanComment     string   `json:"evaluation_comment_human"`
	EngineerComments string   `json:"comments_engineer"`
}
