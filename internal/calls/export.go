package calls

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/JaimeStill/callqa/pkg/formatting"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Calls"
)

var exportHeader = []string{
	"id", "call_id", "clinic", "assistant", "agent_type",
	"call_start_time", "duration", "call_reason",
	"human_score", "llm_score", "evaluated",
	"human_comment", "llm_comment", "comments_engineer", "reviewer",
}

// buildWorkbook renders calls as a single-sheet workbook, one row per call
// below a header row. The caller must close the returned file.
func buildWorkbook(calls []Call) (*excelize.File, error) {
	xl := excelize.NewFile()

	if err := xl.SetSheetName(xl.GetSheetName(0), exportSheet); err != nil {
		xl.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := xl.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		xl.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, c := range calls {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			xl.Close()
			return nil, err
		}

		row := exportRow(c)
		if err := xl.SetSheetRow(exportSheet, cell, &row); err != nil {
			xl.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return xl, nil
}

func exportRow(c Call) []string {
	duration := ""
	if c.Duration != nil {
		duration = formatting.Duration(*c.Duration)
	}

	return []string{
		c.ID.String(),
		c.CallID,
		c.ClinicName,
		c.AssistantName,
		string(c.AgentType),
		formatting.Timestamp(c.CallStartTime),
		duration,
		deref(c.CallReason),
		formatting.Score(c.EvaluationScoreHuman),
		formatting.Score(c.EvaluationScoreLLM),
		strconv.FormatBool(c.Evaluated),
		deref(c.EvaluationCommentHuman),
		deref(c.EvaluationCommentLLM),
		deref(c.CommentsEngineer),
		deref(c.Reviewer),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
