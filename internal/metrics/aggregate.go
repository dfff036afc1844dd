// Package metrics computes evaluation KPIs and performance rankings over
// the calls selected by a filter.
package metrics

import (
	"cmp"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/JaimeStill/callqa/internal/calls"
)

// Scoring holds the score boundaries Aggregate applies.
type Scoring struct {
	SuccessThreshold     float64
	DiscrepancyThreshold float64
}

// Summary is the KPI payload for a candidate set of calls.
// Rates are fractions in [0, 1].
type Summary struct {
	TotalCalls          int          `json:"total_calls"`
	SuccessRate         float64      `json:"success_rate"`
	AvgHumanScore       float64      `json:"avg_human_score"`
	AvgLLMScore         float64      `json:"avg_llm_score"`
	EvaluatedRate       float64      `json:"evaluated_rate"`
	AvgScoreDifference  float64      `json:"avg_score_difference"`
	HighDiscrepancyRate float64      `json:"high_discrepancy_rate"`
	ScoresOverTime      []DailyScore `json:"scores_over_time"`
	ScoresByAssistant   []NameScore  `json:"scores_by_assistant"`
	ScoresByClinic      []NameScore  `json:"scores_by_clinic"`
}

// DailyScore is the mean human and LLM score of the calls started on Date (UTC).
type DailyScore struct {
	Date          string  `json:"date"`
	AvgHumanScore float64 `json:"avg_human_score"`
	AvgLLMScore   float64 `json:"avg_llm_score"`
}

// NameScore is the mean human score of one assistant or clinic.
type NameScore struct {
	Name     string  `json:"name"`
	AvgScore float64 `json:"avg_score"`
}

// Ranking summarises the human-scored calls of one clinic or assistant.
type Ranking struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Calls    int       `json:"calls"`
	AvgScore float64   `json:"avg_score"`
}

// Dimension selects the entity a Ranking groups by.
type Dimension int

const (
	ByClinic Dimension = iota
	ByAssistant
)

// score treats a missing value as zero.
func score(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// scored reports whether v is present and non-zero. Zero cannot be told apart
// from an absent score on the evaluation scale.
func scored(v *float64) bool {
	return v != nil && *v != 0
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// Aggregate computes the KPI summary of cs. It performs no I/O.
// An empty candidate set yields zero rates and empty breakdowns.
func Aggregate(cs []calls.Call, s Scoring) Summary {
	summary := Summary{
		TotalCalls:        len(cs),
		ScoresOverTime:    []DailyScore{},
		ScoresByAssistant: []NameScore{},
		ScoresByClinic:    []NameScore{},
	}
	if len(cs) == 0 {
		return summary
	}

	var (
		successes, evaluated int
		human, llm, diff     mean
		discrepancies        int
		daily                = make(map[string]*[2]mean)
		byAssistant          = make(map[string]*mean)
		byClinic             = make(map[string]*mean)
	)

	for _, c := range cs {
		h, l := score(c.EvaluationScoreHuman), score(c.EvaluationScoreLLM)

		human.add(h)
		llm.add(l)
		if h >= s.SuccessThreshold {
			successes++
		}
		if c.Evaluated {
			evaluated++
		}

		if scored(c.EvaluationScoreHuman) && scored(c.EvaluationScoreLLM) {
			d := math.Abs(h - l)
			diff.add(d)
			if d >= s.DiscrepancyThreshold {
				discrepancies++
			}
		}

		day := c.CallStartTime.UTC().Format("2006-01-02")
		if daily[day] == nil {
			daily[day] = &[2]mean{}
		}
		daily[day][0].add(h)
		daily[day][1].add(l)

		if scored(c.EvaluationScoreHuman) {
			group(byAssistant, c.AssistantName).add(h)
			group(byClinic, c.ClinicName).add(h)
		}
	}

	n := float64(len(cs))
	summary.SuccessRate = float64(successes) / n
	summary.AvgHumanScore = human.value()
	summary.AvgLLMScore = llm.value()
	summary.EvaluatedRate = float64(evaluated) / n
	summary.AvgScoreDifference = diff.value()
	if diff.count > 0 {
		summary.HighDiscrepancyRate = float64(discrepancies) / float64(diff.count)
	}

	for day, m := range daily {
		summary.ScoresOverTime = append(summary.ScoresOverTime, DailyScore{
			Date:          day,
			AvgHumanScore: m[0].value(),
			AvgLLMScore:   m[1].value(),
		})
	}
	slices.SortFunc(summary.ScoresOverTime, func(a, b DailyScore) int {
		return cmp.Compare(a.Date, b.Date)
	})

	summary.ScoresByAssistant = nameScores(byAssistant)
	summary.ScoresByClinic = nameScores(byClinic)

	return summary
}

func group(groups map[string]*mean, name string) *mean {
	m, ok := groups[name]
	if !ok {
		m = &mean{}
		groups[name] = m
	}
	return m
}

func nameScores(groups map[string]*mean) []NameScore {
	out := make([]NameScore, 0, len(groups))
	for name, m := range groups {
		out = append(out, NameScore{Name: name, AvgScore: m.value()})
	}
	slices.SortFunc(out, func(a, b NameScore) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Rank groups the calls carrying a human score by clinic or assistant and
// orders the groups by average score, highest first, then by name.
func Rank(cs []calls.Call, by Dimension) []Ranking {
	type entry struct {
		name string
		m    mean
	}
	groups := make(map[uuid.UUID]*entry)

	for _, c := range cs {
		if c.EvaluationScoreHuman == nil {
			continue
		}

		id, name := c.ClinicID, c.ClinicName
		if by == ByAssistant {
			id, name = c.AssistantID, c.AssistantName
		}

		e, ok := groups[id]
		if !ok {
			e = &entry{name: name}
			groups[id] = e
		}
		e.m.add(*c.EvaluationScoreHuman)
	}

	out := make([]Ranking, 0, len(groups))
	for id, e := range groups {
		out = append(out, Ranking{
			ID:       id,
			Name:     e.name,
			Calls:    e.m.count,
			AvgScore: e.m.value(),
		})
	}
	slices.SortFunc(out, func(a, b Ranking) int {
		return cmp.Or(
			cmp.Compare(b.AvgScore, a.AvgScore),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID.String(), b.ID.String()),
		)
	})
	return out
}
