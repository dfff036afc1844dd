package calls

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JaimeStill/callqa/pkg/query"
)

// EvaluationStatus selects calls by whether a human score has been recorded.
type EvaluationStatus string

const (
	StatusPending   EvaluationStatus = "pending"
	StatusEvaluated EvaluationStatus = "evaluated"
	statusAll       EvaluationStatus = "all"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Filters selects the set of calls shown in the list and summarised by metrics.
// Nil fields are unset; the zero value matches every call.
//
// EndDay marks an end bound given as a calendar date (YYYY-MM-DD), which
// covers that whole day. Any other end bound is an inclusive instant, midnight
// included. Search is matched trimmed and a blank search is unset.
type Filters struct {
	ClinicID         *uuid.UUID
	AssistantID      *uuid.UUID
	StartDate        *time.Time
	EndDate          *time.Time
	EndDay           bool
	Search           *string
	EvaluationStatus *EvaluationStatus
}

// filterInput is the raw, string-valued form shared by query strings and JSON bodies.
type filterInput struct {
	ClinicID         string `json:"clinic_id" validate:"omitempty,uuid"`
	AssistantID      string `json:"assistant_id" validate:"omitempty,uuid"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Search           string `json:"search"`
	EvaluationStatus string `json:"evaluation_status" validate:"omitempty,oneof=pending evaluated all"`
}

// FiltersFromQuery parses filter values from URL query parameters.
// Empty values are unset. Malformed values return an error wrapping ErrInvalidFilter.
func FiltersFromQuery(values url.Values) (Filters, error) {
	return filterInput{
		ClinicID:         values.Get("clinic_id"),
		AssistantID:      values.Get("assistant_id"),
		StartDate:        values.Get("start_date"),
		EndDate:          values.Get("end_date"),
		Search:           values.Get("search"),
		EvaluationStatus: values.Get("evaluation_status"),
	}.parse()
}

// UnmarshalJSON decodes the flat JSON form using the same keys and rules as FiltersFromQuery.
func (f *Filters) UnmarshalJSON(data []byte) error {
	var in filterInput
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	parsed, err := in.parse()
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON encodes the filters in the same flat form they are parsed from.
func (f Filters) MarshalJSON() ([]byte, error) {
	out := make(map[string]string)
	for k, v := range f.Values() {
		out[k] = v[0]
	}
	return json.Marshal(out)
}

// Values serialises the set fields to query parameters.
// FiltersFromQuery(f.Values()) reconstructs an equal Filters for any filters
// whose evaluation status is pending, evaluated or all.
func (f Filters) Values() url.Values {
	f = f.canonical()
	v := url.Values{}
	if f.ClinicID != nil {
		v.Set("clinic_id", f.ClinicID.String())
	}
	if f.AssistantID != nil {
		v.Set("assistant_id", f.AssistantID.String())
	}
	if f.StartDate != nil {
		v.Set("start_date", formatDate(*f.StartDate, isMidnightUTC(*f.StartDate)))
	}
	if f.EndDate != nil {
		v.Set("end_date", formatDate(*f.EndDate, f.EndDay))
	}
	if f.Search != nil {
		v.Set("search", *f.Search)
	}
	if f.EvaluationStatus != nil {
		v.Set("evaluation_status", string(*f.EvaluationStatus))
	}
	return v
}

// Key returns a canonical encoding of the filters, stable across field order.
func (f Filters) Key() string {
	return f.Values().Encode()
}

// Equal reports whether both filter sets select the same criteria.
func (f Filters) Equal(other Filters) bool {
	f, other = f.canonical(), other.canonical()
	return equalPtr(f.ClinicID, other.ClinicID) &&
		equalPtr(f.AssistantID, other.AssistantID) &&
		equalTime(f.StartDate, other.StartDate) &&
		equalTime(f.EndDate, other.EndDate) &&
		f.EndDay == other.EndDay &&
		equalPtr(f.Search, other.Search) &&
		equalPtr(f.EvaluationStatus, other.EvaluationStatus)
}

// Apply adds the filter predicates to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	f = f.canonical()
	b.
		WhereEquals("ClinicID", f.ClinicID).
		WhereEquals("AssistantID", f.AssistantID).
		WhereGTE("CallStartTime", f.StartDate).
		WhereSearch(f.Search, "Transcript", "CallID", "AssistantName", "ClinicName")

	if f.EndDate != nil {
		if f.EndDay {
			b.WhereLT("CallStartTime", f.EndDate.AddDate(0, 0, 1))
		} else {
			b.WhereLTE("CallStartTime", f.EndDate)
		}
	}

	if f.EvaluationStatus != nil {
		switch *f.EvaluationStatus {
		case StatusPending:
			b.WhereNull("EvaluationScoreHuman")
		case StatusEvaluated:
			b.WhereNotNull("EvaluationScoreHuman")
		}
	}

	return b
}

func (in filterInput) parse() (Filters, error) {
	in = in.trimmed()

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Filters{}, fmt.Errorf("%w: %s", ErrInvalidFilter, fieldMessage(verrs[0]))
		}
		return Filters{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	var f Filters

	if in.ClinicID != "" {
		id := uuid.MustParse(in.ClinicID)
		f.ClinicID = &id
	}
	if in.AssistantID != "" {
		id := uuid.MustParse(in.AssistantID)
		f.AssistantID = &id
	}

	if in.StartDate != "" {
		t, err := parseDate(in.StartDate)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: start_date: %w", ErrInvalidFilter, err)
		}
		f.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := parseDate(in.EndDate)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: end_date: %w", ErrInvalidFilter, err)
		}
		f.EndDate = &t
		f.EndDay = isDateOnly(in.EndDate)
	}

	if in.Search != "" {
		s := in.Search
		f.Search = &s
	}

	if in.EvaluationStatus != "" {
		status := EvaluationStatus(strings.ToLower(in.EvaluationStatus))
		if status != statusAll {
			f.EvaluationStatus = &status
		}
	}

	return f, nil
}

func (in filterInput) trimmed() filterInput {
	return filterInput{
		ClinicID:         strings.ToLower(strings.TrimSpace(in.ClinicID)),
		AssistantID:      strings.ToLower(strings.TrimSpace(in.AssistantID)),
		StartDate:        strings.TrimSpace(in.StartDate),
		EndDate:          strings.TrimSpace(in.EndDate),
		Search:           strings.TrimSpace(in.Search),
		EvaluationStatus: strings.ToLower(strings.TrimSpace(in.EvaluationStatus)),
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "uuid":
		return fe.Field() + " must be a UUID"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	}
	return fe.Field() + " is invalid"
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339: %q", s)
	}
	return t, nil
}

// canonical trims the search, drops a blank search or an "all" status and
// lowercases the status, matching what parsing produces. A calendar-day end
// bound is reduced to its date.
func (f Filters) canonical() Filters {
	if f.Search != nil {
		s := strings.TrimSpace(*f.Search)
		if s == "" {
			f.Search = nil
		} else {
			f.Search = &s
		}
	}
	if f.EvaluationStatus != nil {
		status := EvaluationStatus(strings.ToLower(strings.TrimSpace(string(*f.EvaluationStatus))))
		if status == "" || status == statusAll {
			f.EvaluationStatus = nil
		} else {
			f.EvaluationStatus = &status
		}
	}
	switch {
	case f.EndDate == nil:
		f.EndDay = false
	case f.EndDay:
		y, m, d := f.EndDate.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		f.EndDate = &day
	}
	return f
}

func formatDate(t time.Time, day bool) string {
	if day {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func isDateOnly(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// isMidnightUTC reports whether a start bound can be written as a plain date
// without changing the instant it denotes.
func isMidnightUTC(t time.Time) bool {
	_, offset := t.Zone()
	h, m, s := t.Clock()
	return offset == 0 && h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
