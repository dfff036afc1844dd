package calls

import "github.com/JaimeStill/callqa/pkg/query"

var (
	RecordingKey  = recordingKey
	BuildWorkbook = buildWorkbook
)

func QuerySQL(filters Filters, sort []query.SortField) (string, []any) {
	return newQuery(filters, sort).Build()
}

func PageSQL(filters Filters, sort []query.SortField, page, size int) (string, []any) {
	return newQuery(filters, sort).BuildPage(page, size)
}
