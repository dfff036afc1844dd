package calls

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/callqa/pkg/pagination"
	"github.com/JaimeStill/callqa/pkg/query"
	"github.com/JaimeStill/callqa/pkg/storage"
)

// System defines the public contract for call domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// List returns one page of calls matching filters, with the total match count.
	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Call], error)

	// All returns every call matching filters in the given sort order.
	All(ctx context.Context, filters Filters, sort []query.SortField) ([]Call, error)

	Find(ctx context.Context, id uuid.UUID) (*Call, error)

	// Evaluate records a human evaluation and returns the updated call.
	Evaluate(ctx context.Context, id uuid.UUID, cmd EvaluateCommand) (*Call, error)

	// Recording opens the call's audio recording. The caller must close the blob body.
	Recording(ctx context.Context, id uuid.UUID) (*storage.Blob, error)
}
