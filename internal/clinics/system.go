package clinics

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for clinic reference data.
type System interface {
	Handler() *Handler

	// Options returns all clinics ordered by name, and the assistants of
	// clinicID ordered by name. A nil clinicID returns every assistant.
	Options(ctx context.Context, clinicID *uuid.UUID) (*Options, error)
}
