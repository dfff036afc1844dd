package clinics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/callqa/pkg/query"
	"github.com/JaimeStill/callqa/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a clinic repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "clinics"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Options(ctx context.Context, clinicID *uuid.UUID) (*Options, error) {
	clinicSQL, clinicArgs := clinicsQuery()
	assistantSQL, assistantArgs := assistantsQuery(clinicID)

	opts := &Options{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := repository.QueryMany(gctx, r.db, clinicSQL, clinicArgs, scanClinic)
		if err != nil {
			return fmt.Errorf("query clinics: %w", repository.MapReadError(err))
		}
		opts.Clinics = rows
		return nil
	})

	g.Go(func() error {
		rows, err := repository.QueryMany(gctx, r.db, assistantSQL, assistantArgs, scanAssistant)
		if err != nil {
			return fmt.Errorf("query assistants: %w", repository.MapReadError(err))
		}
		opts.Assistants = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Clinics == nil {
		opts.Clinics = []Clinic{}
	}
	if opts.Assistants == nil {
		opts.Assistants = []Assistant{}
	}
	return opts, nil
}

func clinicsQuery() (string, []any) {
	return query.NewBuilder(clinicProjection, byName).Tiebreak("ID").Build()
}

func assistantsQuery(clinicID *uuid.UUID) (string, []any) {
	return query.NewBuilder(assistantProjection, byName).
		Tiebreak("ID").
		WhereEquals("ClinicID", clinicID).
		Build()
}
