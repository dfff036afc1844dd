package calls

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/callqa/pkg/cache"
	"github.com/JaimeStill/callqa/pkg/pagination"
	"github.com/JaimeStill/callqa/pkg/query"
	"github.com/JaimeStill/callqa/pkg/repository"
	"github.com/JaimeStill/callqa/pkg/storage"
)

var evaluations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "callqa_evaluations_total",
		Help: "Evaluation writes partitioned by result.",
	},
	[]string{"result"},
)

const evaluateSQL = `
	UPDATE calls
	SET evaluation_score_human = $1,
		evaluation_comment_human = $2,
		comments_engineer = $3,
		evaluated = true
	WHERE id = $4`

type repo struct {
	db         *sql.DB
	storage    storage.System
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a call repository implementing the System interface.
// The cache is invalidated after every evaluation write.
func New(
	db *sql.DB,
	store storage.System,
	c cache.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		cache:      c,
		logger:     logger.With("system", "calls"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Call], error) {
	page.Normalize(r.pagination)

	qb := newQuery(filters, page.Sort)
	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	var (
		total int
		calls []Call
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := repository.QueryCount(gctx, r.db, countSQL, countArgs)
		if err != nil {
			return fmt.Errorf("count calls: %w", repository.MapReadError(err))
		}
		total = n
		return nil
	})

	g.Go(func() error {
		rows, err := repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanCall)
		if err != nil {
			return fmt.Errorf("query calls: %w", repository.MapReadError(err))
		}
		calls = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(calls, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) All(ctx context.Context, filters Filters, sort []query.SortField) ([]Call, error) {
	q, args := newQuery(filters, sort).Build()

	calls, err := repository.QueryMany(ctx, r.db, q, args, scanCall)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", repository.MapReadError(err))
	}
	return calls, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Call, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCall)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}
	return &c, nil
}

func (r *repo) Evaluate(ctx context.Context, id uuid.UUID, cmd EvaluateCommand) (*Call, error) {
	if err := validate.Struct(cmd); err != nil {
		evaluations.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: evaluation_score_human is required", ErrInvalidEvaluation)
	}

	findSQL, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Call, error) {
		if err := repository.ExecExpectOne(
			ctx, tx, evaluateSQL,
			*cmd.HumanScore,
			cmd.HumanComment,
			cmd.EngineerComments,
			id,
		); err != nil {
			return Call{}, err
		}
		return repository.QueryOne(ctx, tx, findSQL, findArgs, scanCall)
	})

	if err != nil {
		err = repository.MapError(err, ErrNotFound)
		evaluations.WithLabelValues(evaluationResult(err)).Inc()
		return nil, err
	}

	evaluations.WithLabelValues("success").Inc()

	if err := r.cache.Invalidate(ctx); err != nil {
		r.logger.Warn("cache invalidation failed after evaluation", "id", id, "error", err)
	}

	r.logger.Info("call evaluated", "id", id, "human_score", *cmd.HumanScore)
	return &c, nil
}

func (r *repo) Recording(ctx context.Context, id uuid.UUID) (*storage.Blob, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.AudioURL == nil {
		return nil, ErrRecordingUnavailable
	}

	key := recordingKey(*c.AudioURL)
	if key == "" {
		return nil, ErrRecordingUnavailable
	}

	blob, err := r.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download recording: %w", err)
	}
	return blob, nil
}

// recordingKey resolves a stored audio_url to a blob key. A bare key is used as-is;
// for a blob URL the leading container segment of the path is dropped.
func recordingKey(audioURL string) string {
	audioURL = strings.TrimSpace(audioURL)

	u, err := url.Parse(audioURL)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(audioURL, "/")
	}

	_, key, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	return key
}

func evaluationResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
