package postgres

import (
	"context"

	"github.com/ngocxb/caseflow/internal/core/evaluation"
	pgdb "github.com/ngocxb/caseflow/internal/platform/db/postgres"
)

// EvaluationOptionRepository loads the configured scoring options. It is the
// evaluation.Source behind the catalog cache.
type EvaluationOptionRepository struct {
	pool pgdb.Queryer
}

// NewEvaluationOptionRepository wires an EvaluationOptionRepository.
func NewEvaluationOptionRepository(pool pgdb.Queryer) *EvaluationOptionRepository {
	return &EvaluationOptionRepository{pool: pool}
}

// LoadOptions reads every configured option. Ordering by category then
// points keeps pick lists stable without client-side sorting.
func (r *EvaluationOptionRepository) LoadOptions(ctx context.Context) ([]evaluation.Option, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, category, points, label
          FROM evaluation_options
         ORDER BY category ASC, points ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []evaluation.Option
	for rows.Next() {
		var (
			opt      evaluation.Option
			category string
		)
		if err := rows.Scan(&opt.ID, &category, &opt.Points, &opt.Label); err != nil {
			return nil, err
		}
		opt.Category = evaluation.Category(category)
		out = append(out, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
