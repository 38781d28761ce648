package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ngocxb/caseflow/internal/core/taxonomy"
	pgdb "github.com/ngocxb/caseflow/internal/platform/db/postgres"
)

const caseTypeColumns = `id, kind, name, description, active, created_at, updated_at`

// CaseTypeRepository persists case types in PostgreSQL.
type CaseTypeRepository struct {
	pool pgdb.Queryer
}

// NewCaseTypeRepository wires a CaseTypeRepository.
func NewCaseTypeRepository(pool pgdb.Queryer) *CaseTypeRepository {
	return &CaseTypeRepository{pool: pool}
}

// Create inserts a case type.
func (r *CaseTypeRepository) Create(ctx context.Context, t *taxonomy.Type) (*taxonomy.Type, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := exec.QueryRow(ctx, `
        INSERT INTO case_types (id, kind, name, description, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+caseTypeColumns,
		id,
		string(t.Kind),
		t.Name,
		nullableString(t.Description),
		t.Active,
		t.CreatedAt,
		t.UpdatedAt,
	)

	created, err := scanCaseType(row)
	if err != nil {
		return nil, translateCaseTypePgError(err)
	}
	return created, nil
}

// Update rewrites a case type's mutable columns.
func (r *CaseTypeRepository) Update(ctx context.Context, t *taxonomy.Type) (*taxonomy.Type, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE case_types
           SET name = $1,
               description = $2,
               active = $3,
               updated_at = $4
         WHERE id = $5
        RETURNING `+caseTypeColumns,
		t.Name,
		nullableString(t.Description),
		t.Active,
		t.UpdatedAt,
		t.ID,
	)

	updated, err := scanCaseType(row)
	if err != nil {
		return nil, translateCaseTypePgError(err)
	}
	return updated, nil
}

// Delete removes a case type.
func (r *CaseTypeRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM case_types WHERE id = $1`, id)
	if err != nil {
		return translateCaseTypePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return taxonomy.ErrTypeNotFound
	}
	return nil
}

// FindByID fetches one case type.
func (r *CaseTypeRepository) FindByID(ctx context.Context, id string) (*taxonomy.Type, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+caseTypeColumns+`
          FROM case_types
         WHERE id = $1
         LIMIT 1`, id)

	found, err := scanCaseType(row)
	if err != nil {
		return nil, translateCaseTypePgError(err)
	}
	return found, nil
}

// List returns case types ordered by name. Inactive rows stay listed unless
// the filter asks for active entries only.
func (r *CaseTypeRepository) List(ctx context.Context, filter taxonomy.ListTypesFilter) ([]*taxonomy.Type, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	query := `SELECT ` + caseTypeColumns + ` FROM case_types`
	var (
		conditions []string
		args       []any
	)
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateCaseTypePgError(err)
	}
	defer rows.Close()

	var out []*taxonomy.Type
	for rows.Next() {
		t, err := scanCaseType(rows)
		if err != nil {
			return nil, translateCaseTypePgError(err)
		}
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, translateCaseTypePgError(err)
	}

	return out, nil
}

func scanCaseType(row pgx.Row) (*taxonomy.Type, error) {
	var (
		id          string
		kind        string
		name        string
		description sql.NullString
		active      bool
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &kind, &name, &description, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, taxonomy.ErrTypeNotFound
		}
		return nil, err
	}

	return &taxonomy.Type{
		ID:          id,
		Kind:        taxonomy.Kind(kind),
		Name:        name,
		Description: nullStringPtr(description),
		Active:      active,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func translateCaseTypePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return taxonomy.ErrTypeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return taxonomy.ErrNameAlreadyExists
	}

	return err
}
