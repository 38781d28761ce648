package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ngocxb/caseflow/internal/core/customer"
	pgdb "github.com/ngocxb/caseflow/internal/platform/db/postgres"
)

const customerColumns = `id, name, code, status, contact_email, created_at, updated_at`

// CustomerRepository persists customers in PostgreSQL.
type CustomerRepository struct {
	pool pgdb.Queryer
}

// NewCustomerRepository wires a CustomerRepository.
func NewCustomerRepository(pool pgdb.Queryer) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a customer.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := exec.QueryRow(ctx, `
        INSERT INTO customers (id, name, code, status, contact_email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+customerColumns,
		id,
		c.Name,
		c.Code,
		string(c.Status),
		nullableString(c.ContactEmail),
		c.CreatedAt,
		c.UpdatedAt,
	)

	created, err := scanCustomer(row)
	if err != nil {
		return nil, translateCustomerPgError(err)
	}
	return created, nil
}

// Update rewrites a customer's mutable columns.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE customers
           SET name = $1,
               code = $2,
               status = $3,
               contact_email = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING `+customerColumns,
		c.Name,
		c.Code,
		string(c.Status),
		nullableString(c.ContactEmail),
		c.UpdatedAt,
		c.ID,
	)

	updated, err := scanCustomer(row)
	if err != nil {
		return nil, translateCustomerPgError(err)
	}
	return updated, nil
}

// Delete removes a customer.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return translateCustomerPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// FindByID fetches one customer.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+customerColumns+`
          FROM customers
         WHERE id = $1
         LIMIT 1`, id)

	found, err := scanCustomer(row)
	if err != nil {
		return nil, translateCustomerPgError(err)
	}
	return found, nil
}

// FindByCode fetches one customer by normalized code.
func (r *CustomerRepository) FindByCode(ctx context.Context, code string) (*customer.Customer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+customerColumns+`
          FROM customers
         WHERE code = $1
         LIMIT 1`, code)

	found, err := scanCustomer(row)
	if err != nil {
		return nil, translateCustomerPgError(err)
	}
	return found, nil
}

// List returns customers ordered by name, optionally narrowed to a status.
func (r *CustomerRepository) List(ctx context.Context, filter customer.ListCustomersFilter) ([]*customer.Customer, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY name ASC`

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateCustomerPgError(err)
	}
	defer rows.Close()

	var out []*customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, translateCustomerPgError(err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, translateCustomerPgError(err)
	}

	return out, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var (
		id           string
		name         string
		code         string
		status       string
		contactEmail sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(&id, &name, &code, &status, &contactEmail, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, err
	}

	return &customer.Customer{
		ID:           id,
		Name:         name,
		Code:         code,
		Status:       customer.Status(status),
		ContactEmail: nullStringPtr(contactEmail),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func translateCustomerPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return customer.ErrCustomerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return customer.ErrCodeAlreadyExists
	}

	return err
}
