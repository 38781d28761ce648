package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ngocxb/caseflow/internal/core/employee"
	pgdb "github.com/ngocxb/caseflow/internal/platform/db/postgres"
)

const employeeColumns = `id, full_name, email, department, status, created_at, updated_at`

// EmployeeRepository persists employees in PostgreSQL.
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository wires an EmployeeRepository.
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create inserts an employee.
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := exec.QueryRow(ctx, `
        INSERT INTO employees (id, full_name, email, department, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+employeeColumns,
		id,
		e.FullName,
		e.Email,
		nullableString(e.Department),
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update rewrites an employee's mutable columns.
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET full_name = $1,
               email = $2,
               department = $3,
               status = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING `+employeeColumns,
		e.FullName,
		e.Email,
		nullableString(e.Department),
		string(e.Status),
		e.UpdatedAt,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// Delete removes an employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID fetches one employee.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE id = $1
         LIMIT 1`, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindByEmail fetches one employee by normalized email.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         WHERE email = $1
         LIMIT 1`, email)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List returns employees ordered by name, optionally narrowed to a status.
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY full_name ASC`

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	var out []*employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return out, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id         string
		fullName   string
		email      string
		department sql.NullString
		status     string
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(&id, &fullName, &email, &department, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:         id,
		FullName:   fullName,
		Email:      email,
		Department: nullStringPtr(department),
		Status:     employee.Status(status),
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return employee.ErrEmailAlreadyExists
	}

	return err
}
