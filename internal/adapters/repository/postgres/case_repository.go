package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ngocxb/caseflow/internal/core/cases"
	"github.com/ngocxb/caseflow/internal/core/evaluation"
	pgdb "github.com/ngocxb/caseflow/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

const caseSelectColumns = `
               c.id,
               c.kind,
               c.title,
               c.description,
               c.requester_id,
               c.handler_id,
               c.case_type_id,
               c.customer_id,
               c.status,
               c.start_date,
               c.end_date,
               c.notes,
               c.reference_code,
               c.user_difficulty,
               c.user_time,
               c.user_impact,
               c.user_urgency,
               c.user_form,
               c.admin_difficulty,
               c.admin_time,
               c.admin_impact,
               c.admin_urgency,
               c.created_at,
               c.updated_at,
               r.full_name,
               r.email,
               h.full_name,
               h.email,
               t.name,
               t.active,
               cu.name`

const caseSelectJoins = `
          FROM cases c
          JOIN employees r ON r.id = c.requester_id
          JOIN employees h ON h.id = c.handler_id
          JOIN case_types t ON t.id = c.case_type_id
     LEFT JOIN customers cu ON cu.id = c.customer_id`

// CaseRepository persists cases in PostgreSQL.
type CaseRepository struct {
	pool pgdb.Queryer
}

// NewCaseRepository wires a CaseRepository.
func NewCaseRepository(pool pgdb.Queryer) *CaseRepository {
	return &CaseRepository{pool: pool}
}

// Create inserts a case and returns it with its joined snapshots.
func (r *CaseRepository) Create(ctx context.Context, c *cases.Case) (*cases.Case, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO cases (
                id, kind, title, description, requester_id, handler_id, case_type_id, customer_id,
                status, start_date, end_date, notes, reference_code,
                user_difficulty, user_time, user_impact, user_urgency, user_form,
                admin_difficulty, admin_time, admin_impact, admin_urgency,
                created_at, updated_at
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
            RETURNING *
        )
        SELECT`+caseSelectColumns+`
          FROM inserted c
          JOIN employees r ON r.id = c.requester_id
          JOIN employees h ON h.id = c.handler_id
          JOIN case_types t ON t.id = c.case_type_id
     LEFT JOIN customers cu ON cu.id = c.customer_id
    `,
		id,
		string(c.Kind),
		c.Title,
		c.Description,
		c.RequesterID,
		c.HandlerID,
		c.CaseTypeID,
		nullableString(c.CustomerID),
		string(c.Status),
		c.StartDate,
		nullableTime(c.EndDate),
		nullableString(c.Notes),
		nullableString(c.ReferenceCode),
		nullableInt(c.UserAssessment.Difficulty),
		nullableInt(c.UserAssessment.Time),
		nullableInt(c.UserAssessment.Impact),
		nullableInt(c.UserAssessment.Urgency),
		nullableInt(c.UserAssessment.Form),
		nullableInt(c.AdminAssessment.Difficulty),
		nullableInt(c.AdminAssessment.Time),
		nullableInt(c.AdminAssessment.Impact),
		nullableInt(c.AdminAssessment.Urgency),
		c.CreatedAt,
		c.UpdatedAt,
	)

	created, err := scanCase(row)
	if err != nil {
		return nil, translateCasePgError(err)
	}
	return created, nil
}

// Update rewrites every mutable column of a case.
func (r *CaseRepository) Update(ctx context.Context, c *cases.Case) (*cases.Case, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH updated AS (
            UPDATE cases
               SET title = $1,
                   description = $2,
                   handler_id = $3,
                   case_type_id = $4,
                   customer_id = $5,
                   status = $6,
                   start_date = $7,
                   end_date = $8,
                   notes = $9,
                   reference_code = $10,
                   user_difficulty = $11,
                   user_time = $12,
                   user_impact = $13,
                   user_urgency = $14,
                   user_form = $15,
                   admin_difficulty = $16,
                   admin_time = $17,
                   admin_impact = $18,
                   admin_urgency = $19,
                   updated_at = $20
             WHERE id = $21
            RETURNING *
        )
        SELECT`+caseSelectColumns+`
          FROM updated c
          JOIN employees r ON r.id = c.requester_id
          JOIN employees h ON h.id = c.handler_id
          JOIN case_types t ON t.id = c.case_type_id
     LEFT JOIN customers cu ON cu.id = c.customer_id
    `,
		c.Title,
		c.Description,
		c.HandlerID,
		c.CaseTypeID,
		nullableString(c.CustomerID),
		string(c.Status),
		c.StartDate,
		nullableTime(c.EndDate),
		nullableString(c.Notes),
		nullableString(c.ReferenceCode),
		nullableInt(c.UserAssessment.Difficulty),
		nullableInt(c.UserAssessment.Time),
		nullableInt(c.UserAssessment.Impact),
		nullableInt(c.UserAssessment.Urgency),
		nullableInt(c.UserAssessment.Form),
		nullableInt(c.AdminAssessment.Difficulty),
		nullableInt(c.AdminAssessment.Time),
		nullableInt(c.AdminAssessment.Impact),
		nullableInt(c.AdminAssessment.Urgency),
		c.UpdatedAt,
		c.ID,
	)

	updated, err := scanCase(row)
	if err != nil {
		return nil, translateCasePgError(err)
	}
	return updated, nil
}

// Delete removes a case.
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return translateCasePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return cases.ErrCaseNotFound
	}
	return nil
}

// FindByID fetches one case with its joined snapshots.
func (r *CaseRepository) FindByID(ctx context.Context, id string) (*cases.Case, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT`+caseSelectColumns+caseSelectJoins+`
         WHERE c.id = $1
         LIMIT 1
    `, id)

	found, err := scanCase(row)
	if err != nil {
		return nil, translateCasePgError(err)
	}
	return found, nil
}

// ListByKind loads one kind's full collection. The in-memory filter facade
// runs over this result, so no further SQL filtering happens here.
func (r *CaseRepository) ListByKind(ctx context.Context, kind cases.Kind) ([]*cases.Case, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT`+caseSelectColumns+caseSelectJoins+`
         WHERE c.kind = $1
         ORDER BY c.created_at DESC, c.id DESC
    `, string(kind))
	if err != nil {
		return nil, translateCasePgError(err)
	}
	defer rows.Close()

	var out []*cases.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, translateCasePgError(err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, translateCasePgError(err)
	}

	return out, nil
}

func scanCase(row pgx.Row) (*cases.Case, error) {
	var (
		id            string
		kind          string
		title         string
		description   string
		requesterID   string
		handlerID     string
		caseTypeID    string
		customerID    sql.NullString
		status        string
		startDate     time.Time
		endDate       sql.NullTime
		notes         sql.NullString
		referenceCode sql.NullString

		userDifficulty  sql.NullInt64
		userTime        sql.NullInt64
		userImpact      sql.NullInt64
		userUrgency     sql.NullInt64
		userForm        sql.NullInt64
		adminDifficulty sql.NullInt64
		adminTime       sql.NullInt64
		adminImpact     sql.NullInt64
		adminUrgency    sql.NullInt64

		createdAt time.Time
		updatedAt time.Time

		requesterName  string
		requesterEmail string
		handlerName    string
		handlerEmail   string
		caseTypeName   string
		caseTypeActive bool
		customerName   sql.NullString
	)

	if err := row.Scan(
		&id,
		&kind,
		&title,
		&description,
		&requesterID,
		&handlerID,
		&caseTypeID,
		&customerID,
		&status,
		&startDate,
		&endDate,
		&notes,
		&referenceCode,
		&userDifficulty,
		&userTime,
		&userImpact,
		&userUrgency,
		&userForm,
		&adminDifficulty,
		&adminTime,
		&adminImpact,
		&adminUrgency,
		&createdAt,
		&updatedAt,
		&requesterName,
		&requesterEmail,
		&handlerName,
		&handlerEmail,
		&caseTypeName,
		&caseTypeActive,
		&customerName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cases.ErrCaseNotFound
		}
		return nil, err
	}

	c := &cases.Case{
		ID:            id,
		Kind:          cases.Kind(kind),
		Title:         title,
		Description:   description,
		RequesterID:   requesterID,
		HandlerID:     handlerID,
		CaseTypeID:    caseTypeID,
		CustomerID:    nullStringPtr(customerID),
		Status:        cases.Status(status),
		StartDate:     startDate,
		EndDate:       nullTimePtr(endDate),
		Notes:         nullStringPtr(notes),
		ReferenceCode: nullStringPtr(referenceCode),
		UserAssessment: evaluation.Assessment{
			Difficulty: nullIntPtr(userDifficulty),
			Time:       nullIntPtr(userTime),
			Impact:     nullIntPtr(userImpact),
			Urgency:    nullIntPtr(userUrgency),
			Form:       nullIntPtr(userForm),
		},
		AdminAssessment: evaluation.Assessment{
			Difficulty: nullIntPtr(adminDifficulty),
			Time:       nullIntPtr(adminTime),
			Impact:     nullIntPtr(adminImpact),
			Urgency:    nullIntPtr(adminUrgency),
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Requester: &cases.EmployeeSnapshot{ID: requesterID, FullName: requesterName, Email: requesterEmail},
		Handler:   &cases.EmployeeSnapshot{ID: handlerID, FullName: handlerName, Email: handlerEmail},
		CaseType:  &cases.TypeSnapshot{ID: caseTypeID, Name: caseTypeName, Active: caseTypeActive},
	}

	if customerID.Valid {
		c.Customer = &cases.CustomerSnapshot{ID: customerID.String, Name: customerName.String}
	}

	return c, nil
}

func translateCasePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return cases.ErrCaseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case "cases_requester_id_fkey", "cases_handler_id_fkey":
				return cases.ErrEmployeeNotFound
			case "cases_case_type_id_fkey":
				return cases.ErrCaseTypeNotFound
			case "cases_customer_id_fkey":
				return cases.ErrCustomerNotFound
			default:
				return err
			}
		case checkViolationCode:
			return cases.ErrDateOrder
		}
	}

	return err
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}

func nullIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}
