package postgres

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	return mock
}

func mockCaseRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "kind", "title", "description", "requester_id", "handler_id", "case_type_id", "customer_id",
		"status", "start_date", "end_date", "notes", "reference_code",
		"user_difficulty", "user_time", "user_impact", "user_urgency", "user_form",
		"admin_difficulty", "admin_time", "admin_impact", "admin_urgency",
		"created_at", "updated_at",
		"requester_name", "requester_email", "handler_name", "handler_email",
		"case_type_name", "case_type_active", "customer_name",
	})
}
