package cases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func filterFixtures() []*Case {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	return []*Case{
		{
			ID:          "case-1",
			Kind:        KindIncident,
			Title:       "Lỗi máy in tầng 2",
			Description: "Máy in không nhận lệnh",
			RequesterID: "emp-1",
			HandlerID:   "emp-2",
			CaseTypeID:  "type-1",
			CustomerID:  strPtr("cust-1"),
			Status:      StatusReceived,
			StartDate:   base,
			CreatedAt:   base,
			Requester:   &EmployeeSnapshot{ID: "emp-1", FullName: "Nguyễn Văn An"},
			Handler:     &EmployeeSnapshot{ID: "emp-2", FullName: "Trần Thị Bình"},
			CaseType:    &TypeSnapshot{ID: "type-1", Name: "Sự cố phần cứng", Active: true},
			Customer:    &CustomerSnapshot{ID: "cust-1", Name: "Công ty Hòa Phát"},
		},
		{
			ID:          "case-2",
			Kind:        KindIncident,
			Title:       "Email không gửi được",
			Description: "Outlook báo lỗi SMTP",
			RequesterID: "emp-3",
			HandlerID:   "emp-2",
			CaseTypeID:  "type-2",
			Status:      StatusProcessing,
			StartDate:   base.AddDate(0, 0, 5),
			CreatedAt:   base.AddDate(0, 0, 5),
			Requester:   &EmployeeSnapshot{ID: "emp-3", FullName: "Lê Hoàng Cường"},
			Handler:     &EmployeeSnapshot{ID: "emp-2", FullName: "Trần Thị Bình"},
			CaseType:    &TypeSnapshot{ID: "type-2", Name: "Sự cố phần mềm", Active: true},
		},
		{
			ID:          "case-3",
			Kind:        KindIncident,
			Title:       "Cấp quyền truy cập VPN",
			Description: "Nhân viên mới cần VPN",
			RequesterID: "emp-1",
			HandlerID:   "emp-4",
			CaseTypeID:  "type-2",
			Status:      StatusCompleted,
			StartDate:   base.AddDate(0, 0, 10),
			CreatedAt:   base.AddDate(0, 0, 10),
			Requester:   &EmployeeSnapshot{ID: "emp-1", FullName: "Nguyễn Văn An"},
			Handler:     &EmployeeSnapshot{ID: "emp-4", FullName: "Phạm Minh Đức"},
			CaseType:    &TypeSnapshot{ID: "type-2", Name: "Sự cố phần mềm", Active: true},
		},
	}
}

func TestListFilter_EmptyIsWildcard(t *testing.T) {
	t.Parallel()

	fixtures := filterFixtures()
	result := ListFilter{}.Apply(fixtures)

	require.Len(t, result, 3)
	assert.False(t, ListFilter{}.HasActiveFilters())
}

func TestListFilter_StatusExactMatch(t *testing.T) {
	t.Parallel()

	received := StatusReceived
	result := ListFilter{Status: &received}.Apply(filterFixtures())

	require.Len(t, result, 1)
	assert.Equal(t, "case-1", result[0].ID)
}

func TestListFilter_SearchAcrossFields(t *testing.T) {
	t.Parallel()

	fixtures := filterFixtures()

	// Title, case-insensitive.
	result := ListFilter{SearchTerm: "máy in"}.Apply(fixtures)
	require.Len(t, result, 1)
	assert.Equal(t, "case-1", result[0].ID)

	// Handler name.
	result = ListFilter{SearchTerm: "bình"}.Apply(fixtures)
	assert.Len(t, result, 2)

	// Case type name.
	result = ListFilter{SearchTerm: "phần mềm"}.Apply(fixtures)
	assert.Len(t, result, 2)

	// Customer name.
	result = ListFilter{SearchTerm: "hòa phát"}.Apply(fixtures)
	require.Len(t, result, 1)
	assert.Equal(t, "case-1", result[0].ID)

	// No match.
	assert.Empty(t, ListFilter{SearchTerm: "không tồn tại"}.Apply(fixtures))
}

func TestListFilter_CombinationNarrowsToIntersection(t *testing.T) {
	t.Parallel()

	fixtures := filterFixtures()
	processing := StatusProcessing

	result := ListFilter{SearchTerm: "bình", Status: &processing}.Apply(fixtures)
	require.Len(t, result, 1)
	assert.Equal(t, "case-2", result[0].ID)

	received := StatusReceived
	result = ListFilter{SearchTerm: "vpn", Status: &received}.Apply(fixtures)
	assert.Empty(t, result, "combined filters must intersect, not union")
}

func TestListFilter_DateRangeInclusive(t *testing.T) {
	t.Parallel()

	fixtures := filterFixtures()
	from := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 6, 8, 0, 0, 0, time.UTC)

	result := ListFilter{DateFrom: &from, DateTo: &to}.Apply(fixtures)
	require.Len(t, result, 2)

	// Bounds are inclusive: a start date equal to either bound matches.
	exact := fixtures[0].StartDate
	result = ListFilter{DateFrom: &exact, DateTo: &exact}.Apply(fixtures)
	require.Len(t, result, 1)
	assert.Equal(t, "case-1", result[0].ID)
}

func TestListFilter_CustomerAndIDPredicates(t *testing.T) {
	t.Parallel()

	fixtures := filterFixtures()

	result := ListFilter{CustomerID: "cust-1"}.Apply(fixtures)
	require.Len(t, result, 1)
	assert.Equal(t, "case-1", result[0].ID)

	result = ListFilter{RequesterID: "emp-1"}.Apply(fixtures)
	assert.Len(t, result, 2)

	result = ListFilter{CaseTypeID: "type-2", HandlerID: "emp-2"}.Apply(fixtures)
	require.Len(t, result, 1)
	assert.Equal(t, "case-2", result[0].ID)
}

func TestListFilter_AppliesNewestFirstOrder(t *testing.T) {
	t.Parallel()

	result := ListFilter{}.Apply(filterFixtures())

	require.Len(t, result, 3)
	assert.Equal(t, []string{"case-3", "case-2", "case-1"}, []string{result[0].ID, result[1].ID, result[2].ID})
}

func TestListFilter_HasActiveFilters(t *testing.T) {
	t.Parallel()

	assert.False(t, ListFilter{SearchTerm: "   "}.HasActiveFilters())
	assert.True(t, ListFilter{SearchTerm: "vpn"}.HasActiveFilters())
	assert.True(t, ListFilter{HandlerID: "emp-2"}.HasActiveFilters())

	status := StatusCancelled
	assert.True(t, ListFilter{Status: &status}.HasActiveFilters())

	from := time.Now()
	assert.True(t, ListFilter{DateFrom: &from}.HasActiveFilters())
}
