package cases

import (
	"sort"
	"strings"
	"time"
)

// ListFilter is the set of optional predicates list views combine. Every
// predicate treats its zero value as a wildcard, so any subset of filters
// composes without special cases; set predicates are AND-combined.
type ListFilter struct {
	SearchTerm  string
	HandlerID   string
	RequesterID string
	CaseTypeID  string
	CustomerID  string
	Status      *Status
	DateFrom    *time.Time
	DateTo      *time.Time
}

// HasActiveFilters reports whether any predicate is set. It is a UI
// affordance signal only.
func (f ListFilter) HasActiveFilters() bool {
	return strings.TrimSpace(f.SearchTerm) != "" ||
		f.HandlerID != "" ||
		f.RequesterID != "" ||
		f.CaseTypeID != "" ||
		f.CustomerID != "" ||
		f.Status != nil ||
		f.DateFrom != nil ||
		f.DateTo != nil
}

// Matches applies every predicate; all set predicates must pass.
func (f ListFilter) Matches(c *Case) bool {
	if c == nil {
		return false
	}
	if !matchesSearch(f.SearchTerm, c) {
		return false
	}
	if f.HandlerID != "" && c.HandlerID != f.HandlerID {
		return false
	}
	if f.RequesterID != "" && c.RequesterID != f.RequesterID {
		return false
	}
	if f.CaseTypeID != "" && c.CaseTypeID != f.CaseTypeID {
		return false
	}
	if f.CustomerID != "" && (c.CustomerID == nil || *c.CustomerID != f.CustomerID) {
		return false
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.DateFrom != nil && c.StartDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && c.StartDate.After(*f.DateTo) {
		return false
	}
	return true
}

// Apply filters the loaded collection and orders it newest first by
// creation time.
func (f ListFilter) Apply(loaded []*Case) []*Case {
	out := make([]*Case, 0, len(loaded))
	for _, c := range loaded {
		if f.Matches(c) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// matchesSearch is the case-insensitive free-text predicate. It spans
// title, description, requester/handler names, case type and customer.
func matchesSearch(term string, c *Case) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}

	haystacks := []string{c.Title, c.Description}
	if c.Requester != nil {
		haystacks = append(haystacks, c.Requester.FullName)
	}
	if c.Handler != nil {
		haystacks = append(haystacks, c.Handler.FullName)
	}
	if c.CaseType != nil {
		haystacks = append(haystacks, c.CaseType.Name)
	}
	if c.Customer != nil {
		haystacks = append(haystacks, c.Customer.Name)
	}

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
