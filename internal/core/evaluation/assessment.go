package evaluation

import (
	"fmt"
	"strings"
)

// Grand-total weights for internal cases. Incidents use the plain
// unweighted sum instead; the two report types disagree on purpose.
const (
	userWeight  = 0.4
	adminWeight = 0.6
)

// Assessment holds the selected point value per category.
// A nil entry means the category has not been scored yet.
type Assessment struct {
	Difficulty *int
	Time       *int
	Impact     *int
	Urgency    *int
	Form       *int
}

// Score returns the stored points for a category, nil when unscored.
func (a Assessment) Score(c Category) *int {
	switch c {
	case CategoryDifficulty:
		return a.Difficulty
	case CategoryTime:
		return a.Time
	case CategoryImpact:
		return a.Impact
	case CategoryUrgency:
		return a.Urgency
	case CategoryForm:
		return a.Form
	default:
		return nil
	}
}

// IsComplete reports whether every category required for the role is
// scored. A single missing category makes the whole assessment incomplete.
func (a Assessment) IsComplete(role Role) bool {
	required, err := RequiredCategories(role)
	if err != nil {
		return false
	}
	for _, c := range required {
		if a.Score(c) == nil {
			return false
		}
	}
	return true
}

// Total sums all present category scores; missing categories contribute 0.
func (a Assessment) Total() int {
	total := 0
	for _, c := range allCategories {
		if v := a.Score(c); v != nil {
			total += *v
		}
	}
	return total
}

// Validate rejects a submission that misses any category required for the
// role. Reads never go through here; a malformed stored score is simply
// treated as unscored.
func (a Assessment) Validate(role Role) error {
	required, err := RequiredCategories(role)
	if err != nil {
		return err
	}

	var missing []string
	for _, c := range required {
		if a.Score(c) == nil {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrIncompleteAssessment)
	}
	return nil
}

// CombinedTotal is the unweighted case total shown on incident reports.
func CombinedTotal(user, admin Assessment) int {
	return user.Total() + admin.Total()
}

// GrandTotal is the weighted internal-case total: user share 0.4, admin
// share 0.6. The result is not normalized and may be fractional.
func GrandTotal(userTotal, adminTotal int) float64 {
	return float64(userTotal)*userWeight + float64(adminTotal)*adminWeight
}

// Result is the outcome of evaluating an assessment for a role.
type Result struct {
	Scores     map[Category]int
	IsComplete bool
	Total      int
}

// Evaluate computes the per-category scores, completeness and total for a
// role. Unscored categories are absent from Scores.
func Evaluate(a Assessment, role Role) (*Result, error) {
	if _, err := RequiredCategories(role); err != nil {
		return nil, err
	}

	scores := make(map[Category]int)
	for _, c := range allCategories {
		if v := a.Score(c); v != nil {
			scores[c] = *v
		}
	}

	return &Result{
		Scores:     scores,
		IsComplete: a.IsComplete(role),
		Total:      a.Total(),
	}, nil
}
