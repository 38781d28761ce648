package evaluation

// LabelNotEvaluated is rendered whenever a category has no usable score,
// including stored scores orphaned by a later configuration change.
const LabelNotEvaluated = "chưa đánh giá"

// Option is one configurable scoring choice within a category.
type Option struct {
	ID       string
	Category Category
	Points   int
	Label    string
}

// Catalog is an immutable snapshot of the configured options.
type Catalog struct {
	options []Option
}

// NewCatalog builds a catalog from the configured option list.
func NewCatalog(options []Option) *Catalog {
	copied := make([]Option, len(options))
	copy(copied, options)
	return &Catalog{options: copied}
}

// OptionsFor returns the configured choices for one category.
func (c *Catalog) OptionsFor(category Category) []Option {
	if c == nil {
		return nil
	}
	var out []Option
	for _, opt := range c.options {
		if opt.Category == category {
			out = append(out, opt)
		}
	}
	return out
}

// ResolveLabel reverse-maps a stored score to its configured label. A score
// with no matching option resolves to LabelNotEvaluated; this lookup never
// fails a read.
func (c *Catalog) ResolveLabel(category Category, points *int) string {
	if c == nil || points == nil {
		return LabelNotEvaluated
	}
	for _, opt := range c.options {
		if opt.Category == category && opt.Points == *points {
			return opt.Label
		}
	}
	return LabelNotEvaluated
}
