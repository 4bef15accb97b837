package recipe

// Recipe is a single AI-generated recipe suggestion. Recipes are produced by
// the remote service and never modified after they are received.
type Recipe struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Ingredients   []string `json:"ingredients"`
	Steps         []string `json:"steps"`
	MissingItems  []string `json:"missing_items"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
}

// MissingSet returns the recipe's missing items as a lookup set.
// The server promises missing_items is a subset of ingredients, but that is
// not enforced here: an entry with no exact ingredient match is still
// included so callers can render it without crashing.
func (r Recipe) MissingSet() map[string]bool {
	set := make(map[string]bool, len(r.MissingItems))
	for _, item := range r.MissingItems {
		set[item] = true
	}
	return set
}

// clone returns a deep copy so a cached recipe cannot be mutated through
// slices shared with the caller.
func (r Recipe) clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Steps = append([]string(nil), r.Steps...)
	c.MissingItems = append([]string(nil), r.MissingItems...)
	return c
}
