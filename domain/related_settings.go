package domain

// AttributePriorities maps a taxonomy name to its manual weight.
type AttributePriorities map[string]int

type ThresholdPolicy struct {
	Enabled   bool `json:"enabled"`
	Threshold int  `json:"threshold"`
}

type RelationMethods struct {
	ByCategories bool `json:"by_categories"`
	ByTags       bool `json:"by_tags"`
}

// AttributePriorityField is one row of the admin priority form.
type AttributePriorityField struct {
	Taxonomy  string `json:"taxonomy"`
	Label     string `json:"label"`
	Weight    int    `json:"weight"`
	TermCount int64  `json:"term_count"`
}
