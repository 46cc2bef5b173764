package domain

type ScoredProduct struct {
	ProductID uint64  `json:"product_id"`
	Score     float64 `json:"score"`
}

// RelatedScores is the outcome of one scoring run, before it is applied to a query.
type RelatedScores struct {
	ProductID     uint64          `json:"product_id"`
	HasAttributes bool            `json:"has_attributes"`
	Ceiling       float64         `json:"ceiling"`
	Threshold     ThresholdPolicy `json:"threshold"`
	Products      []ScoredProduct `json:"products"`
}

func (r RelatedScores) ProductIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Products))
	for _, p := range r.Products {
		ids = append(ids, p.ProductID)
	}
	return ids
}
