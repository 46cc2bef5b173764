package postgres

import (
	"strings"

	"relatedAttributes/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyRelatedQuery renders q onto db. Id sets and id orderings are always
// bound as parameters, never interpolated.
func ApplyRelatedQuery(db *gorm.DB, q domain.RelatedQuery) *gorm.DB {
	if len(q.Fields) > 0 {
		db = db.Select(q.Fields)
	}

	for _, p := range q.Where {
		switch p.Kind {
		case domain.PredicateRaw:
			db = db.Where(p.SQL, p.Args...)
		case domain.PredicateIDIn:
			if len(p.IDs) == 0 {
				db = db.Where("1 = 0")
				continue
			}
			db = db.Where("id IN ?", p.IDs)
		case domain.PredicateMatchNone:
			db = db.Where("1 = 0")
		case domain.PredicateSharesTerm:
			if len(p.IDs) == 0 {
				continue
			}
			db = db.Where("id IN (SELECT pt.product_id FROM product_terms pt WHERE pt.term_id IN ?)", p.IDs)
		}
	}

	for _, o := range q.OrderBy {
		switch o.Kind {
		case domain.OrderingColumn:
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
		case domain.OrderingIDSequence:
			if len(o.IDs) == 0 {
				continue
			}
			db = db.Clauses(idSequenceOrder(o.IDs))
		}
	}

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	return db
}

// idSequenceOrder sorts rows by the position of their id in ids. Every
// branch is cast so postgres resolves the CASE as integer, not text.
func idSequenceOrder(ids []uint64) clause.OrderBy {
	var sb strings.Builder
	vars := make([]interface{}, 0, len(ids)*2+1)

	sb.WriteString("CASE id")
	for i, id := range ids {
		sb.WriteString(" WHEN ?::bigint THEN ?::integer")
		vars = append(vars, id, i)
	}
	sb.WriteString(" ELSE ?::integer END")
	vars = append(vars, len(ids))

	return clause.OrderBy{
		Expression: clause.Expr{SQL: sb.String(), Vars: vars, WithoutParentheses: true},
	}
}
