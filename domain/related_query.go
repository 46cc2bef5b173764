package domain

// PredicateKind tells the query layer how to render a Predicate.
type PredicateKind int

const (
	// PredicateRaw is a host supplied filter with positional args.
	PredicateRaw PredicateKind = iota
	// PredicateIDIn restricts the result to IDs.
	PredicateIDIn
	// PredicateMatchNone matches no rows.
	PredicateMatchNone
	// PredicateSharesTerm keeps products holding at least one of the term IDs.
	PredicateSharesTerm
)

type Predicate struct {
	Kind PredicateKind
	SQL  string
	Args []any
	IDs  []uint64
}

type OrderingKind int

const (
	OrderingColumn OrderingKind = iota
	// OrderingIDSequence orders rows by their position in IDs.
	OrderingIDSequence
)

type Ordering struct {
	Kind   OrderingKind
	Column string
	Desc   bool
	IDs    []uint64
}

// RelatedQuery is the host platform's in-flight "related products" query.
// Values are treated as immutable: the rewrite helpers return copies.
type RelatedQuery struct {
	Fields  []string
	Where   []Predicate
	OrderBy []Ordering
	Limit   int
	Offset  int
}

func (q RelatedQuery) Clone() RelatedQuery {
	out := RelatedQuery{
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.Fields != nil {
		out.Fields = append([]string(nil), q.Fields...)
	}
	if q.Where != nil {
		out.Where = make([]Predicate, 0, len(q.Where))
		for _, p := range q.Where {
			p.Args = append([]any(nil), p.Args...)
			p.IDs = append([]uint64(nil), p.IDs...)
			out.Where = append(out.Where, p)
		}
	}
	if q.OrderBy != nil {
		out.OrderBy = make([]Ordering, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			o.IDs = append([]uint64(nil), o.IDs...)
			out.OrderBy = append(out.OrderBy, o)
		}
	}
	return out
}

// RestrictToIDs limits the query to ids and orders rows by their position in ids.
func (q RelatedQuery) RestrictToIDs(ids []uint64) RelatedQuery {
	out := q.Clone()
	seq := append([]uint64(nil), ids...)
	out.Where = append(out.Where, Predicate{Kind: PredicateIDIn, IDs: seq})
	out.OrderBy = []Ordering{{Kind: OrderingIDSequence, IDs: seq}}
	return out
}

// RestrictToTerms keeps only products that hold one of termIDs. Ordering is
// left to the caller.
func (q RelatedQuery) RestrictToTerms(termIDs []uint64) RelatedQuery {
	out := q.Clone()
	out.Where = append(out.Where, Predicate{
		Kind: PredicateSharesTerm,
		IDs:  append([]uint64(nil), termIDs...),
	})
	return out
}

func (q RelatedQuery) MatchNone() RelatedQuery {
	out := q.Clone()
	out.Where = append(out.Where, Predicate{Kind: PredicateMatchNone})
	return out
}

// MatchesNothing reports whether a match-none predicate was applied.
func (q RelatedQuery) MatchesNothing() bool {
	for _, p := range q.Where {
		if p.Kind == PredicateMatchNone {
			return true
		}
	}
	return false
}

// RestrictedIDs returns the ids of the last id-set predicate, if any.
func (q RelatedQuery) RestrictedIDs() ([]uint64, bool) {
	for i := len(q.Where) - 1; i >= 0; i-- {
		if q.Where[i].Kind == PredicateIDIn {
			return q.Where[i].IDs, true
		}
	}
	return nil, false
}
