package related

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"relatedAttributes/domain"
)

type fakeCatalog struct {
	// product -> kind -> taxonomy -> terms
	terms map[uint64]map[domain.TaxonomyKind]domain.TaxonomyTerms
	// taxonomy -> term -> members
	members map[string]map[uint64][]uint64

	termsErr   error
	membersErr error
	calls      int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		terms:   map[uint64]map[domain.TaxonomyKind]domain.TaxonomyTerms{},
		members: map[string]map[uint64][]uint64{},
	}
}

// assign makes productID a member of termID in taxonomy and keeps both indexes in sync.
func (c *fakeCatalog) assign(productID uint64, kind domain.TaxonomyKind, taxonomy string, termID uint64) {
	if c.terms[productID] == nil {
		c.terms[productID] = map[domain.TaxonomyKind]domain.TaxonomyTerms{}
	}
	if c.terms[productID][kind] == nil {
		c.terms[productID][kind] = domain.TaxonomyTerms{}
	}
	c.terms[productID][kind][taxonomy] = append(c.terms[productID][kind][taxonomy], termID)

	if c.members[taxonomy] == nil {
		c.members[taxonomy] = map[uint64][]uint64{}
	}
	c.members[taxonomy][termID] = append(c.members[taxonomy][termID], productID)
}

func (c *fakeCatalog) ProductTerms(ctx context.Context, productID uint64, kind domain.TaxonomyKind) (domain.TaxonomyTerms, error) {
	if c.termsErr != nil {
		return nil, c.termsErr
	}
	out := domain.TaxonomyTerms{}
	for tax, ids := range c.terms[productID][kind] {
		out[tax] = append([]uint64(nil), ids...)
	}
	return out, nil
}

func (c *fakeCatalog) ProductsInTerm(ctx context.Context, taxonomy string, termID uint64) ([]uint64, error) {
	c.calls++
	if c.membersErr != nil {
		return nil, c.membersErr
	}
	ids := append([]uint64(nil), c.members[taxonomy][termID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeCounter struct {
	counts map[string]int64
	errs   map[string]error
}

func (c *fakeCounter) CountTerms(ctx context.Context, taxonomy string) (int64, error) {
	if err, ok := c.errs[taxonomy]; ok {
		return 0, err
	}
	return c.counts[taxonomy], nil
}

type fakeOptions struct {
	options map[string]domain.Option
	getErr  error
	saved   []domain.Option
}

func newFakeOptions() *fakeOptions {
	return &fakeOptions{options: map[string]domain.Option{}}
}

func (r *fakeOptions) set(name string, v any) {
	raw, _ := json.Marshal(v)
	r.options[name] = domain.Option{Name: name, Value: raw}
}

func (r *fakeOptions) setRaw(name, raw string) {
	r.options[name] = domain.Option{Name: name, Value: []byte(raw)}
}

func (r *fakeOptions) GetOption(ctx context.Context, name string) (domain.Option, bool, error) {
	if r.getErr != nil {
		return domain.Option{}, false, r.getErr
	}
	opt, ok := r.options[name]
	return opt, ok, nil
}

func (r *fakeOptions) UpsertOption(ctx context.Context, opt domain.Option) error {
	r.saved = append(r.saved, opt)
	r.options[opt.Name] = opt
	return nil
}

var errBoom = errors.New("boom")
