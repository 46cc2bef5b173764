package postgres

import (
	"strings"
	"testing"

	"relatedAttributes/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL without a live server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db
}

func renderSQL(t *testing.T, q domain.RelatedQuery) (string, []interface{}) {
	t.Helper()

	var products []domain.Product
	stmt := ApplyRelatedQuery(dryRunDB(t).Model(&domain.Product{}), q).Find(&products).Statement

	return stmt.SQL.String(), stmt.Vars
}

func hostQuery() domain.RelatedQuery {
	return domain.RelatedQuery{
		Where:   []domain.Predicate{{Kind: domain.PredicateRaw, SQL: "id <> ?", Args: []any{uint64(7)}}},
		OrderBy: []domain.Ordering{{Kind: domain.OrderingColumn, Column: "created_at", Desc: true}},
		Limit:   4,
	}
}

func TestApplyRelatedQueryHostDefault(t *testing.T) {
	sql, vars := renderSQL(t, hostQuery())

	assert.Contains(t, sql, `FROM "products"`)
	assert.Contains(t, sql, "id <> $1")
	assert.Contains(t, sql, `ORDER BY "created_at" DESC`)
	assert.Contains(t, sql, "LIMIT")
	require.NotEmpty(t, vars)
	assert.Equal(t, uint64(7), vars[0])
}

func TestApplyRelatedQueryRestricted(t *testing.T) {
	sql, vars := renderSQL(t, hostQuery().RestrictToIDs([]uint64{3, 2}))

	assert.Contains(t, sql, "id IN ($2,$3)")
	assert.Contains(t, sql, "ORDER BY CASE id WHEN $4::bigint THEN $5::integer WHEN $6::bigint THEN $7::integer ELSE $8::integer END")
	assert.NotContains(t, sql, "created_at")

	require.GreaterOrEqual(t, len(vars), 8)
	assert.Equal(t, []interface{}{uint64(7), uint64(3), uint64(2), uint64(3), 0, uint64(2), 1, 2}, vars[:8])
}

func TestApplyRelatedQueryMatchNone(t *testing.T) {
	sql, _ := renderSQL(t, hostQuery().MatchNone())

	assert.Contains(t, sql, "1 = 0")
	assert.Contains(t, sql, "id <> $1")
}

func TestApplyRelatedQueryFields(t *testing.T) {
	q := domain.RelatedQuery{Fields: []string{"id", "product_name"}}
	sql, _ := renderSQL(t, q)

	assert.Contains(t, sql, `SELECT "id","product_name" FROM "products"`)
}

func TestApplyRelatedQueryRankOrderIsInteger(t *testing.T) {
	ids := make([]uint64, 12)
	for i := range ids {
		ids[i] = uint64(100 + i)
	}

	sql, vars := renderSQL(t, hostQuery().RestrictToIDs(ids))

	// ranks 10 and 11 must sort after 2, so no branch may be left untyped
	assert.Equal(t, len(ids), strings.Count(sql, "::bigint THEN $"))
	assert.Equal(t, len(ids)+1, strings.Count(sql, "::integer"))
	assert.NotRegexp(t, `THEN \$\d+ `, sql)
	assert.NotRegexp(t, `ELSE \$\d+ END`, sql)

	// vars: host arg, 12 IN ids, then (id, rank) pairs and the ELSE rank
	require.GreaterOrEqual(t, len(vars), 1+len(ids)+2*len(ids)+1)
	order := vars[1+len(ids) : 1+len(ids)+2*len(ids)+1]
	for i, id := range ids {
		assert.Equal(t, id, order[2*i], "id at rank %d", i)
		assert.Equal(t, i, order[2*i+1])
	}
	assert.Equal(t, len(ids), order[len(order)-1])
}

func TestApplyRelatedQuerySharesTerm(t *testing.T) {
	sql, vars := renderSQL(t, hostQuery().RestrictToTerms([]uint64{31, 41}))

	assert.Contains(t, sql, "id IN (SELECT pt.product_id FROM product_terms pt WHERE pt.term_id IN ($2,$3))")
	assert.Contains(t, sql, `ORDER BY "created_at" DESC`)
	assert.Equal(t, []interface{}{uint64(7), uint64(31), uint64(41)}, vars[:3])

	sql, _ = renderSQL(t, hostQuery().RestrictToTerms(nil))
	assert.NotContains(t, sql, "product_terms")
}
