package domain

// CREATE TABLE public.taxonomies (
//     id      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name    TEXT NOT NULL UNIQUE,   -- pa_color, product_cat, product_tag
//     label   TEXT NOT NULL,
//     kind    TEXT NOT NULL           -- attribute | category | tag
// );
//
// CREATE TABLE public.terms (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     taxonomy_id  BIGINT NOT NULL REFERENCES taxonomies(id),
//     name         TEXT NOT NULL,
//     slug         TEXT NOT NULL
// );
//
// CREATE TABLE public.product_terms (
//     product_id  BIGINT NOT NULL REFERENCES products(id),
//     term_id     BIGINT NOT NULL REFERENCES terms(id),
//     PRIMARY KEY (product_id, term_id)
// );

type TaxonomyKind string

const (
	TaxonomyKindAttribute TaxonomyKind = "attribute"
	TaxonomyKindCategory  TaxonomyKind = "category"
	TaxonomyKindTag       TaxonomyKind = "tag"
)

const (
	CategoryTaxonomy = "product_cat"
	TagTaxonomy      = "product_tag"
)

type Taxonomy struct {
	ID    uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string       `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Label string       `gorm:"column:label;type:text;not null" json:"label"`
	Kind  TaxonomyKind `gorm:"column:kind;type:text;not null" json:"kind"`
}

func (Taxonomy) TableName() string {
	return "taxonomies"
}

type Term struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TaxonomyID uint64 `gorm:"column:taxonomy_id;not null;index" json:"taxonomy_id"`
	Name       string `gorm:"column:name;type:text;not null" json:"name"`
	Slug       string `gorm:"column:slug;type:text;not null" json:"slug"`
}

func (Term) TableName() string {
	return "terms"
}

// ProductTerm is one row of the term-membership index.
type ProductTerm struct {
	ProductID uint64 `gorm:"column:product_id;primaryKey"`
	TermID    uint64 `gorm:"column:term_id;primaryKey;index"`
}

func (ProductTerm) TableName() string {
	return "product_terms"
}

// TaxonomyTerms maps a taxonomy name to the term ids a product holds in it.
type TaxonomyTerms map[string][]uint64
