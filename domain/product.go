package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_skuid   BIGINT,
//     product_name    TEXT,
//     unit            TEXT,
//     normal_price    NUMERIC,
//     sale_price      NUMERIC,
//     quantity        NUMERIC,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductSKUID uint64    `gorm:"column:product_skuid" json:"product_skuid"`
	ProductName  string    `gorm:"column:product_name;type:text" json:"product_name"`
	Unit         string    `gorm:"column:unit;type:text" json:"unit"`
	NormalPrice  float64   `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	SalePrice    float64   `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Quantity     float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
