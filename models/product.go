package models

import "github.com/shopspring/decimal"

type ProductCategory string

const (
	CategoryPizza    ProductCategory = "Pizza"
	CategoryBeverage ProductCategory = "Beverage"
	CategoryOther    ProductCategory = "Other"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryPizza, CategoryBeverage, CategoryOther:
		return true
	}
	return false
}

type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Category    ProductCategory `gorm:"column:categoria;type:varchar(20);not null" json:"category"`
	Name        string          `gorm:"column:nome;type:varchar(255);not null;index" json:"name"`
	Description *string         `gorm:"column:descricao;type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"column:preco;type:decimal(10,2);not null" json:"price"`
	// Meta holds the size or unit, e.g. "8 slices" or "can".
	Meta *string `gorm:"column:meta;type:varchar(100)" json:"meta,omitempty"`
}

func (Product) TableName() string { return "produtos" }
