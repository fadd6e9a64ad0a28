package models

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   string          `gorm:"column:pedido_id;type:varchar(64);not null;index" json:"order_id"`
	ProductID *string         `gorm:"column:produto_id;type:varchar(64)" json:"product_id,omitempty"`
	Name      string          `gorm:"column:nome;type:varchar(255);not null" json:"name"`
	Quantity  int             `gorm:"column:quantidade;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:preco_unit;type:decimal(10,2);not null" json:"unit_price"`
	Note      *string         `gorm:"column:observacao;type:text" json:"note,omitempty"`
}

func (OrderItem) TableName() string { return "itens_pedido" }

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
