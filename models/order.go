package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentPix         PaymentMethod = "Pix"
	PaymentCard        PaymentMethod = "Card"
	PaymentCash        PaymentMethod = "Cash"
	PaymentMealVoucher PaymentMethod = "MealVoucher"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentPix, PaymentCard, PaymentCash, PaymentMealVoucher:
		return true
	}
	return false
}

// OrderState tracks an order through checkout. It is not stored: every
// order read back from the database is Persisted.
type OrderState string

const (
	OrderStatePendingPayment OrderState = "pending_payment"
	OrderStatePersisted      OrderState = "persisted"
)

type Order struct {
	ID              string              `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CustomerID      *string             `gorm:"column:cliente_id;type:varchar(64);index" json:"customer_id,omitempty"`
	CustomerName    *string             `gorm:"column:cliente_nome;type:varchar(255)" json:"customer_name,omitempty"`
	DeliveryAddress *string             `gorm:"column:endereco_entrega;type:text" json:"delivery_address,omitempty"`
	Total           decimal.Decimal     `gorm:"column:total;type:decimal(10,2);not null" json:"total"`
	PaymentMethod   PaymentMethod       `gorm:"column:forma_pagamento;type:varchar(20);not null" json:"payment_method"`
	CashTendered    decimal.NullDecimal `gorm:"column:troco_para;type:decimal(10,2)" json:"cash_tendered"`
	CreatedAt       time.Time           `gorm:"column:data_iso;not null;index" json:"created_at"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	State           OrderState          `gorm:"-" json:"state"`
}

func (Order) TableName() string { return "pedidos" }

func (o *Order) AfterFind(tx *gorm.DB) error {
	o.State = OrderStatePersisted
	return nil
}

// LinesTotal sums quantity x unit price over the order lines.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Change is the cash to hand back; only meaningful for cash payments with
// a tendered amount.
func (o *Order) Change() (decimal.Decimal, bool) {
	if o.PaymentMethod != PaymentCash || !o.CashTendered.Valid {
		return decimal.Zero, false
	}
	return o.CashTendered.Decimal.Sub(o.Total), true
}
