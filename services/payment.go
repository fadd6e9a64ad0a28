package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
)

// PaymentMethods lists the accepted methods in menu order.
var PaymentMethods = []models.PaymentMethod{
	models.PaymentPix,
	models.PaymentCard,
	models.PaymentCash,
	models.PaymentMealVoucher,
}

// ParsePaymentMethod accepts a method name in any case.
func ParsePaymentMethod(s string) (models.PaymentMethod, error) {
	s = strings.TrimSpace(s)
	for _, m := range PaymentMethods {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", invalidInput("unknown payment method %q", s)
}

// ParsePaymentChoice reads a counter menu answer: a 1-based position in
// PaymentMethods or a method name. Anything else falls back to cash with
// ok set to false.
func ParsePaymentChoice(choice string) (method models.PaymentMethod, ok bool) {
	choice = strings.TrimSpace(choice)
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(PaymentMethods) {
			return PaymentMethods[n-1], true
		}
		return models.PaymentCash, false
	}
	if m, err := ParsePaymentMethod(choice); err == nil {
		return m, true
	}
	return models.PaymentCash, false
}

// ApplyPayment sets the payment method and, for cash, the amount tendered.
// The order is validated again when recorded.
func ApplyPayment(order *models.Order, method models.PaymentMethod, cashTendered *decimal.Decimal) error {
	if !method.Valid() {
		return invalidInput("unknown payment method %q", method)
	}
	order.PaymentMethod = method
	order.CashTendered = decimal.NullDecimal{}
	if cashTendered != nil {
		order.CashTendered = decimal.NewNullDecimal(cashTendered.Round(2))
	}
	return validatePayment(order)
}

func validatePayment(order *models.Order) error {
	if !order.PaymentMethod.Valid() {
		return invalidInput("unknown payment method %q", order.PaymentMethod)
	}
	if !order.CashTendered.Valid {
		return nil
	}
	if order.PaymentMethod != models.PaymentCash {
		return invalidInput("cash tendered is only accepted for %s payments", models.PaymentCash)
	}
	if order.CashTendered.Decimal.LessThan(order.Total) {
		return invalidInput("cash tendered %s is less than the total %s",
			order.CashTendered.Decimal.StringFixed(2), order.Total.StringFixed(2))
	}
	return nil
}
