package console

import (
	"github.com/shopspring/decimal"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
)

func servicesCustomer(name, phone string) services.CustomerInput {
	return services.CustomerInput{Name: name, Phone: phone}
}

func cartLine(name string, qty int, unit string) services.CartLine {
	return services.CartLine{
		ProductID: "P-" + name,
		Name:      name,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(unit),
	}
}
