package console

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func (c *Console) cartMenu(ctx context.Context) error {
	for {
		c.println("\n--- CART ---")
		c.println("1) Add product to cart")
		c.println("2) View cart")
		c.println("3) Remove item (by index)")
		c.println("4) Clear cart")
		c.println("5) Back")

		op, err := c.ask("Choose: ")
		if err != nil {
			return err
		}

		switch op {
		case "1":
			err = c.addToCart(ctx)
		case "2":
			c.showCart(ctx)
		case "3":
			err = c.removeFromCart(ctx)
		case "4":
			if cerr := c.app.Carts.ClearCart(ctx, SessionID); cerr != nil {
				c.printError(cerr)
			} else {
				c.println("Cart cleared.")
			}
		case "5":
			return nil
		default:
			c.println("Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) addToCart(ctx context.Context) error {
	products, err := c.app.Catalog.ListProducts(ctx)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(products) == 0 {
		c.println("No products registered.")
		return nil
	}
	for i, p := range products {
		detail := string(p.Category)
		if p.Meta != nil {
			detail = *p.Meta
		}
		c.printf("%d) %s - %s (%s)\n", i+1, p.Name, utils.FormatBRL(p.Price), detail)
	}

	selStr, err := c.ask("Product number: ")
	if err != nil {
		return err
	}
	sel, convErr := strconv.Atoi(selStr)
	if convErr != nil || sel < 1 || sel > len(products) {
		c.println("Invalid selection.")
		return nil
	}
	p := products[sel-1]

	qtyStr, err := c.ask("Quantity (enter for 1): ")
	if err != nil {
		return err
	}
	qty := 1
	if qtyStr != "" {
		if qty, convErr = strconv.Atoi(qtyStr); convErr != nil {
			c.println("Invalid quantity.")
			return nil
		}
	}

	var note string
	if p.Category == models.CategoryPizza {
		if note, err = c.ask("Note (e.g. half with another flavour) (optional): "); err != nil {
			return err
		}
	}

	view, err := c.app.Carts.AddToCart(ctx, SessionID, p.ID, qty, note)
	if err != nil {
		c.printError(err)
		return nil
	}
	c.printf("Added %dx %s. Cart total: %s\n", qty, p.Name, utils.FormatBRL(view.Total))
	return nil
}

func (c *Console) removeFromCart(ctx context.Context) error {
	if !c.showCart(ctx) {
		return nil
	}
	idxStr, err := c.ask("Index of the item to remove: ")
	if err != nil {
		return err
	}
	idx, convErr := strconv.Atoi(idxStr)
	if convErr != nil {
		c.println("Invalid index.")
		return nil
	}
	removed, err := c.app.Carts.RemoveFromCart(ctx, SessionID, idx)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.println("Invalid index.")
			return nil
		}
		c.printError(err)
		return nil
	}
	c.printf("Removed: %s\n", removed.Name)
	return nil
}

// showCart prints the cart and reports whether it has any line.
func (c *Console) showCart(ctx context.Context) bool {
	view, err := c.app.Carts.ViewCart(ctx, SessionID)
	if err != nil {
		c.printError(err)
		return false
	}
	if len(view.Lines) == 0 {
		c.println("Cart is empty.")
		return false
	}
	c.println("\nCart:")
	for i, l := range view.Lines {
		c.printf("%d) %s x%d - %s", i+1, l.Name, l.Quantity, utils.FormatBRL(l.Subtotal()))
		if l.Note != "" {
			c.printf(" (%s)", l.Note)
		}
		c.println()
	}
	c.printf("Total: %s\n", utils.FormatBRL(view.Total))
	return true
}

func (c *Console) checkout(ctx context.Context) error {
	view, err := c.app.Carts.ViewCart(ctx, SessionID)
	if err != nil {
		c.printError(err)
		return nil
	}
	if len(view.Lines) == 0 {
		c.println("Cart is empty. Add items before checking out.")
		return nil
	}

	var customerID string
	var address *string
	link, err := c.askYes("Link to a registered customer? (y/n): ")
	if err != nil {
		return err
	}
	if link {
		key, err := c.ask("Customer ID or name: ")
		if err != nil {
			return err
		}
		customer, ferr := c.app.Catalog.FindCustomer(ctx, key)
		if ferr == nil {
			customerID = customer.ID
			c.printf("Order linked to %s\n", customer.Name)
			other, err := c.askYes("Use another delivery address for this order? (y/n): ")
			if err != nil {
				return err
			}
			if other {
				a, err := c.ask("Delivery address: ")
				if err != nil {
					return err
				}
				address = optional(a)
			}
		} else {
			c.println("Customer not found, continuing without a customer.")
		}
	} else {
		a, err := c.ask("Delivery address: ")
		if err != nil {
			return err
		}
		address = optional(a)
	}

	order, err := c.app.Orders.FinalizeOrder(ctx, SessionID, customerID)
	if err != nil {
		c.printError(err)
		return nil
	}
	if address != nil {
		order.DeliveryAddress = address
	}

	c.println("Payment methods: 1) Pix  2) Card  3) Cash  4) MealVoucher")
	choice, err := c.ask("Choose: ")
	if err != nil {
		return err
	}
	method, ok := services.ParsePaymentChoice(choice)
	if !ok {
		c.println("Invalid option. Using Cash by default.")
	}

	var tendered *decimal.Decimal
	if method == models.PaymentCash && ok {
		if tendered, err = c.askCashTendered(order.Total); err != nil {
			return err
		}
	}
	if err := services.ApplyPayment(order, method, tendered); err != nil {
		c.printError(err)
		return nil
	}

	if err := c.app.Orders.RecordOrder(ctx, SessionID, order); err != nil {
		c.printf("Could not record the order: %v\n", err)
		return nil
	}

	receipt, err := c.app.Receipts.Emit(ctx, order)
	c.println(receipt)
	if err != nil {
		c.printf("Warning: receipt not saved: %v\n", err)
	} else {
		c.println("Receipt issued.")
	}

	return c.rate(ctx, deref(order.CustomerName))
}

// askCashTendered keeps asking until the amount covers total. Blank means
// the customer paid the exact amount.
func (c *Console) askCashTendered(total decimal.Decimal) (*decimal.Decimal, error) {
	for {
		s, err := c.ask("Amount handed over by the customer (blank if exact): ")
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		amount, perr := utils.ParseAmount(s)
		if perr != nil {
			c.println("Invalid amount.")
			continue
		}
		if amount.LessThan(total) {
			c.printf("Amount is less than the total %s.\n", utils.FormatBRL(total))
			continue
		}
		return &amount, nil
	}
}

func (c *Console) rate(ctx context.Context, customerName string) error {
	display := customerName
	if display == "" {
		display = services.UnidentifiedCustomer
	}
	c.println("\n===== RATING =====")
	c.printf("Customer: %s\n", display)
	c.println("Rate us from 1 to 5 stars (1 = poor, 5 = excellent)")

	s, err := c.ask("Your score: ")
	if err != nil {
		return err
	}
	score, convErr := strconv.Atoi(s)
	if convErr != nil {
		c.println("Invalid score. Rating skipped.")
		return nil
	}
	if _, err := c.app.Ratings.Rate(ctx, customerName, score); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.println("Invalid score. Rating skipped.")
			return nil
		}
		c.printError(err)
		return nil
	}
	c.printf("Thanks for the feedback, %s! You gave %d star(s).\n", display, score)
	return nil
}
