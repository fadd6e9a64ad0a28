package console

import (
	"context"
	"errors"
	"strings"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func (c *Console) customersMenu(ctx context.Context) error {
	for {
		c.println("\n--- CUSTOMERS ---")
		c.println("1) Register customer")
		c.println("2) Look up customer (by ID or name)")
		c.println("3) Update customer")
		c.println("4) Delete customer")
		c.println("5) List all")
		c.println("6) Back")

		op, err := c.ask("Choose: ")
		if err != nil {
			return err
		}

		switch op {
		case "1":
			err = c.registerCustomer(ctx)
		case "2":
			err = c.lookupCustomer(ctx)
		case "3":
			err = c.updateCustomer(ctx)
		case "4":
			err = c.deleteCustomer(ctx)
		case "5":
			c.listCustomers(ctx)
		case "6":
			return nil
		default:
			c.println("Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) registerCustomer(ctx context.Context) error {
	var in services.CustomerInput
	var err error
	if in.Name, err = c.ask("Name: "); err != nil {
		return err
	}
	if in.Phone, err = c.ask("Phone: "); err != nil {
		return err
	}
	email, err := c.ask("Email (optional): ")
	if err != nil {
		return err
	}
	address, err := c.ask("Address (optional): ")
	if err != nil {
		return err
	}
	in.Email, in.Address = optional(email), optional(address)

	customer, created, err := c.app.Catalog.RegisterCustomer(ctx, in)
	switch {
	case err != nil:
		c.printError(err)
	case created:
		c.printf("Customer registered: ID=%s\n", customer.ID)
	default:
		c.printf("Customer already registered: ID=%s | %s\n", customer.ID, customer.Name)
	}
	return nil
}

func (c *Console) lookupCustomer(ctx context.Context) error {
	key, err := c.ask("ID or name: ")
	if err != nil {
		return err
	}
	customer, err := c.app.Catalog.FindCustomer(ctx, key)
	if err != nil {
		c.reportLookupError(err)
		return nil
	}
	c.printf("Found: %s\n", customerLine(customer))
	return nil
}

func (c *Console) updateCustomer(ctx context.Context) error {
	id, err := c.ask("ID of the customer to update: ")
	if err != nil {
		return err
	}

	var patch services.CustomerPatch
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Name (enter to keep): ", &patch.Name},
		{"Phone (enter to keep): ", &patch.Phone},
		{"Email (enter to keep): ", &patch.Email},
		{"Address (enter to keep): ", &patch.Address},
	}
	for _, f := range fields {
		v, err := c.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = optional(v)
	}

	if _, err := c.app.Catalog.UpdateCustomer(ctx, id, patch); err != nil {
		c.reportLookupError(err)
		return nil
	}
	c.println("Updated.")
	return nil
}

func (c *Console) deleteCustomer(ctx context.Context) error {
	id, err := c.ask("ID of the customer to delete: ")
	if err != nil {
		return err
	}
	if err := c.app.Catalog.DeleteCustomer(ctx, id); err != nil {
		c.reportLookupError(err)
		return nil
	}
	c.println("Deleted.")
	return nil
}

func (c *Console) listCustomers(ctx context.Context) {
	customers, err := c.app.Catalog.ListCustomers(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	if len(customers) == 0 {
		c.println("No customers registered.")
		return
	}
	for i := range customers {
		c.println(customerLine(&customers[i]))
	}
}

func (c *Console) reportLookupError(err error) {
	if errors.Is(err, services.ErrNotFound) {
		c.println("Customer not found.")
		return
	}
	c.printError(err)
}

func customerLine(cu *models.Customer) string {
	return strings.Join([]string{cu.ID, cu.Name, cu.Phone, deref(cu.Email), deref(cu.Address)}, " | ")
}

func (c *Console) productsMenu(ctx context.Context) error {
	for {
		c.println("\n--- PRODUCTS ---")
		c.println("1) Register product")
		c.println("2) List products")
		c.println("3) Search by name")
		c.println("4) Back")

		op, err := c.ask("Choose: ")
		if err != nil {
			return err
		}

		switch op {
		case "1":
			err = c.registerProduct(ctx)
		case "2":
			products, lerr := c.app.Catalog.ListProducts(ctx)
			c.printProducts(products, lerr)
		case "3":
			var key string
			if key, err = c.ask("Name (or part of it): "); err == nil {
				products, serr := c.app.Catalog.SearchProductsByName(ctx, key)
				c.printProducts(products, serr)
			}
		case "4":
			return nil
		default:
			c.println("Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) registerProduct(ctx context.Context) error {
	cat, err := c.ask("Category (Pizza/Beverage/Other): ")
	if err != nil {
		return err
	}
	name, err := c.ask("Product name: ")
	if err != nil {
		return err
	}
	desc, err := c.ask("Description (optional): ")
	if err != nil {
		return err
	}
	priceStr, err := c.ask("Price (e.g. 45.00): ")
	if err != nil {
		return err
	}
	meta, err := c.ask("Size or unit (optional): ")
	if err != nil {
		return err
	}

	price, err := utils.ParseAmount(priceStr)
	if err != nil {
		c.printError(err)
		return nil
	}
	product, err := c.app.Catalog.RegisterProduct(ctx, services.ProductInput{
		Category:    parseCategory(cat),
		Name:        name,
		Description: optional(desc),
		Price:       price,
		Meta:        optional(meta),
	})
	if err != nil {
		c.printError(err)
		return nil
	}
	c.printf("Product registered: ID=%s\n", product.ID)
	return nil
}

func (c *Console) printProducts(products []models.Product, err error) {
	if err != nil {
		c.printError(err)
		return
	}
	if len(products) == 0 {
		c.println("No products found.")
		return
	}
	for _, p := range products {
		c.printf("%s | %s | %s | %s | %s\n", p.ID, p.Category, p.Name, utils.FormatBRL(p.Price), deref(p.Meta))
	}
}

// parseCategory accepts the category names in any case, plus the
// Portuguese names the counter staff are used to.
func parseCategory(s string) models.ProductCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pizza":
		return models.CategoryPizza
	case "beverage", "bebida":
		return models.CategoryBeverage
	case "other", "outros":
		return models.CategoryOther
	}
	return models.ProductCategory(s)
}
