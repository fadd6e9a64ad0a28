package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// ProductLookup resolves a product id into its current catalog entry.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// CartService exposes the cart operations for one session at a time.
type CartService struct {
	store   CartStore
	catalog ProductLookup
}

func NewCartService(store CartStore, catalog ProductLookup) *CartService {
	return &CartService{store: store, catalog: catalog}
}

// AddToCart snapshots the product's current name and price into a line and
// merges it into the session cart.
func (s *CartService) AddToCart(ctx context.Context, session, productID string, qty int, note string) (CartView, error) {
	if qty <= 0 {
		return CartView{}, invalidInput("quantity must be positive, got %d", qty)
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	return s.AddLine(ctx, session, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  qty,
		UnitPrice: product.Price,
		Note:      note,
	})
}

// AddLine merges an already built line into the session cart.
func (s *CartService) AddLine(ctx context.Context, session string, line CartLine) (CartView, error) {
	if err := checkSession(session); err != nil {
		return CartView{}, err
	}
	if line.Quantity <= 0 {
		return CartView{}, invalidInput("quantity must be positive, got %d", line.Quantity)
	}
	if line.UnitPrice.IsNegative() {
		return CartView{}, invalidInput("unit price cannot be negative")
	}
	line.Note = strings.TrimSpace(line.Note)

	var view CartView
	err := s.store.Update(ctx, session, func(c *Cart) error {
		c.Add(line)
		view = c.View()
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"session":    session,
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
	}).Debug("Cart line added")
	return view, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, session string, index int) (CartLine, error) {
	if err := checkSession(session); err != nil {
		return CartLine{}, err
	}
	var removed CartLine
	err := s.store.Update(ctx, session, func(c *Cart) error {
		var err error
		removed, err = c.Remove(index)
		return err
	})
	return removed, err
}

func (s *CartService) ViewCart(ctx context.Context, session string) (CartView, error) {
	if err := checkSession(session); err != nil {
		return CartView{}, err
	}
	cart, err := s.store.Load(ctx, session)
	if err != nil {
		return CartView{}, err
	}
	return cart.View(), nil
}

func (s *CartService) ClearCart(ctx context.Context, session string) error {
	if err := checkSession(session); err != nil {
		return err
	}
	return s.store.Delete(ctx, session)
}

func checkSession(session string) error {
	if strings.TrimSpace(session) == "" {
		return invalidInput("missing cart session")
	}
	return nil
}
