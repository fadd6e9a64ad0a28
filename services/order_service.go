package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// OrderNotifier is told about every order once it has been committed.
type OrderNotifier interface {
	OrderRecorded(order *models.Order)
}

// StaffNotifier pushes a short alert to the staff screens.
type StaffNotifier interface {
	NotifyStaff(message string)
}

// CustomerLookup resolves a customer id for checkout.
type CustomerLookup interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
}

type OrderService struct {
	db        *gorm.DB
	carts     CartStore
	customers CustomerLookup
	notifier  OrderNotifier
	now       func() time.Time
}

type OrderOption func(*OrderService)

func WithNotifier(n OrderNotifier) OrderOption {
	return func(s *OrderService) { s.notifier = n }
}

func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

func NewOrderService(db *gorm.DB, carts CartStore, customers CustomerLookup, opts ...OrderOption) *OrderService {
	s := &OrderService{
		db:        db,
		carts:     carts,
		customers: customers,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckoutRequest carries everything the buyer chooses at checkout.
type CheckoutRequest struct {
	CustomerID      string           `json:"customer_id"`
	PaymentMethod   string           `json:"payment_method"`
	CashTendered    *decimal.Decimal `json:"cash_tendered,omitempty"`
	DeliveryAddress *string          `json:"delivery_address,omitempty"`
}

// FinalizeOrder turns the session cart into an order awaiting payment. The
// cart is left as is; it is only cleared once the order is recorded.
func (s *OrderService) FinalizeOrder(ctx context.Context, session, customerID string) (*models.Order, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	cart, err := s.carts.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		ID:            newID(orderIDPrefix),
		PaymentMethod: models.PaymentCash,
		CreatedAt:     s.now(),
		State:         models.OrderStatePendingPayment,
	}
	for _, line := range cart.Snapshot() {
		item := models.OrderItem{
			OrderID:   order.ID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if line.ProductID != "" {
			pid := line.ProductID
			item.ProductID = &pid
		}
		if line.Note != "" {
			note := line.Note
			item.Note = &note
		}
		order.Items = append(order.Items, item)
	}
	order.Total = order.LinesTotal()

	if id := strings.TrimSpace(customerID); id != "" {
		customer, err := s.customers.GetCustomer(ctx, id)
		switch {
		case err == nil:
			order.CustomerID = &customer.ID
			name := customer.Name
			order.CustomerName = &name
			if customer.Address != nil {
				addr := *customer.Address
				order.DeliveryAddress = &addr
			}
		case errors.Is(err, ErrNotFound):
			utils.InfoLogger.WithFields(logrus.Fields{
				"order_id":    order.ID,
				"customer_id": id,
			}).Info("Customer not found, finalizing order anonymously")
		default:
			return nil, err
		}
	}
	return order, nil
}

// RecordOrder persists a pending order with all its lines in one
// transaction. The session cart is cleared only after the commit.
func (s *OrderService) RecordOrder(ctx context.Context, session string, order *models.Order) error {
	if order == nil {
		return invalidInput("no order to record")
	}
	if order.State != models.OrderStatePendingPayment {
		return invalidInput("order %s is not pending payment", order.ID)
	}
	if err := validateOrder(order); err != nil {
		return err
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&order.Items).Error
	})
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"error":    err,
		}).Error("Failed to record order")
		return fmt.Errorf("%w: record order %s: %w", ErrPersistence, order.ID, err)
	}
	order.State = models.OrderStatePersisted

	if session != "" {
		if err := s.carts.Delete(ctx, session); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"session":  session,
				"error":    err,
			}).Error("Order recorded but cart could not be cleared")
		}
	}
	observeRecordedOrder(order)
	if s.notifier != nil {
		s.notifier.OrderRecorded(order)
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"total":          order.Total.StringFixed(2),
		"payment_method": order.PaymentMethod,
		"items":          len(order.Items),
	}).Info("Order recorded")
	return nil
}

// Checkout finalizes the session cart, applies the buyer's choices and
// records the order.
func (s *OrderService) Checkout(ctx context.Context, session string, req CheckoutRequest) (*models.Order, error) {
	order, err := s.FinalizeOrder(ctx, session, req.CustomerID)
	if err != nil {
		return nil, err
	}

	method := models.PaymentCash
	if strings.TrimSpace(req.PaymentMethod) != "" {
		if method, err = ParsePaymentMethod(req.PaymentMethod); err != nil {
			return nil, err
		}
	}
	if err := ApplyPayment(order, method, req.CashTendered); err != nil {
		return nil, err
	}
	if req.DeliveryAddress != nil {
		order.DeliveryAddress = trimmedOrNil(req.DeliveryAddress)
	}

	if err := s.RecordOrder(ctx, session, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns every order with its lines, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Order("data_iso DESC").
		Find(&orders).Error
	if err != nil {
		return nil, storageError("order", "", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, storageError("order", id, err)
	}
	return &order, nil
}

func (s *OrderService) OrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return nil, storageError("order", orderID, err)
	}
	if count == 0 {
		return nil, notFound("order", orderID)
	}

	var items []models.OrderItem
	if err := db.Where("pedido_id = ?", orderID).Order("id").Find(&items).Error; err != nil {
		return nil, storageError("order", orderID, err)
	}
	return items, nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func validateOrder(order *models.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return invalidInput("line %q has non-positive quantity %d", item.Name, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return invalidInput("line %q has a negative unit price", item.Name)
		}
	}
	if !order.Total.Equal(order.LinesTotal()) {
		return invalidInput("order total %s does not match its lines %s",
			order.Total.StringFixed(2), order.LinesTotal().StringFixed(2))
	}
	return validatePayment(order)
}
