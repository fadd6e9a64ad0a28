package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

const receiptRule = "================================"

// ReceiptService renders order receipts and appends them to the receipt log.
type ReceiptService struct {
	mu      sync.Mutex
	logPath string
	loc     *time.Location
	staff   StaffNotifier
}

type ReceiptOption func(*ReceiptService)

// WithReceiptAlerts tells the staff when a receipt could not be logged.
func WithReceiptAlerts(n StaffNotifier) ReceiptOption {
	return func(s *ReceiptService) { s.staff = n }
}

func NewReceiptService(logPath string, loc *time.Location, opts ...ReceiptOption) *ReceiptService {
	if loc == nil {
		loc = time.Local
	}
	s := &ReceiptService{logPath: logPath, loc: loc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render formats the order as a receipt. It has no side effects.
func (s *ReceiptService) Render(order *models.Order) string {
	var b strings.Builder

	b.WriteString("\n===== ORDER RECEIPT =====\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	name := UnidentifiedCustomer
	if order.CustomerName != nil && *order.CustomerName != "" {
		name = *order.CustomerName
	}
	fmt.Fprintf(&b, "Customer: %s\n", name)
	if order.DeliveryAddress != nil && *order.DeliveryAddress != "" {
		fmt.Fprintf(&b, "Delivery address: %s\n", *order.DeliveryAddress)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", order.CreatedAt.In(s.loc).Format(utils.DateTimeLayout))

	b.WriteString("Items:\n")
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d) %s - x%d - %s", i+1, item.Name, item.Quantity, utils.FormatBRL(item.Subtotal()))
		if item.Note != nil && *item.Note != "" {
			fmt.Fprintf(&b, " (%s)", *item.Note)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", utils.FormatBRL(order.Total))
	fmt.Fprintf(&b, "Payment method: %s\n", order.PaymentMethod)
	if change, ok := order.Change(); ok {
		fmt.Fprintf(&b, "Cash tendered: %s\n", utils.FormatBRL(order.CashTendered.Decimal))
		fmt.Fprintf(&b, "Change: %s\n", utils.FormatBRL(change))
	}

	b.WriteString("\n" + receiptRule + "\n")
	b.WriteString("Thank you for your order!\n")
	return b.String()
}

// Emit renders a persisted order and appends it to the receipt log. The
// rendered text is returned even when the append fails.
func (s *ReceiptService) Emit(ctx context.Context, order *models.Order) (string, error) {
	if order == nil || order.State != models.OrderStatePersisted {
		return "", invalidInput("only recorded orders get a receipt")
	}
	text := s.Render(order)
	if err := ctx.Err(); err != nil {
		return text, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := appendFile(s.logPath, text); err != nil {
		utils.ErrorLogger.WithField("order_id", order.ID).Errorf("Failed to append receipt: %v", err)
		if s.staff != nil {
			s.staff.NotifyStaff(fmt.Sprintf("Receipt for order %s was not logged", order.ID))
		}
		return text, fmt.Errorf("%w: append receipt: %w", ErrPersistence, err)
	}
	utils.InfoLogger.WithField("order_id", order.ID).Info("Receipt emitted")
	return text, nil
}

func appendFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
