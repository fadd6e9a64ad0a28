package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
)

// ReportService loads the persisted orders and runs the report
// aggregations over them. Nothing is cached; every call reads everything.
type ReportService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewReportService(db *gorm.DB, loc *time.Location, now func() time.Time) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &ReportService{db: db, loc: loc, now: now}
}

func (s *ReportService) Location() *time.Location { return s.loc }

// Orders returns every order with its lines, oldest first.
func (s *ReportService) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Order("data_iso").
		Find(&orders).Error
	if err != nil {
		return nil, storageError("order", "", err)
	}
	return orders, nil
}

func (s *ReportService) GenerateReports(ctx context.Context) (SalesReport, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return SalesReport{}, err
	}
	return GenerateReports(orders, s.now(), s.loc), nil
}

func (s *ReportService) FilterOrdersByDateRange(ctx context.Context, start, end time.Time) (DateRangeReport, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return DateRangeReport{}, err
	}
	return FilterByDateRange(orders, start, end, s.loc)
}

// TopProducts ranks every product sold; limit <= 0 means no limit.
func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return TopProducts(orders, limit), nil
}

// TopCustomers lists customers by total spent, biggest first.
func (s *ReportService) TopCustomers(ctx context.Context) ([]CustomerSales, error) {
	orders, err := s.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return SortCustomersByTotal(SalesByCustomer(orders)), nil
}
