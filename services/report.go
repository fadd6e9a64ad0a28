package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// UnidentifiedCustomer labels orders placed without a customer.
const UnidentifiedCustomer = "unidentified customer"

// SummaryTopProducts is how many products the sales summary lists.
const SummaryTopProducts = 10

var pizzaKeywords = []string{"inteira", "meia", "pizza"}

type CustomerSales struct {
	Name   string          `json:"name"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type DayPizzas struct {
	Day    string    `json:"day"`
	Date   time.Time `json:"-"`
	Pizzas int       `json:"pizzas"`
}

type DateRangeReport struct {
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Orders []models.Order  `json:"orders"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type SalesReport struct {
	GeneratedAt     time.Time       `json:"generated_at"`
	OrderCount      int             `json:"order_count"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	ByCustomer      []CustomerSales `json:"by_customer"`
	TopProducts     []ProductSales  `json:"top_products"`
	PizzasPerDay    []DayPizzas     `json:"pizzas_per_day"`
	PizzasThisMonth int             `json:"pizzas_this_month"`
}

func TotalSales(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

func OrderCount(orders []models.Order) int {
	return len(orders)
}

// SalesByCustomer groups orders by the customer name they were placed under,
// in order of first appearance.
func SalesByCustomer(orders []models.Order) []CustomerSales {
	index := map[string]int{}
	var out []CustomerSales
	for _, o := range orders {
		name := UnidentifiedCustomer
		if o.CustomerName != nil && strings.TrimSpace(*o.CustomerName) != "" {
			name = *o.CustomerName
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CustomerSales{Name: name, Total: decimal.Zero})
		}
		out[i].Orders++
		out[i].Total = out[i].Total.Add(o.Total)
	}
	return out
}

// SortCustomersByTotal returns a copy sorted by total, biggest spender first.
func SortCustomersByTotal(in []CustomerSales) []CustomerSales {
	out := make([]CustomerSales, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopProducts ranks line names by units sold. limit <= 0 returns every product.
func TopProducts(orders []models.Order, limit int) []ProductSales {
	index := map[string]int{}
	var out []ProductSales
	for _, o := range orders {
		for _, item := range o.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(out)
				index[item.Name] = i
				out = append(out, ProductSales{Name: item.Name, Revenue: decimal.Zero})
			}
			out[i].Quantity += item.Quantity
			out[i].Revenue = out[i].Revenue.Add(item.Subtotal())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterByDateRange keeps the orders created between the calendar days of
// start and end, both inclusive, as seen in loc.
func FilterByDateRange(orders []models.Order, start, end time.Time, loc *time.Location) (DateRangeReport, error) {
	from := utils.DayOf(start, loc)
	to := utils.DayOf(end, loc)
	if to.Before(from) {
		return DateRangeReport{}, invalidInput("end date %s is before start date %s",
			to.Format(utils.DayLayout), from.Format(utils.DayLayout))
	}

	report := DateRangeReport{
		Start:  from,
		End:    to,
		Orders: []models.Order{},
		Total:  decimal.Zero,
	}
	for _, o := range orders {
		day := utils.DayOf(o.CreatedAt, loc)
		if day.Before(from) || day.After(to) {
			continue
		}
		report.Orders = append(report.Orders, o)
		report.Total = report.Total.Add(o.Total)
	}
	report.Count = len(report.Orders)
	return report, nil
}

// IsPizzaLine reports whether a line name looks like a pizza sale.
func IsPizzaLine(name string) bool {
	name = strings.ToLower(name)
	for _, kw := range pizzaKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// PizzasPerDay sums pizza units per calendar day, oldest day first.
func PizzasPerDay(orders []models.Order, loc *time.Location) []DayPizzas {
	index := map[time.Time]int{}
	var out []DayPizzas
	for _, o := range orders {
		day := utils.DayOf(o.CreatedAt, loc)
		for _, item := range o.Items {
			if !IsPizzaLine(item.Name) {
				continue
			}
			i, ok := index[day]
			if !ok {
				i = len(out)
				index[day] = i
				out = append(out, DayPizzas{Day: day.Format(utils.DayLayout), Date: day})
			}
			out[i].Pizzas += item.Quantity
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// PizzasThisMonth sums pizza units sold in the calendar month of now.
func PizzasThisMonth(orders []models.Order, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	total := 0
	for _, o := range orders {
		created := o.CreatedAt.In(loc)
		if created.Year() != now.Year() || created.Month() != now.Month() {
			continue
		}
		for _, item := range o.Items {
			if IsPizzaLine(item.Name) {
				total += item.Quantity
			}
		}
	}
	return total
}

// GenerateReports computes the full sales report from scratch.
func GenerateReports(orders []models.Order, now time.Time, loc *time.Location) SalesReport {
	return SalesReport{
		GeneratedAt:     now,
		OrderCount:      OrderCount(orders),
		TotalSales:      TotalSales(orders),
		ByCustomer:      SalesByCustomer(orders),
		TopProducts:     TopProducts(orders, SummaryTopProducts),
		PizzasPerDay:    PizzasPerDay(orders, loc),
		PizzasThisMonth: PizzasThisMonth(orders, now, loc),
	}
}
