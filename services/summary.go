package services

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// WriteSummary renders the plain-text sales summary.
func WriteSummary(w io.Writer, r SalesReport, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Sales summary - %s\n", r.GeneratedAt.In(loc).Format(utils.DateTimeLayout))
	fmt.Fprintf(bw, "Total orders: %d\n", r.OrderCount)
	fmt.Fprintf(bw, "Total sales: %s\n", utils.FormatBRL(r.TotalSales))

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Top products:")
	for _, p := range r.TopProducts {
		fmt.Fprintf(bw, "%s: %d\n", p.Name, p.Quantity)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Sales by customer:")
	for _, c := range r.ByCustomer {
		fmt.Fprintf(bw, "%s: %d orders - %s\n", c.Name, c.Orders, utils.FormatBRL(c.Total))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Pizzas per day:")
	for _, d := range r.PizzasPerDay {
		fmt.Fprintf(bw, "%s: %d pizzas\n", d.Day, d.Pizzas)
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Pizzas this month: %d\n", r.PizzasThisMonth)
	return bw.Flush()
}

// SaveSummary writes the text summary to path, replacing any previous one.
func SaveSummary(path string, r SalesReport, loc *time.Location) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := WriteSummary(f, r, loc); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// WriteSummaryPDF renders the sales summary as a one-section A4 document.
func WriteSummaryPDF(w io.Writer, r SalesReport, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Sales summary", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Sales summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, r.GeneratedAt.In(loc).Format(utils.DateTimeLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total orders: %d", r.OrderCount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Total sales: "+utils.FormatBRL(r.TotalSales), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Pizzas this month: %d", r.PizzasThisMonth), "", 1, "L", false, 0, "")

	section := func(title string, headers [3]string) {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(100, 7, headers[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, headers[1], "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, headers[2], "1", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(a, b, c string) {
		pdf.CellFormat(100, 6, tr(a), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, b, "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, c, "1", 1, "R", false, 0, "")
	}

	section("Top products", [3]string{"Product", "Units", "Revenue"})
	for _, p := range r.TopProducts {
		row(p.Name, fmt.Sprint(p.Quantity), utils.FormatBRL(p.Revenue))
	}

	section("Sales by customer", [3]string{"Customer", "Orders", "Total"})
	for _, c := range r.ByCustomer {
		row(c.Name, fmt.Sprint(c.Orders), utils.FormatBRL(c.Total))
	}

	section("Pizzas per day", [3]string{"Day", "Pizzas", ""})
	for _, d := range r.PizzasPerDay {
		row(d.Day, fmt.Sprint(d.Pizzas), "")
	}

	png, err := PizzasPerDayChart(r.PizzasPerDay)
	if err != nil {
		// the tables above still carry the numbers
		utils.ErrorLogger.Errorf("Failed to render pizzas chart: %v", err)
	} else if png != nil {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.Ln(5)
		pdf.RegisterImageOptionsReader("pizzas-per-day", opts, bytes.NewReader(png))
		pdf.ImageOptions("pizzas-per-day", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	}

	return pdf.Output(w)
}
