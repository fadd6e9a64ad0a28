package console

import (
	"context"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func (c *Console) reportsMenu(ctx context.Context) error {
	for {
		c.println("\n--- REPORTS ---")
		c.println("1) Full report")
		c.println("2) Filter by period")
		c.println("3) Back")

		op, err := c.ask("Choose: ")
		if err != nil {
			return err
		}

		switch op {
		case "1":
			c.fullReport(ctx)
		case "2":
			err = c.dateRangeReport(ctx)
		case "3":
			return nil
		default:
			c.println("Invalid option.")
		}
		if err != nil {
			return err
		}
	}
}

// fullReport prints the summary and saves a copy to the summary file.
func (c *Console) fullReport(ctx context.Context) {
	report, err := c.app.Reports.GenerateReports(ctx)
	if err != nil {
		c.printError(err)
		return
	}
	if report.OrderCount == 0 {
		c.println("No orders recorded.")
		return
	}

	loc := c.app.Reports.Location()
	if err := services.WriteSummary(c.out, report, loc); err != nil {
		c.printError(err)
		return
	}

	path := c.app.Config.Reports.SummaryPath
	if path == "" {
		return
	}
	if err := services.SaveSummary(path, report, loc); err != nil {
		c.printError(err)
		return
	}
	c.printf("Summary saved to %s\n", path)
}

func (c *Console) dateRangeReport(ctx context.Context) error {
	startStr, err := c.ask("Start date (DD/MM/YYYY): ")
	if err != nil {
		return err
	}
	endStr, err := c.ask("End date (DD/MM/YYYY): ")
	if err != nil {
		return err
	}

	loc := c.app.Reports.Location()
	start, perr := utils.ParseDay(startStr, loc)
	if perr != nil {
		c.printError(perr)
		return nil
	}
	end, perr := utils.ParseDay(endStr, loc)
	if perr != nil {
		c.printError(perr)
		return nil
	}

	result, err := c.app.Reports.FilterOrdersByDateRange(ctx, start, end)
	if err != nil {
		c.printError(err)
		return nil
	}
	if result.Count == 0 {
		c.println("No orders found in that period.")
		return nil
	}

	c.printf("\nOrders from %s to %s:\n", startStr, endStr)
	for _, o := range result.Orders {
		name := services.UnidentifiedCustomer
		if o.CustomerName != nil {
			name = *o.CustomerName
		}
		c.printf("ID: %s, Customer: %s, Total: %s, Date: %s\n",
			o.ID, name, utils.FormatBRL(o.Total), o.CreatedAt.In(loc).Format(utils.DayLayout))
	}
	c.printf("Orders in period: %d\n", result.Count)
	c.printf("Sales in period: %s\n", utils.FormatBRL(result.Total))
	return nil
}
