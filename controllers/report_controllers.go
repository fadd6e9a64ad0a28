package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// GetSalesReport -> totals, per customer, top products and pizzas sold
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	report, err := rc.Reports.GenerateReports(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales report", report)
}

// GetSalesByDateRange -> ?start=DD/MM/YYYY&end=DD/MM/YYYY, both inclusive
func (rc *ReportController) GetSalesByDateRange(c *gin.Context) {
	loc := rc.Reports.Location()
	start, err := utils.ParseDay(c.Query("start"), loc)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("start: %w", err))
		return
	}
	end, err := utils.ParseDay(c.Query("end"), loc)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("end: %w", err))
		return
	}

	result, err := rc.Reports.FilterOrdersByDateRange(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders in range", result)
}

func (rc *ReportController) GetTopProducts(c *gin.Context) {
	limit := services.SummaryTopProducts
	if raw := c.Query("limit"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("limit must be a number"))
			return
		}
	}

	products, err := rc.Reports.TopProducts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top products", products)
}

func (rc *ReportController) GetTopCustomers(c *gin.Context) {
	customers, err := rc.Reports.TopCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top customers", customers)
}

func (rc *ReportController) GetSummaryText(c *gin.Context) {
	report, err := rc.Reports.GenerateReports(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := services.WriteSummary(&buf, report, rc.Reports.Location()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (rc *ReportController) GetSummaryPDF(c *gin.Context) {
	report, err := rc.Reports.GenerateReports(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := services.WriteSummaryPDF(&buf, report, rc.Reports.Location()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resumo.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
