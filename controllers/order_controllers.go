package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/middlewares"
	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type OrderController struct {
	Orders   *services.OrderService
	Receipts *services.ReceiptService
}

func NewOrderController(orders *services.OrderService, receipts *services.ReceiptService) *OrderController {
	return &OrderController{Orders: orders, Receipts: receipts}
}

type placedOrder struct {
	Order   *models.Order `json:"order"`
	Receipt string        `json:"receipt"`
}

// PlaceOrder records the session cart as an order and emits its receipt.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Checkout(c.Request.Context(), middlewares.SessionID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	receipt, err := oc.Receipts.Emit(c.Request.Context(), order)
	if err != nil {
		// the order is committed; only the receipt log write failed
		utils.RespondJSON(c, http.StatusCreated, "Order recorded, receipt log unavailable", placedOrder{Order: order, Receipt: receipt})
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order recorded", placedOrder{Order: order, Receipt: receipt})
}

// GetAllOrders -> orders with their items, newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, err := oc.Orders.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) GetOrderItems(c *gin.Context) {
	items, err := oc.Orders.OrderItems(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order items", items)
}

// GetReceipt re-renders the receipt of a stored order. The receipt log is
// not touched.
func (oc *OrderController) GetReceipt(c *gin.Context) {
	order, err := oc.Orders.GetOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt", gin.H{
		"order_id": order.ID,
		"receipt":  oc.Receipts.Render(order),
	})
}
