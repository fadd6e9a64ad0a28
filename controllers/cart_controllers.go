package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/middlewares"
	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type CartController struct {
	Carts  *services.CartService
	Orders *services.OrderService
}

func NewCartController(carts *services.CartService, orders *services.OrderService) *CartController {
	return &CartController{Carts: carts, Orders: orders}
}

func (cc *CartController) GetCart(c *gin.Context) {
	view, err := cc.Carts.ViewCart(c.Request.Context(), middlewares.SessionID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", view)
}

func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	view, err := cc.Carts.AddToCart(c.Request.Context(), middlewares.SessionID(c), req.ProductID, req.Quantity, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", view)
}

// RemoveItem -> :index is the 1-based position shown by GetCart
func (cc *CartController) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	removed, err := cc.Carts.RemoveFromCart(c.Request.Context(), middlewares.SessionID(c), index)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", removed)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Carts.ClearCart(c.Request.Context(), middlewares.SessionID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

// PreviewCheckout finalizes the cart without recording anything, so the
// buyer can see the order before paying.
func (cc *CartController) PreviewCheckout(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := cc.Orders.FinalizeOrder(c.Request.Context(), middlewares.SessionID(c), req.CustomerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order pending payment", order)
}
