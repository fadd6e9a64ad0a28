package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type CustomerController struct {
	Catalog *services.CatalogService
}

func NewCustomerController(catalog *services.CatalogService) *CustomerController {
	return &CustomerController{Catalog: catalog}
}

// GetAllCustomers -> every customer ordered by name
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Catalog.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// RegisterCustomer returns 201 for a new customer and 200 when the phone or
// email already belongs to someone.
func (cc *CustomerController) RegisterCustomer(c *gin.Context) {
	var req services.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, created, err := cc.Catalog.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !created {
		utils.RespondJSON(c, http.StatusOK, "Customer already registered", customer)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Customer registered", customer)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	customer, err := cc.Catalog.GetCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// LookupCustomer -> exact id or part of the name (?q=)
func (cc *CustomerController) LookupCustomer(c *gin.Context) {
	customer, err := cc.Catalog.FindCustomer(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer found", customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var patch services.CustomerPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := cc.Catalog.UpdateCustomer(c.Request.Context(), c.Param("customer_id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// DeleteCustomer keeps the customer's past orders; they carry their own
// copy of the name.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	if err := cc.Catalog.DeleteCustomer(c.Request.Context(), c.Param("customer_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", nil)
}
