package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

type ProductController struct {
	Catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{Catalog: catalog}
}

func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products, err := pc.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// SearchProducts -> name contains ?q=, case-insensitive
func (pc *ProductController) SearchProducts(c *gin.Context) {
	products, err := pc.Catalog.SearchProductsByName(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Search results", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, err := pc.Catalog.GetProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Catalog.RegisterProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := pc.Catalog.UpdateProduct(c.Request.Context(), c.Param("product_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.Catalog.DeleteProduct(c.Request.Context(), c.Param("product_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}
