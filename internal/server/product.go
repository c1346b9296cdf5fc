package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
)

type productRequest struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// @Summary      Create Product
// @Description  Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body productRequest true "Create Product Request"
// @Success      200  {object}  productdomain.Product
// @Router       /products [post]
func (s *Server) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		Name: strings.TrimSpace(req.Name),
		Rate: req.Rate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Products
// @Description  List products with search and pagination
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        q     query     string  false  "Search"
// @Param        page  query     int     false  "Page"
// @Success      200  {object}  productdomain.ListResponse
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	var query productdomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Product
// @Description  Get product by ID
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productdomain.Product
// @Router       /products/{id} [get]
func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Product
// @Description  Replace product fields
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Product ID"
// @Param        request  body      productRequest  true  "Update Product Request"
// @Success      200  {object}  productdomain.Product
// @Router       /products/{id} [put]
func (s *Server) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateRequest{
		ID:   strings.TrimSpace(c.Param("id")),
		Name: strings.TrimSpace(req.Name),
		Rate: req.Rate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Product
// @Description  Delete product by ID; unknown ids are ignored
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  map[string]string
// @Router       /products/{id} [delete]
func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
