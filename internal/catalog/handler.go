package catalog

import (
	"log/slog"
	"net/http"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	httperr "github.com/bodega-labs/bodega/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the catalog endpoints. adminOnly guards writes.
func (s *Service) RegisterRoutes(r gin.IRouter, adminOnly gin.HandlerFunc) {
	r.GET("/v1/areas", s.ListAreasHandler)
	r.GET("/v1/areas/:id/products", s.ProductsByAreaHandler)
	r.POST("/v1/products", adminOnly, s.CreateProductHandler)
}

// ListAreasHandler handles GET /v1/areas.
func (s *Service) ListAreasHandler(c *gin.Context) {
	areas, err := s.ListAreas(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list areas", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Could not load the areas",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

// ProductsByAreaHandler handles GET /v1/areas/:id/products.
func (s *Service) ProductsByAreaHandler(c *gin.Context) {
	var uri struct {
		ID int64 `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid area id",
			Details:   err.Error(),
		})
		return
	}

	products, err := s.ProductsByArea(c.Request.Context(), uri.ID)
	if err != nil {
		slog.Error("Failed to list products", "area_id", uri.ID, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Could not load the products",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"area_id": uri.ID, "products": products})
}

// CreateProductHandler handles POST /v1/products.
func (s *Service) CreateProductHandler(c *gin.Context) {
	var product v1.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	if err := s.CreateProduct(c.Request.Context(), &product); err != nil {
		slog.Error("Failed to create product", "name", product.Name, "error", err)
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Could not create the product",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, product)
}
