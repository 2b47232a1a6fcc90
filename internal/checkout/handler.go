package checkout

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	httperr "github.com/bodega-labs/bodega/internal/core/errors"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the checkout endpoints. adminOnly guards the
// administrative edit path.
func (s *Service) RegisterRoutes(r gin.IRouter, adminOnly gin.HandlerFunc) {
	r.POST("/v1/sales", s.CheckoutHandler)
	r.PUT("/v1/sales/:id", adminOnly, s.EditHandler)
}

type checkoutRequest struct {
	LineItems []v1.LineItem `json:"line_items" binding:"required"`
}

// bindJSON enforces the configured body-size limit, then decodes the request
// body into dst. It writes the error response itself and reports whether
// binding succeeded.
func (s *Service) bindJSON(c *gin.Context, dst interface{}) bool {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1)
	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Failed to read request body",
			Details:   err.Error(),
		})
		return false
	}
	if int64(len(bodyBytes)) > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Request body exceeds maximum allowed size",
			Details:   map[string]interface{}{"max_size_mb": maxBytes / (1024 * 1024)},
		})
		return false
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

// CheckoutHandler handles POST /v1/sales: finalizes the submitted cart.
func (s *Service) CheckoutHandler(c *gin.Context) {
	var req checkoutRequest
	if !s.bindJSON(c, &req) {
		return
	}

	// Rebuild through a cart so repeated product names merge the same way the
	// register does.
	cart := NewCart()
	for _, line := range req.LineItems {
		cart.AddQuantity(line.ProductName, line.UnitPrice, line.Quantity)
	}

	sale, err := s.Checkout(c.Request.Context(), cart)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpEmptyCartError,
				Message:   "There are no products in the cart",
			})
			return
		}
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusConflict, httperr.ErrorResponse{
				ErrorType: httperr.HttpDuplicateSaleError,
				Message:   "Sale already exists",
			})
			return
		}

		slog.Error("Checkout failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to complete the sale",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

type editRequest struct {
	LineItems []v1.LineItem `json:"line_items" binding:"required"`
}

// EditHandler handles PUT /v1/sales/:id: the administrative line-item edit.
// The total is recomputed server-side, never taken from the request.
func (s *Service) EditHandler(c *gin.Context) {
	id := c.Param("id")

	var req editRequest
	if !s.bindJSON(c, &req) {
		return
	}

	total, err := s.EditLines(c.Request.Context(), id, req.LineItems)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "Sale not found",
			})
			return
		}

		slog.Error("Sale edit failed", "sale_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to edit the sale",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "total": total})
}
