package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos/internal/models"
	"pos/internal/store"
)

type ProductCreateRequest struct {
	Name             string              `json:"name" binding:"required"`
	Category         string              `json:"category"`
	Price            *float64            `json:"price" binding:"required,gte=0"`
	ChannelPrices    map[string]*float64 `json:"channelPrices"`
	ModifierGroupIDs []string            `json:"modifierGroupIds"`
}

type ProductUpdateRequest struct {
	Name             *string             `json:"name"`
	Category         *string             `json:"category"`
	Price            *float64            `json:"price" binding:"omitempty,gte=0"`
	ChannelPrices    map[string]*float64 `json:"channelPrices"`
	ModifierGroupIDs *[]string           `json:"modifierGroupIds"`
}

func (r ProductUpdateRequest) empty() bool {
	return r.Name == nil && r.Category == nil && r.Price == nil &&
		len(r.ChannelPrices) == 0 && r.ModifierGroupIDs == nil
}

func sanitizeLogValue(value string, max int) string {
	value = strings.TrimSpace(value)
	if len(value) > max {
		return value[:max]
	}
	return value
}

/*
POST /admin/products
*/
func (h *Handlers) CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/products"
		defer h.handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		prices, err := channelPricesForCreate(req.ChannelPrices)
		if err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		product, err := h.catalog.CreateProduct(ctx, models.Product{
			Name:             req.Name,
			Category:         req.Category,
			Price:            *req.Price,
			ChannelPrices:    prices,
			ModifierGroupIDs: models.StringList(req.ModifierGroupIDs),
		})
		if err != nil {
			h.fail(c, route, err)
			return
		}

		h.logger.Info("product created",
			zap.String("route", route),
			zap.String("productId", product.ID),
			zap.String("name", sanitizeLogValue(product.Name, 64)),
		)
		c.JSON(http.StatusCreated, product)
	}
}

/*
PUT /admin/products/:id
- Partial update; channelPrices entries set to null clear the override
*/
func (h *Handlers) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/products/:id"
		defer h.handlePanic(c, route)

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if req.empty() {
			h.respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		prices, err := resolveChannelPrices(req.ChannelPrices)
		if err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		updated, err := h.catalog.UpdateProduct(ctx, c.Param("id"), store.ProductPatch{
			Name:             req.Name,
			Category:         req.Category,
			Price:            req.Price,
			ChannelPrices:    prices,
			ModifierGroupIDs: req.ModifierGroupIDs,
		})
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /admin/products/:id
*/
func (h *Handlers) DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/products/:id"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		if err := h.catalog.DeleteProduct(ctx, c.Param("id")); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
