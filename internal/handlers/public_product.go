package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos/internal/models"
)

/*
GET /catalog
- Products, categories and modifier groups the terminal sells from
*/
func (h *Handlers) GetCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /catalog"
		defer h.handlePanic(c, route)

		if c.Query("reload") == "true" {
			ctx, cancel := h.requestContext(c)
			defer cancel()
			if _, err := h.catalog.Load(ctx); err != nil {
				h.fail(c, route, err)
				return
			}
		}

		snap := h.catalog.Snapshot()
		h.logger.Debug("catalog served",
			zap.String("route", route),
			zap.Int("products", len(snap.Products)),
		)
		c.JSON(http.StatusOK, snap)
	}
}

/*
GET /products
- ?category= exact category name, case-insensitive
- ?search= substring of the product name
*/
func (h *Handlers) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer h.handlePanic(c, route)

		products := filterProducts(
			h.catalog.Snapshot().Products,
			strings.TrimSpace(c.Query("category")),
			strings.TrimSpace(c.Query("search")),
		)
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

func filterProducts(products []models.Product, category, search string) []models.Product {
	out := make([]models.Product, 0, len(products))
	search = strings.ToLower(search)
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}
