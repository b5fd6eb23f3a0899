package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

/*
GET /orders
- Open orders, newest first
- page + limit optional (defaults 1 / 20)
*/
func (h *Handlers) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer h.handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		result, err := h.orders.List(ctx, page, limit)
		if err != nil {
			h.fail(c, route, err)
			return
		}

		h.logger.Debug("orders listed", zap.String("route", route), zap.Int("count", len(result.Orders)))
		c.JSON(http.StatusOK, gin.H{
			"data": result.Orders,
			"pagination": gin.H{
				"page":       result.Page,
				"limit":      result.Limit,
				"total":      result.Total,
				"totalPages": result.TotalPages,
			},
		})
	}
}

/*
GET /orders/pending
- Delivery orders still waiting for the platform payout
*/
func (h *Handlers) GetPendingOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/pending"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		list, err := h.orders.Pending(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

/*
GET /orders/summary
- Totals over the open day
*/
func (h *Handlers) GetOrderSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/summary"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		summary, err := h.orders.Summary(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
