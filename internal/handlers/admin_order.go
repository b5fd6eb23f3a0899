package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettleOrderRequest struct {
	ActualAmount *float64 `json:"actualAmount" binding:"required"`
}

/*
PATCH /orders/:id/settle
- Records what the delivery platform actually paid out
*/
func (h *Handlers) SettleOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /orders/:id/settle"
		defer h.handlePanic(c, route)

		var req SettleOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "actualAmount required")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		order, err := h.orders.Settle(ctx, c.Param("id"), *req.ActualAmount)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (h *Handlers) DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:id"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		if err := h.orders.Delete(ctx, c.Param("id")); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

/*
DELETE /orders
- Deletes every open order; closed days are kept
*/
func (h *Handlers) ClearOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		n, err := h.orders.Clear(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "orders cleared", "deleted": n})
	}
}

/*
POST /orders/close-day
- Returns the day summary and archives the open orders
*/
func (h *Handlers) CloseDay() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/close-day"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		summary, err := h.orders.CloseDay(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		h.logger.Info("day closed", zap.String("route", route), zap.Int("orders", summary.Orders))
		c.JSON(http.StatusOK, summary)
	}
}
