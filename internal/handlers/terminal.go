package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos/internal/cart"
	"pos/internal/models"
	"pos/internal/terminal"
)

type SetChannelRequest struct {
	Channel string `json:"channel" binding:"required"`
}

type AddItemRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	OptionIDs []string `json:"optionIds"`
}

type CheckoutRequest struct {
	Method        string   `json:"method"`
	CashReceived  *float64 `json:"cashReceived" binding:"omitempty,gte=0"`
	ReferenceCode string   `json:"referenceCode"`
	MemberPhone   string   `json:"memberPhone"`
}

type confirmResponse struct {
	Order        models.Order `json:"order"`
	Change       *float64     `json:"change,omitempty"`
	PointsEarned int          `json:"pointsEarned"`
	LoyaltyError string       `json:"loyaltyError,omitempty"`
}

func (h *Handlers) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.terminal.Cart())
	}
}

/*
PUT /terminal/channel
- New items are priced for the channel; lines already in the cart keep their price
*/
func (h *Handlers) SetChannel() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /terminal/channel"
		defer h.handlePanic(c, route)

		var req SetChannelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "channel required")
			return
		}

		if err := h.terminal.SetChannel(models.Channel(req.Channel)); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, h.terminal.Cart())
	}
}

func (h *Handlers) AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /terminal/cart/items"
		defer h.handlePanic(c, route)

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		line, err := h.terminal.AddItem(c.Request.Context(), req.ProductID, req.OptionIDs)
		if err != nil {
			h.fail(c, route, err)
			return
		}

		h.logger.Debug("item added",
			zap.String("route", route),
			zap.String("productId", req.ProductID),
			zap.Int("quantity", line.Quantity),
		)
		c.JSON(http.StatusCreated, gin.H{
			"line": terminal.NewLineView(line),
			"cart": h.terminal.Cart(),
		})
	}
}

func (h *Handlers) lineKey(c *gin.Context, route string) (cart.LineKey, bool) {
	key, err := cart.ParseLineKey(c.Param("key"))
	if err != nil {
		h.respondWithError(c, http.StatusBadRequest, route, "invalid line key")
		return cart.LineKey{}, false
	}
	return key, true
}

func (h *Handlers) IncreaseLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /terminal/cart/lines/:key/increase"
		defer h.handlePanic(c, route)

		key, ok := h.lineKey(c, route)
		if !ok {
			return
		}
		line, err := h.terminal.Increase(key)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"line": terminal.NewLineView(line),
			"cart": h.terminal.Cart(),
		})
	}
}

/*
POST /terminal/cart/lines/:key/decrease
- A line at quantity 1 is removed
*/
func (h *Handlers) DecreaseLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /terminal/cart/lines/:key/decrease"
		defer h.handlePanic(c, route)

		key, ok := h.lineKey(c, route)
		if !ok {
			return
		}
		line, removed, err := h.terminal.Decrease(key)
		if err != nil {
			h.fail(c, route, err)
			return
		}

		resp := gin.H{"removed": removed, "cart": h.terminal.Cart()}
		if !removed {
			resp["line"] = terminal.NewLineView(line)
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handlers) RemoveLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /terminal/cart/lines/:key"
		defer h.handlePanic(c, route)

		key, ok := h.lineKey(c, route)
		if !ok {
			return
		}
		if err := h.terminal.Remove(key); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, h.terminal.Cart())
	}
}

func (h *Handlers) ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /terminal/cart"
		defer h.handlePanic(c, route)

		if err := h.terminal.ClearCart(); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, h.terminal.Cart())
	}
}

/*
POST /terminal/checkout
- Opens the payment screen for the active channel
*/
func (h *Handlers) BeginCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /terminal/checkout"
		defer h.handlePanic(c, route)

		view, err := h.terminal.BeginCheckout()
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

/*
PUT /terminal/checkout
- Replaces the payment details; the response carries the live verdict
- An empty method keeps the one already selected
*/
func (h *Handlers) UpdateCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /terminal/checkout"
		defer h.handlePanic(c, route)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		method := models.PaymentMethod(req.Method)
		if method == "" {
			method = h.terminal.CheckoutView().Input.Method
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		view, err := h.terminal.UpdateCheckout(ctx, terminal.PaymentInput{
			Method:        method,
			CashReceived:  req.CashReceived,
			ReferenceCode: req.ReferenceCode,
			MemberPhone:   req.MemberPhone,
		})
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func (h *Handlers) GetCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.terminal.CheckoutView())
	}
}

/*
POST /terminal/checkout/confirm
- 422 with the blocking reason when the payment details do not validate
- 409 while another submission is in progress
- 502 when the order store rejects the order; the cart is kept for a retry
*/
func (h *Handlers) ConfirmCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /terminal/checkout/confirm"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		res, err := h.terminal.Confirm(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}

		resp := confirmResponse{
			Order:        res.Order,
			Change:       res.Change,
			PointsEarned: res.PointsEarned,
		}
		if res.EffectErr != nil {
			h.logger.Warn("loyalty not applied",
				zap.String("route", route),
				zap.String("orderId", res.Order.ID),
				zap.Error(res.EffectErr),
			)
			resp.LoyaltyError = "points could not be credited"
		}

		c.JSON(http.StatusCreated, resp)
	}
}

func (h *Handlers) CancelCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /terminal/checkout/cancel"
		defer h.handlePanic(c, route)

		if err := h.terminal.CancelCheckout(); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, h.terminal.CheckoutView())
	}
}
