package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pos/internal/member"
)

type RegisterMemberRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
}

type RedeemRequest struct {
	RewardID string `json:"rewardId" binding:"required"`
}

func (h *Handlers) GetMembers() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /members"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		list, err := h.members.List(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list})
	}
}

/*
GET /members/:phone
- 400 until the phone has enough digits, 404 unknown, 410 expired
*/
func (h *Handlers) GetMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /members/:phone"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		m, err := h.members.Lookup(ctx, c.Param("phone"))
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

/*
POST /members
- Registers a member; attached to the checkout in progress, if any
*/
func (h *Handlers) RegisterMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /members"
		defer h.handlePanic(c, route)

		var req RegisterMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "phone and nickname required")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		m, err := h.terminal.RegisterMember(ctx, req.Phone, req.Nickname)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func (h *Handlers) RedeemReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /members/:phone/redeem"
		defer h.handlePanic(c, route)

		var req RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "rewardId required")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		m, err := h.members.Redeem(ctx, c.Param("phone"), req.RewardID)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}

func (h *Handlers) GetMemberHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /members/:phone/history"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		history, err := h.members.History(ctx, c.Param("phone"))
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": history})
	}
}

func (h *Handlers) DeleteMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /members/:phone"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		if err := h.members.Delete(ctx, c.Param("phone")); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "member deleted"})
	}
}

/*
GET /members/stats
- Ranking by spend, members away for more than 30 days and favourite items,
  built from every order that carried a member phone
*/
func (h *Handlers) GetMemberStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /members/stats"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		list, err := h.members.List(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		history, err := h.orders.All(ctx)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": member.BuildStats(list, history, time.Now())})
	}
}
