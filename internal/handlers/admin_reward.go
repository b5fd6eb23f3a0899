package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos/internal/models"
	"pos/internal/store"
)

type RewardCreateRequest struct {
	Name           string `json:"name" binding:"required"`
	PointsRequired int    `json:"pointsRequired" binding:"required,gt=0"`
	Description    string `json:"description"`
	IsActive       *bool  `json:"isActive"`
}

type RewardUpdateRequest struct {
	Name           *string `json:"name"`
	PointsRequired *int    `json:"pointsRequired" binding:"omitempty,gt=0"`
	Description    *string `json:"description"`
	IsActive       *bool   `json:"isActive"`
}

/*
GET /rewards       active rewards only
GET /admin/rewards ?active=true to filter
*/
func (h *Handlers) GetRewards(activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /rewards"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		rewards, err := h.members.Rewards(ctx, activeOnly || c.Query("active") == "true")
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rewards})
	}
}

func (h *Handlers) CreateReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/rewards"
		defer h.handlePanic(c, route)

		var req RewardCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		reward, err := h.members.CreateReward(ctx, models.Reward{
			Name:           req.Name,
			PointsRequired: req.PointsRequired,
			Description:    req.Description,
			IsActive:       isActive,
		})
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, reward)
	}
}

func (h *Handlers) UpdateReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/rewards/:id"
		defer h.handlePanic(c, route)

		var req RewardUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if req.Name == nil && req.PointsRequired == nil && req.Description == nil && req.IsActive == nil {
			h.respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		reward, err := h.members.UpdateReward(ctx, c.Param("id"), store.RewardPatch{
			Name:           req.Name,
			PointsRequired: req.PointsRequired,
			Description:    req.Description,
			IsActive:       req.IsActive,
		})
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, reward)
	}
}

func (h *Handlers) DeleteReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/rewards/:id"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		if err := h.members.DeleteReward(ctx, c.Param("id")); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "reward deleted"})
	}
}
