package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos/internal/models"
)

type ModifierOptionRequest struct {
	ID    string  `json:"id"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

type ModifierGroupCreateRequest struct {
	Name    string                  `json:"name" binding:"required"`
	Options []ModifierOptionRequest `json:"options" binding:"dive"`
}

type ModifierGroupRenameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r ModifierOptionRequest) option() models.ModifierOption {
	return models.ModifierOption{ID: r.ID, Name: r.Name, Price: r.Price}
}

func (h *Handlers) GetModifierGroups() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"data": h.catalog.Snapshot().ModifierGroups,
		})
	}
}

/*
POST /admin/modifier-groups
- Options without an id get one assigned
*/
func (h *Handlers) CreateModifierGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/modifier-groups"
		defer h.handlePanic(c, route)

		var req ModifierGroupCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		options := make([]models.ModifierOption, 0, len(req.Options))
		for _, o := range req.Options {
			options = append(options, o.option())
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		group, err := h.catalog.CreateModifierGroup(ctx, req.Name, options)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, group)
	}
}

func (h *Handlers) RenameModifierGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/modifier-groups/:id"
		defer h.handlePanic(c, route)

		var req ModifierGroupRenameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		group, err := h.catalog.RenameModifierGroup(ctx, c.Param("id"), req.Name)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

/*
DELETE /admin/modifier-groups/:id
- Products offering the group lose the reference
*/
func (h *Handlers) DeleteModifierGroup() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/modifier-groups/:id"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		if err := h.catalog.DeleteModifierGroup(ctx, c.Param("id")); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "modifier group deleted"})
	}
}

func (h *Handlers) AddModifierOption() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/modifier-groups/:id/options"
		defer h.handlePanic(c, route)

		var req ModifierOptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		group, err := h.catalog.AddOption(ctx, c.Param("id"), req.option())
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, group)
	}
}

func (h *Handlers) UpdateModifierOption() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/modifier-groups/:id/options/:optionId"
		defer h.handlePanic(c, route)

		var req ModifierOptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		req.ID = c.Param("optionId")

		ctx, cancel := h.requestContext(c)
		defer cancel()

		group, err := h.catalog.UpdateOption(ctx, c.Param("id"), req.option())
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, group)
	}
}

func (h *Handlers) RemoveModifierOption() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/modifier-groups/:id/options/:optionId"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		group, err := h.catalog.RemoveOption(ctx, c.Param("id"), c.Param("optionId"))
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, group)
	}
}
