package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos/internal/store"
)

type CategoryCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int64  `json:"sortOrder"`
}

type CategoryUpdateRequest struct {
	Name      *string `json:"name"`
	SortOrder *int64  `json:"sortOrder"`
}

/*
GET /admin/categories
- Sorted by sortOrder, then name
*/
func (h *Handlers) GetAllCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"data": h.catalog.Snapshot().Categories,
		})
	}
}

/*
POST /admin/categories
- Names are unique regardless of case
*/
func (h *Handlers) CreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/categories"
		defer h.handlePanic(c, route)

		var req CategoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		category, err := h.catalog.CreateCategory(ctx, req.Name, req.SortOrder)
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

/*
PUT /admin/categories/:id
*/
func (h *Handlers) UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/categories/:id"
		defer h.handlePanic(c, route)

		var req CategoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		category, err := h.catalog.UpdateCategory(ctx, c.Param("id"), store.CategoryPatch{
			Name:      req.Name,
			SortOrder: req.SortOrder,
		})
		if err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

/*
DELETE /admin/categories/:id
- Products keep their category name
*/
func (h *Handlers) DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/categories/:id"
		defer h.handlePanic(c, route)

		ctx, cancel := h.requestContext(c)
		defer cancel()

		if err := h.catalog.DeleteCategory(ctx, c.Param("id")); err != nil {
			h.fail(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}
