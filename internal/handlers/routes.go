package handlers

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", h.Health())

	r.GET("/catalog", h.GetCatalog())
	r.GET("/products", h.GetProducts())
	r.GET("/rewards", h.GetRewards(true))

	term := r.Group("/terminal")
	{
		term.PUT("/channel", h.SetChannel())

		term.GET("/cart", h.GetCart())
		term.POST("/cart/items", h.AddCartItem())
		term.POST("/cart/lines/:key/increase", h.IncreaseLine())
		term.POST("/cart/lines/:key/decrease", h.DecreaseLine())
		term.DELETE("/cart/lines/:key", h.RemoveLine())
		term.DELETE("/cart", h.ClearCart())

		term.POST("/checkout", h.BeginCheckout())
		term.PUT("/checkout", h.UpdateCheckout())
		term.GET("/checkout", h.GetCheckout())
		term.POST("/checkout/confirm", h.ConfirmCheckout())
		term.POST("/checkout/cancel", h.CancelCheckout())
	}

	members := r.Group("/members")
	{
		members.GET("", h.GetMembers())
		members.POST("", h.RegisterMember())
		members.GET("/stats", h.GetMemberStats())
		members.GET("/:phone", h.GetMember())
		members.GET("/:phone/history", h.GetMemberHistory())
		members.POST("/:phone/redeem", h.RedeemReward())
		members.DELETE("/:phone", h.DeleteMember())
	}

	orders := r.Group("/orders")
	{
		orders.GET("", h.GetOrders())
		orders.GET("/pending", h.GetPendingOrders())
		orders.GET("/summary", h.GetOrderSummary())
		orders.POST("/close-day", h.CloseDay())
		orders.PATCH("/:id/settle", h.SettleOrder())
		orders.DELETE("/:id", h.DeleteOrder())
		orders.DELETE("", h.ClearOrders())
	}

	admin := r.Group("/admin")
	{
		admin.GET("/products", h.GetProducts())
		admin.POST("/products", h.CreateProduct())
		admin.PUT("/products/:id", h.UpdateProduct())
		admin.DELETE("/products/:id", h.DeleteProduct())

		admin.GET("/categories", h.GetAllCategories())
		admin.POST("/categories", h.CreateCategory())
		admin.PUT("/categories/:id", h.UpdateCategory())
		admin.DELETE("/categories/:id", h.DeleteCategory())

		admin.GET("/modifier-groups", h.GetModifierGroups())
		admin.POST("/modifier-groups", h.CreateModifierGroup())
		admin.PUT("/modifier-groups/:id", h.RenameModifierGroup())
		admin.DELETE("/modifier-groups/:id", h.DeleteModifierGroup())
		admin.POST("/modifier-groups/:id/options", h.AddModifierOption())
		admin.PUT("/modifier-groups/:id/options/:optionId", h.UpdateModifierOption())
		admin.DELETE("/modifier-groups/:id/options/:optionId", h.RemoveModifierOption())

		admin.GET("/rewards", h.GetRewards(false))
		admin.POST("/rewards", h.CreateReward())
		admin.PUT("/rewards/:id", h.UpdateReward())
		admin.DELETE("/rewards/:id", h.DeleteReward())
	}
}
