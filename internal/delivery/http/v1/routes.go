package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API under /api/v1 plus the root-level
// health endpoint. When authRequired is false the mutating task routes
// are left open, matching deployments that run without authentication.
func RegisterRoutes(router gin.IRouter, h Handler, authRequired bool) {
	router.GET("/health", h.HandleHealth)

	api := router.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.GET("", h.HandleListTasks)
	tasks.GET("/:id", h.HandleGetTask)
	if authRequired {
		tasks.POST("", h.HandleAuthMiddleware, h.HandleCreateTask)
		tasks.PATCH("/:id", h.HandleAuthMiddleware, h.HandleUpdateTask)
		tasks.DELETE("/:id", h.HandleAuthMiddleware, h.HandleDeleteTask)
	} else {
		tasks.POST("", h.HandleCreateTask)
		tasks.PATCH("/:id", h.HandleUpdateTask)
		tasks.DELETE("/:id", h.HandleDeleteTask)
	}

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", h.HandleLogin)
	authRoutes.POST("/refresh", h.HandleRefresh)
	authRoutes.POST("/register", h.HandleRegister)
}
