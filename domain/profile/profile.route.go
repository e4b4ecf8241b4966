package profile

import (
	"nimbusBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/profiles", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.Get)
		routes.GET("/:profileName", handler.GetByName)
		routes.PUT("/:profileName", handler.Put)
		routes.DELETE("/:profileName", handler.Delete)
	}
}
