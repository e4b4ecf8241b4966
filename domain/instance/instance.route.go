package instance

import (
	"nimbusBackend/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager) {
	routes := route.Group("/instances", authManager.AuthenticatorMiddleware())
	{
		routes.GET("", handler.Get)
		routes.POST("", handler.Create)
		routes.GET("/:instanceName", handler.GetByName)
		routes.POST("/:instanceName/reboot", handler.Reboot)
		routes.DELETE("/:instanceName", handler.Terminate)
	}
}
