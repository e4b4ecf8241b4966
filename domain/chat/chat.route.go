package chat

import (
	"crypto/subtle"
	"nimbusBackend/auth"
	"nimbusBackend/utils"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(route *gin.Engine, handler Handler, authManager auth.AuthManager, webhookToken string) {
	routes := route.Group("/chat")
	{
		routes.POST("/commands", WebhookAuthenticatorMiddleware(webhookToken), handler.HandleCommand)
		routes.GET("/history", authManager.AuthenticatorMiddleware(), handler.GetHistory)
	}
}

// WebhookAuthenticatorMiddleware Guards the command webhook with a shared token.
// Requests without a matching X-Nimbus-Token header are rejected, as is every
// request when no token is configured.
func WebhookAuthenticatorMiddleware(webhookToken string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		provided := ctx.GetHeader("X-Nimbus-Token")

		if webhookToken == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(webhookToken)) != 1 {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrorChatTokenInvalid))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
