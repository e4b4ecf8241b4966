package statusMessage

import (
	"nimbusBackend/auth"
	"nimbusBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
	}

	statusMessageHandler struct {
		statusMessageService Service
	}
)

func CreateHandler(statusMessageService Service) Handler {
	return &statusMessageHandler{
		statusMessageService: statusMessageService,
	}
}

// @Summary	Get the status messages for the current user
// @Produce	json
// @Tags		status-messages
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[[]statusMessage.StatusMessageOut]
// @Failure	401	{object}	nil	"The user isn't authorized"
// @Failure	498	{object}	nil	"The provided access token is not valid"
// @Router		/status-messages [get]
func (h *statusMessageHandler) Get(ctx *gin.Context) {
	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)

	filter := StatusMessageFilter{
		Limit:  20,
		Offset: 0,
	}
	if err := ctx.BindQuery(&filter); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	result, err := h.statusMessageService.Get(ctx, authUser.UserId, filter)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
