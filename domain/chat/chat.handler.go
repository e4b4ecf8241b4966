package chat

import (
	"net/http"
	"nimbusBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		HandleCommand(ctx *gin.Context)
		GetHistory(ctx *gin.Context)
	}

	chatHandler struct {
		chatService Service
	}
)

func CreateHandler(chatService Service) Handler {
	return &chatHandler{
		chatService: chatService,
	}
}

// @Summary	Run a chat command
// @Accept		json
// @Produce	json
// @Tags		chat
// @Success	200		{object}	utils.OkResponse[chat.CommandResult]
// @Failure	403		{object}	utils.ErrorResponse	"The provided webhook token is not valid"
// @Failure	400		{object}	utils.ErrorResponse	"The request was invalid."
// @Param		request	body		chat.CommandIn	true	"The chat command"
// @Router		/chat/commands [post]
func (h *chatHandler) HandleCommand(ctx *gin.Context) {
	payload := CommandIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result := h.chatService.HandleCommand(ctx, payload)

	ctx.JSON(http.StatusOK, utils.OkResponse[CommandResult]{Payload: result})
}

// @Summary	Get the chat command history
// @Produce	json
// @Tags		chat
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[[]chat.ChatCommandOut]
// @Failure	401	{object}	nil	"The user isn't authorized"
// @Failure	498	{object}	nil	"The provided access token is not valid"
// @Router		/chat/history [get]
func (h *chatHandler) GetHistory(ctx *gin.Context) {
	var filter HistoryFilter
	if err := ctx.BindQuery(&filter); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	result, err := h.chatService.GetHistory(ctx, filter)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
