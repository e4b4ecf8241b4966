package instance

import (
	"nimbusBackend/auth"
	"nimbusBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		GetByName(ctx *gin.Context)
		Create(ctx *gin.Context)
		Reboot(ctx *gin.Context)
		Terminate(ctx *gin.Context)
	}

	instanceHandler struct {
		instanceService Service
	}
)

func CreateHandler(instanceService Service) Handler {
	return &instanceHandler{
		instanceService: instanceService,
	}
}

// @Summary	Get all tracked instances
// @Produce	json
// @Tags		instances
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[[]instance.InstanceOut]
// @Failure	401	{object}	nil					"The user isn't authorized"
// @Failure	498	{object}	nil					"The provided access token is not valid"
// @Failure	400	{object}	utils.ErrorResponse	"The filter was invalid."
// @Router		/instances [get]
func (h *instanceHandler) Get(ctx *gin.Context) {
	var instanceFilter InstanceFilter
	if err := ctx.BindQuery(&instanceFilter); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	result, err := h.instanceService.Get(ctx, instanceFilter)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Get a specific instance by name
// @Produce	json
// @Tags		instances
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[instance.InstanceOut]
// @Failure	401	{object}	nil					"The user isn't authorized"
// @Failure	404	{object}	utils.ErrorResponse	"The requested instance was not found."
// @Router		/instances/{instanceName} [get]
func (h *instanceHandler) GetByName(ctx *gin.Context) {
	result, err := h.instanceService.GetByName(ctx, ctx.Param("instanceName"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Create a new instance
// @Accept		json
// @Produce	json
// @Tags		instances
// @Security	BasicAuth
// @Success	200		{object}	utils.OkResponse[cloud.InstanceDetails]
// @Failure	401		{object}	nil					"The user isn't authorized"
// @Failure	400		{object}	utils.ErrorResponse	"The request was invalid."
// @Failure	502		{object}	utils.ErrorResponse	"The cloud provider call failed."
// @Param		request	body		instance.InstanceIn	true	"The instance"
// @Router		/instances [post]
func (h *instanceHandler) Create(ctx *gin.Context) {
	payload := InstanceIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)
	result, err := h.instanceService.Create(ctx, payload, authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Reboot an instance
// @Produce	json
// @Tags		instances
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[cloud.InstanceDetails]
// @Failure	401	{object}	nil					"The user isn't authorized"
// @Failure	404	{object}	utils.ErrorResponse	"The requested instance was not found."
// @Failure	502	{object}	utils.ErrorResponse	"The cloud provider call failed."
// @Router		/instances/{instanceName}/reboot [post]
func (h *instanceHandler) Reboot(ctx *gin.Context) {
	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)
	result, err := h.instanceService.Reboot(ctx, ctx.Param("instanceName"), authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Terminate an instance
// @Produce	json
// @Tags		instances
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[cloud.InstanceDetails]
// @Failure	401	{object}	nil					"The user isn't authorized"
// @Failure	404	{object}	utils.ErrorResponse	"The requested instance was not found."
// @Failure	502	{object}	utils.ErrorResponse	"The cloud provider call failed."
// @Router		/instances/{instanceName} [delete]
func (h *instanceHandler) Terminate(ctx *gin.Context) {
	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)
	result, err := h.instanceService.Terminate(ctx, ctx.Param("instanceName"), authUser)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
