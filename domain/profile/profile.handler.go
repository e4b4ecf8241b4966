package profile

import (
	"nimbusBackend/auth"
	"nimbusBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		GetByName(ctx *gin.Context)
		Put(ctx *gin.Context)
		Delete(ctx *gin.Context)
	}

	profileHandler struct {
		profileService Service
	}
)

func CreateHandler(profileService Service) Handler {
	return &profileHandler{
		profileService: profileService,
	}
}

// @Summary	Get all launch profiles
// @Produce	json
// @Tags		profiles
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[[]profile.ProfileOut]
// @Failure	401	{object}	nil	"The user isn't authorized"
// @Failure	498	{object}	nil	"The provided access token is not valid"
// @Router		/profiles [get]
func (h *profileHandler) Get(ctx *gin.Context) {
	result, err := h.profileService.Get(ctx)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Get a specific launch profile by name
// @Produce	json
// @Tags		profiles
// @Security	BasicAuth
// @Success	200	{object}	utils.OkResponse[profile.ProfileOut]
// @Failure	401	{object}	nil					"The user isn't authorized"
// @Failure	404	{object}	utils.ErrorResponse	"The requested profile was not found."
// @Router		/profiles/{profileName} [get]
func (h *profileHandler) GetByName(ctx *gin.Context) {
	result, err := h.profileService.GetByName(ctx, ctx.Param("profileName"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

// @Summary	Create or replace a launch profile
// @Accept		json
// @Produce	json
// @Tags		profiles
// @Security	BasicAuth
// @Success	200		{object}	nil
// @Failure	400		{object}	utils.ErrorResponse	"The profile did not pass schema validation."
// @Failure	401		{object}	nil					"The user isn't authorized"
// @Failure	403		{object}	utils.ErrorResponse	"Only admins can modify profiles."
// @Param		request	body		profile.ProfileIn	true	"The profile"
// @Router		/profiles/{profileName} [put]
func (h *profileHandler) Put(ctx *gin.Context) {
	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)
	if !authUser.IsAdmin {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrorForbidden))
		return
	}

	payload := ProfileIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	if err := h.profileService.Put(ctx, ctx.Param("profileName"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

// @Summary	Delete a launch profile
// @Produce	json
// @Tags		profiles
// @Security	BasicAuth
// @Success	200	{object}	nil
// @Failure	401	{object}	nil					"The user isn't authorized"
// @Failure	403	{object}	utils.ErrorResponse	"Only admins can modify profiles."
// @Failure	404	{object}	utils.ErrorResponse	"The requested profile was not found."
// @Router		/profiles/{profileName} [delete]
func (h *profileHandler) Delete(ctx *gin.Context) {
	authUser := ctx.MustGet("authUser").(auth.AuthenticatedUser)
	if !authUser.IsAdmin {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrorForbidden))
		return
	}

	if err := h.profileService.Delete(ctx, ctx.Param("profileName")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
