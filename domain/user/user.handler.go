package user

import (
	"net/http"
	"nimbusBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		LoginNative(ctx *gin.Context)
		Logout(ctx *gin.Context)
		LoginOpenId(ctx *gin.Context)
		LoginOpenIdSuccess(ctx *gin.Context)
		AuthConfig(ctx *gin.Context)
		RefreshToken(ctx *gin.Context)
	}

	userHandler struct {
		userService Service
	}
)

func CreateHandler(userService Service) Handler {
	return &userHandler{
		userService: userService,
	}
}

// @Summary	Exchange the long-lived auth token for a fresh access token
// @Produce	json
// @Tags		users
// @Success	200	{object}	utils.OkResponse[string]
// @Failure	401	{object}	nil	"The user isn't authorized"
// @Router		/users/login/refresh [get]
func (h *userHandler) RefreshToken(ctx *gin.Context) {
	var (
		authToken, accessToken string
		err                    error
	)

	if authToken, err = ctx.Cookie("authToken"); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrorUnauthorized))
		return
	}

	if accessToken, err = h.userService.RefreshAccessToken(authToken); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrorForbidden))
		return
	}

	ctx.SetCookie("accessToken", accessToken, 0, "/", "", false, false)

	ctx.JSON(utils.CreateOkResponse(accessToken))
}

// @Summary	Log in with the native admin credentials
// @Accept		json
// @Produce	json
// @Tags		users
// @Success	200		{object}	nil
// @Failure	400		{object}	utils.ErrorResponse	"The credentials provided were invalid"
// @Param		request	body		user.CredentialsIn	true	"The credentials"
// @Router		/users/login/native [post]
func (h *userHandler) LoginNative(ctx *gin.Context) {
	payload := CredentialsIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(utils.ErrorInvalidCredentials))
		return
	}

	if authToken, accessToken, err := h.userService.LoginNative(payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
	} else {
		ctx.SetCookie("authToken", authToken, 0, "/", "", false, true)
		ctx.SetCookie("accessToken", accessToken, 0, "/", "", false, false)
	}
}

// @Summary	Log out and clear all auth cookies
// @Tags		users
// @Success	200	{object}	nil
// @Router		/users/logout [post]
func (h *userHandler) Logout(ctx *gin.Context) {
	ctx.SetCookie("authToken", "", -1, "/", "", false, true)
	ctx.SetCookie("authOidc", "", -1, "/", "", false, false)
	ctx.SetCookie("accessToken", "", -1, "/", "", false, false)
}

// @Summary	Get the enabled authentication methods
// @Produce	json
// @Tags		users
// @Success	200	{object}	utils.OkResponse[user.AuthConfigOut]
// @Router		/users/login/config [get]
func (h *userHandler) AuthConfig(ctx *gin.Context) {
	ctx.JSON(utils.CreateOkResponse(h.userService.GetAuthConfig()))
}

// @Summary	Redirect to the OpenID provider's login page
// @Tags		users
// @Success	302	{object}	nil
// @Router		/users/login/openid [get]
func (h *userHandler) LoginOpenId(ctx *gin.Context) {
	url := h.userService.GetAuthCodeURL(ctx.Request.Referer())
	http.Redirect(ctx.Writer, ctx.Request, url, http.StatusFound)
}

// @Summary	OpenID redirect target that exchanges the auth code for tokens
// @Tags		users
// @Success	302	{object}	nil
// @Router		/users/login/success [get]
func (h *userHandler) LoginOpenIdSuccess(ctx *gin.Context) {
	authToken, accessToken, err := h.userService.AuthenticateWithCode(ctx, ctx.Query("code"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.SetCookie("authToken", authToken, 0, "/", "", false, true)
	ctx.SetCookie("authOidc", "true", 0, "/", "", false, false)
	ctx.SetCookie("accessToken", accessToken, 0, "/", "", false, false)

	http.Redirect(ctx.Writer, ctx.Request, ctx.Query("state"), http.StatusFound)
}
