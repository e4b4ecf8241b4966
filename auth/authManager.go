package auth

import (
	"context"
	"crypto/rand"
	"nimbusBackend/config"
	"nimbusBackend/utils"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coreos/go-oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

type (
	AuthManager interface {
		Init(config *config.NimbusConfig)
		CreateAuthToken(userId string) (string, error)
		CreateAccessToken(authUser AuthenticatedUser) (string, error)
		AuthenticateUser(tokenString string) (*AuthenticatedUser, error)
		LoginNative(username string, password string) (string, string, error)
		GetAuthCodeURL(stateToken string) string
		AuthenticateWithCode(authCode string, userSubToIdMapper func(userSub string, userProfile string) (string, error)) (*AuthenticatedUser, error)
		AuthenticatorMiddleware() gin.HandlerFunc
		RefreshAccessToken(authToken string) (string, error)
		RegisterTestUser(authUser AuthenticatedUser) (string, error)
	}

	authManager struct {
		config             *config.NimbusConfig
		authenticatedUsers map[string]*AuthenticatedUser
		oauth2Config       oauth2.Config
		provider           oidc.Provider
		oidcSecret         string
		jwtSecret          []byte
		adminGroups        []string
		isNativeEnabled    bool
		nativeUsername     string
		nativePassword     string
	}

	AuthenticatedUser struct {
		// The UUID of the user
		UserId string
		// The chat groups the user belongs to, as reported by the OpenID provider
		Groups  []string
		IsAdmin bool
	}
)

const NativeUserID = "00000000-0000-0000-0000-00000000000"

func CreateAuthManager(config *config.NimbusConfig) AuthManager {
	isNativeEnabled := config.Auth.EnableNativeAdmin
	nativeUsername := os.Getenv("NB_NATIVE_USERNAME")
	nativePassword := os.Getenv("NB_NATIVE_PASSWORD")

	if isNativeEnabled && (nativeUsername == "" || nativePassword == "") {
		log.Warn("Native admin is enabled but username or password is empty!")
	}

	authManager := &authManager{
		config:             config,
		authenticatedUsers: make(map[string]*AuthenticatedUser),
		adminGroups:        config.Auth.OpenIdAdminGroups,
		jwtSecret:          ([]byte)(rand.Text()),
		oidcSecret:         os.Getenv("NB_OIDC_SECRET"),
		isNativeEnabled:    isNativeEnabled,
		nativeUsername:     nativeUsername,
		nativePassword:     nativePassword,
	}

	authManager.Init(config)

	return authManager
}

func (m *authManager) Init(config *config.NimbusConfig) {
	if m.isNativeEnabled {
		m.authenticatedUsers[NativeUserID] = &AuthenticatedUser{
			UserId:  NativeUserID,
			IsAdmin: true,
			Groups:  make([]string, 0),
		}
	}

	if !config.Auth.EnableOpenId {
		return
	}

	provider, err := oidc.NewProvider(context.TODO(), config.Auth.OpenIdIssuer)
	if err != nil {
		log.Fatalf("Failed to connect to OpenID provider: %s", err.Error())
		os.Exit(1)
	}

	m.provider = *provider
	m.oauth2Config = oauth2.Config{
		ClientID:     config.Auth.OpenIdClientId,
		ClientSecret: m.oidcSecret,
		RedirectURL:  config.Auth.OpenIdRedirectHost + "/users/login/success",
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID},
	}
}

func (m *authManager) RefreshAccessToken(authToken string) (string, error) {
	if authUser, err := m.AuthenticateUser(authToken); err != nil {
		return "", err
	} else if newAccessToken, err := m.CreateAccessToken(*authUser); err != nil {
		return "", err
	} else {
		return newAccessToken, nil
	}
}

func (m *authManager) AuthenticatorMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken, err := ctx.Cookie("accessToken")
		if err != nil {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrorUnauthorized))
			ctx.Abort()
			return
		}

		if user, err := m.AuthenticateUser(accessToken); err != nil {
			ctx.JSON(utils.CreateErrorResponse(utils.ErrorTokenInvalid))
			ctx.Abort()
			return
		} else {
			ctx.Set("authUser", *user)
			ctx.Next()
		}
	}
}

func (m *authManager) AuthenticateWithCode(authCode string, userSubToIdMapper func(userSub string, userProfile string) (string, error)) (*AuthenticatedUser, error) {
	ctx := context.TODO()
	token, err := m.oauth2Config.Exchange(ctx, authCode)
	if err != nil {
		log.Errorf("[AUTH] OAuth token exchange failed: %s", err.Error())
		return nil, utils.ErrorOpenIDError
	}

	info, err := m.provider.UserInfo(ctx, m.oauth2Config.TokenSource(ctx, token))
	if err != nil {
		log.Errorf("[AUTH] Failed to get oauth userinfo: %s", err.Error())
		return nil, utils.ErrorOpenIDError
	}

	var claims struct {
		Sub     string   `json:"sub"`
		Groups  []string `json:"groups"`
		Profile string   `json:"email"`
	}

	if err = info.Claims(&claims); err != nil {
		log.Warnf("[AUTH] Failed to parse claims from userinfo: %s", err.Error())
		return nil, utils.ErrorOpenIDError
	}

	isAdmin := false
	for _, group := range m.adminGroups {
		if slices.Contains(claims.Groups, group) {
			isAdmin = true
			break
		}
	}

	// Register authenticated user
	userId, err := userSubToIdMapper(claims.Sub, claims.Profile)
	if err != nil {
		return nil, err
	}

	authenticatedUser := &AuthenticatedUser{
		UserId:  userId,
		IsAdmin: isAdmin,
		Groups:  claims.Groups,
	}
	m.authenticatedUsers[userId] = authenticatedUser

	return authenticatedUser, nil
}

func (m *authManager) GetAuthCodeURL(stateToken string) string {
	return m.oauth2Config.AuthCodeURL(stateToken)
}

func (m *authManager) LoginNative(username string, password string) (string, string, error) {
	if m.isNativeEnabled && username == m.nativeUsername && password == m.nativePassword {
		authUser := m.authenticatedUsers[NativeUserID]
		if authToken, err := m.CreateAuthToken(NativeUserID); err != nil {
			return "", "", err
		} else if accessToken, err := m.CreateAccessToken(*authUser); err != nil {
			return "", "", err
		} else {
			return authToken, accessToken, nil
		}
	}
	return "", "", utils.ErrorInvalidCredentials
}

func (m *authManager) AuthenticateUser(tokenString string) (*AuthenticatedUser, error) {
	if token, err := jwt.Parse(tokenString, m.tokenParser); err != nil {
		return nil, utils.ErrorTokenInvalid
	} else if tokenClaims, ok := token.Claims.(jwt.MapClaims); !ok {
		return nil, utils.ErrorTokenInvalid
	} else if userId, ok := tokenClaims["id"]; !ok {
		return nil, utils.ErrorTokenInvalid
	} else if permissions, ok := m.authenticatedUsers[userId.(string)]; !ok {
		return nil, utils.ErrorTokenInvalid
	} else {
		return permissions, nil
	}
}

func (m *authManager) CreateAuthToken(userId string) (string, error) {
	nbToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userId,
		"nbf": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 720).Unix(),
	})

	return nbToken.SignedString(m.jwtSecret)
}

func (m *authManager) CreateAccessToken(authUser AuthenticatedUser) (string, error) {
	nbToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":      authUser.UserId,
		"isAdmin": authUser.IsAdmin,
		"nbf":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Minute * 15).Unix(),
	})

	return nbToken.SignedString(m.jwtSecret)
}

func (m *authManager) tokenParser(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, utils.ErrorTokenInvalid
	}

	return m.jwtSecret, nil
}

func (m *authManager) RegisterTestUser(user AuthenticatedUser) (string, error) {
	m.authenticatedUsers[user.UserId] = &user
	return user.UserId, nil
}
