package auth

import (
	"net/http"
	"os"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string, maxAge int) {
	isProd := os.Getenv("APP_ENV") == "production"
	for name, value := range map[string]string{"access_token": accessToken, "refresh_token": refreshToken} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   isProd,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	token, refreshToken, userResp, err := ctrl.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if c.GetHeader("X-Client-Type") == "web" {
		setAuthCookies(c, token, refreshToken, int(RefreshTokenTTL.Seconds()))
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  token,
		"refresh_token": refreshToken,
	}, nil)
}

func (ctrl *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		if cookie, err := c.Cookie("refresh_token"); err == nil {
			refreshToken = cookie
		}
	}
	if refreshToken == "" {
		writeError(c, apperror.RequiredField("Refresh Token"))
		return
	}

	token, newRefresh, userResp, err := ctrl.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	if c.GetHeader("X-Client-Type") == "web" {
		setAuthCookies(c, token, newRefresh, int(RefreshTokenTTL.Seconds()))
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  token,
		"refresh_token": newRefresh,
	}, nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if actor.EmployeeID == "" {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	userResp, err := ctrl.service.GetMe(c.Request.Context(), actor.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	setAuthCookies(c, "", "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}
