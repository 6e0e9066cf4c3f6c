package controllers

import (
	"errors"
	"net/http"
	"time"

	"hotel-desk/metrics"
	"hotel-desk/middleware"
	"hotel-desk/services"
	"hotel-desk/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AuthController struct {
	UserSvc  *services.UserService
	Tokens   *utils.TokenIssuer
	Sessions services.SessionStore
	Log      *zerolog.Logger
}

func NewAuthController(users *services.UserService, tokens *utils.TokenIssuer, sessions services.SessionStore, log *zerolog.Logger) *AuthController {
	return &AuthController{UserSvc: users, Tokens: tokens, Sessions: sessions, Log: log}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "username and password are required")
		return
	}

	user, err := ac.UserSvc.VerifyPassword(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		metrics.IncLogin(false)
		if errors.Is(err, services.ErrInvalidCredentials) {
			ac.Log.Warn().Str("username", req.Username).Str("client_ip", c.ClientIP()).Msg("login failed")
		}
		respondError(c, err)
		return
	}

	token, claims, err := ac.Tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.IncLogin(true)
	ac.Log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login")

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Unix(claims.ExpiresAt, 0).UTC(),
		"user":      user,
	})
}

// Logout POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authorization token is required")
		return
	}
	if err := ac.Sessions.Revoke(c.Request.Context(), claims.Id, claims.Remaining()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authorization token is required")
		return
	}
	user, err := ac.UserSvc.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
