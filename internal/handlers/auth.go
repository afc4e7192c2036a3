package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/config"
	"github.com/planboard/planboard/internal/middleware"
	"github.com/planboard/planboard/internal/services"
	"github.com/planboard/planboard/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
	ldapEnabled bool
}

func NewAuthHandler(db *gorm.DB, engine *authz.Engine, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, engine, &cfg.JWT, &cfg.LDAP),
		ldapEnabled: cfg.LDAP.Enabled,
	}
}

type tokenPayload struct {
	AccessToken     string    `json:"access_token"`
	AccessExpireAt  time.Time `json:"access_expire_at"`
	RefreshToken    string    `json:"refresh_token"`
	RefreshExpireAt time.Time `json:"refresh_expire_at"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"user": result.User,
		"tokens": tokenPayload{
			AccessToken:     result.AccessToken,
			AccessExpireAt:  result.AccessExpireAt,
			RefreshToken:    result.RefreshToken,
			RefreshExpireAt: result.RefreshExpireAt,
		},
	})
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tokenPayload{
		AccessToken:     result.AccessToken,
		AccessExpireAt:  result.AccessExpireAt,
		RefreshToken:    result.RefreshToken,
		RefreshExpireAt: result.RefreshExpireAt,
	})
}

// Register creates a new user account, Admin only
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(middleware.Actor(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// GetCurrentUser returns the current logged-in user
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// GetAuthConfig returns authentication configuration
// GET /api/auth/config
func (h *AuthHandler) GetAuthConfig(c *gin.Context) {
	response.Success(c, gin.H{
		"ldap_enabled": h.ldapEnabled,
	})
}

// ChangePassword updates the caller's own password
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password changed successfully"})
}

// Logout revokes the presented refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	// The body is optional; access tokens simply expire client-side.
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.RevokeRefreshToken(req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "logged out successfully"})
}

// CreateAdminIfNotExists seeds the initial admin account from config.
func (h *AuthHandler) CreateAdminIfNotExists(adminCfg *config.AdminConfig) error {
	return h.authService.CreateAdminIfNotExists(adminCfg)
}
