package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/config"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/internal/utils"
	"github.com/planboard/planboard/pkg/logger"
	"github.com/planboard/planboard/pkg/response"
)

type AuthService struct {
	db          *gorm.DB
	engine      *authz.Engine
	ldapService *LDAPService
	jwtConfig   *config.JWTConfig
}

func NewAuthService(db *gorm.DB, engine *authz.Engine, jwtCfg *config.JWTConfig, ldapCfg *config.LDAPConfig) *AuthService {
	return &AuthService{
		db:          db,
		engine:      engine,
		ldapService: NewLDAPService(ldapCfg),
		jwtConfig:   jwtCfg,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type"` // local, ldap
}

type LoginResult struct {
	AccessToken     string
	AccessExpireAt  time.Time
	RefreshToken    string
	RefreshExpireAt time.Time
	User            *models.User
}

type RefreshResult struct {
	AccessToken     string
	AccessExpireAt  time.Time
	RefreshToken    string
	RefreshExpireAt time.Time
}

// Login authenticates a user by email and issues an access/refresh token
// pair. Failures never reveal whether the email or the password was wrong.
func (s *AuthService) Login(req *LoginRequest, clientIP, userAgent string) (*LoginResult, error) {
	var user *models.User
	var err error

	if req.AuthType == "" {
		req.AuthType = "local"
	}

	switch req.AuthType {
	case "local":
		user, err = s.localAuth(req.Email, req.Password)
	case "ldap":
		user, err = s.ldapAuth(req.Email, req.Password)
	default:
		return nil, response.NewBadRequest("invalid auth type")
	}
	if err != nil {
		return nil, err
	}

	accessHours := s.jwtConfig.AccessExpireHour
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, accessHours)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshHash := generateRefreshToken()
	refreshExpireAt := time.Now().Add(time.Duration(s.jwtConfig.RefreshExpireHour) * time.Hour)
	refreshRecord := models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   refreshHash,
		ExpiresAt:   refreshExpireAt,
		CreatedByIP: clientIP,
		UserAgent:   userAgent,
	}
	if err := s.db.Create(&refreshRecord).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Save(user)

	return &LoginResult{
		AccessToken:     token,
		AccessExpireAt:  time.Now().Add(time.Duration(accessHours) * time.Hour),
		RefreshToken:    refreshToken,
		RefreshExpireAt: refreshExpireAt,
		User:            user,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A revoked or expired token is rejected.
func (s *AuthService) Refresh(refreshToken string, clientIP, userAgent string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, response.NewUnauthorized("refresh token required")
	}

	hash := hashRefreshToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ?", hash).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid refresh token")
		}
		return nil, err
	}

	if stored.RevokedAt != nil {
		return nil, response.NewUnauthorized("refresh token revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, response.NewUnauthorized("refresh token expired")
	}

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, response.NewUnauthorized("user is disabled")
	}

	accessHours := s.jwtConfig.AccessExpireHour
	newAccessToken, err := utils.GenerateToken(user.ID, user.Email, user.Role, accessHours)
	if err != nil {
		return nil, err
	}

	newRefreshToken, newRefreshHash := generateRefreshToken()
	now := time.Now()
	newRefresh := models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   newRefreshHash,
		ExpiresAt:   now.Add(time.Duration(s.jwtConfig.RefreshExpireHour) * time.Hour),
		CreatedByIP: clientIP,
		UserAgent:   userAgent,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newRefresh).Error; err != nil {
			return err
		}
		return tx.Model(&stored).Update("revoked_at", now).Error
	}); err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken:     newAccessToken,
		AccessExpireAt:  time.Now().Add(time.Duration(accessHours) * time.Hour),
		RefreshToken:    newRefreshToken,
		RefreshExpireAt: newRefresh.ExpiresAt,
	}, nil
}

// RevokeRefreshToken revokes the presented refresh token. An unknown token
// is a no-op so logout never fails.
func (s *AuthService) RevokeRefreshToken(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	hash := hashRefreshToken(refreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", time.Now()).Error
}

func generateRefreshToken() (token string, tokenHash string) {
	token = uuid.NewString() + uuid.NewString()
	return token, hashRefreshToken(token)
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *AuthService) localAuth(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND auth_type = ?", email, "local").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("user is disabled")
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	return &user, nil
}

func (s *AuthService) ldapAuth(email, password string) (*models.User, error) {
	ldapUser, err := s.ldapService.Authenticate(email, password)
	if err != nil {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	// Find or provision the local record. Directory users start as
	// TeamMember; an Admin promotes them afterwards if needed.
	var user models.User
	err = s.db.Where("email = ? AND auth_type = ?", ldapUser.Email, "ldap").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			FullName: ldapUser.FullName,
			Email:    ldapUser.Email,
			Role:     string(authz.RoleTeamMember),
			AuthType: "ldap",
			IsActive: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("user is disabled")
	}

	if ldapUser.FullName != "" && ldapUser.FullName != user.FullName {
		user.FullName = ldapUser.FullName
		s.db.Save(&user)
	}

	return &user, nil
}

func (s *AuthService) IsLDAPEnabled() bool {
	return s.ldapService.IsEnabled()
}

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// Register creates a new local user. Only an Admin may register accounts; a
// duplicate email is rejected with a conflict.
func (s *AuthService) Register(actor authz.Actor, req *RegisterRequest) (*models.User, error) {
	if _, err := authorize(s.engine, actor, authz.OpUserRegister, authz.Resource{}); err != nil {
		return nil, err
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return nil, response.NewBadRequest("invalid role: " + req.Role)
	}

	var existing int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, response.NewConflict("email is already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     string(role),
		AuthType: "local",
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return response.NewNotFound("user not found")
	}

	if user.AuthType != "local" {
		return response.NewBadRequest("LDAP users cannot change password here")
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return response.NewUnauthorized("incorrect old password")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.db.Save(&user).Error
}

// CreateAdminIfNotExists seeds the initial admin account from config on
// first startup.
func (s *AuthService) CreateAdminIfNotExists(adminCfg *config.AdminConfig) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("role = ?", string(authz.RoleAdmin)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := utils.HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName: adminCfg.FullName,
		Email:    adminCfg.Email,
		Password: hashedPassword,
		Role:     string(authz.RoleAdmin),
		AuthType: "local",
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info().Str("email", adminCfg.Email).Msg("Created initial admin user")
	return nil
}
