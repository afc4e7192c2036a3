package services

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/config"
	"github.com/planboard/planboard/internal/models"
	"github.com/planboard/planboard/internal/utils"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB, *models.User) {
	t.Helper()
	utils.SetJWTSecret("test-secret")

	db := newTestDB(t)
	jwtCfg := &config.JWTConfig{
		Secret:            "test-secret",
		AccessExpireHour:  1,
		RefreshExpireHour: 24,
	}
	svc := NewAuthService(db, newTestEngine(db), jwtCfg, &config.LDAPConfig{})

	password, err := utils.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := &models.User{
		FullName: "Admin",
		Email:    "admin@example.com",
		Password: password,
		Role:     string(authz.RoleAdmin),
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	return svc, db, admin
}

func TestLogin_Local(t *testing.T) {
	svc, _, admin := newAuthService(t)

	result, err := svc.Login(&LoginRequest{
		Email:    admin.Email,
		Password: "admin123",
	}, "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("login should issue both tokens")
	}
	if result.User.LastLogin == nil {
		t.Error("login should record last_login")
	}

	claims, err := utils.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}
	if claims.UserID != admin.ID || claims.Email != admin.Email {
		t.Errorf("claims = (%d, %q), expected (%d, %q)",
			claims.UserID, claims.Email, admin.ID, admin.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, admin := newAuthService(t)

	_, err := svc.Login(&LoginRequest{
		Email:    admin.Email,
		Password: "wrong",
	}, "", "")
	if e := appErr(t, err); e.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, expected 401", e.HTTPStatus)
	}

	// An unknown email gets the same generic answer.
	_, err = svc.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "admin123",
	}, "", "")
	if e := appErr(t, err); e.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, expected 401", e.HTTPStatus)
	}
}

func TestLogin_DisabledUser(t *testing.T) {
	svc, db, admin := newAuthService(t)

	if err := db.Model(admin).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	_, err := svc.Login(&LoginRequest{Email: admin.Email, Password: "admin123"}, "", "")
	if e := appErr(t, err); e.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("disabled user status = %d, expected 401", e.HTTPStatus)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, admin := newAuthService(t)

	login, err := svc.Login(&LoginRequest{Email: admin.Email, Password: "admin123"}, "", "")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := svc.Refresh(login.RefreshToken, "", "")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh should rotate the token")
	}

	// The old token is revoked by the rotation.
	_, err = svc.Refresh(login.RefreshToken, "", "")
	if e := appErr(t, err); e.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("reused token status = %d, expected 401", e.HTTPStatus)
	}
}

func TestRevokeRefreshToken(t *testing.T) {
	svc, _, admin := newAuthService(t)

	login, err := svc.Login(&LoginRequest{Email: admin.Email, Password: "admin123"}, "", "")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.RevokeRefreshToken(login.RefreshToken); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	_, err = svc.Refresh(login.RefreshToken, "", "")
	if e := appErr(t, err); e.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, expected 401", e.HTTPStatus)
	}

	// Revoking an unknown token is a no-op.
	if err := svc.RevokeRefreshToken("unknown"); err != nil {
		t.Errorf("unknown token revoke failed: %v", err)
	}
}

func TestRegister(t *testing.T) {
	svc, _, admin := newAuthService(t)

	user, err := svc.Register(actorFor(admin), &RegisterRequest{
		FullName: "Pat Manager",
		Email:    "pm@example.com",
		Password: "secret123",
		Role:     string(authz.RoleProjectManager),
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != string(authz.RoleProjectManager) {
		t.Errorf("role = %q, expected ProjectManager", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password must be stored hashed")
	}

	// Only an Admin registers accounts.
	_, err = svc.Register(actorFor(user), &RegisterRequest{
		FullName: "Member",
		Email:    "member@example.com",
		Password: "secret123",
		Role:     string(authz.RoleTeamMember),
	})
	if e := appErr(t, err); e.HTTPStatus != http.StatusForbidden {
		t.Errorf("manager register status = %d, expected 403", e.HTTPStatus)
	}

	// Duplicate email.
	_, err = svc.Register(actorFor(admin), &RegisterRequest{
		FullName: "Other",
		Email:    "pm@example.com",
		Password: "secret123",
		Role:     string(authz.RoleTeamMember),
	})
	if e := appErr(t, err); e.HTTPStatus != http.StatusConflict {
		t.Errorf("duplicate email status = %d, expected 409", e.HTTPStatus)
	}

	// Unknown role.
	_, err = svc.Register(actorFor(admin), &RegisterRequest{
		FullName: "Other",
		Email:    "other@example.com",
		Password: "secret123",
		Role:     "Owner",
	})
	if e := appErr(t, err); e.HTTPStatus != http.StatusBadRequest {
		t.Errorf("invalid role status = %d, expected 400", e.HTTPStatus)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, admin := newAuthService(t)

	err := svc.ChangePassword(admin.ID, &ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newsecret",
	})
	if e := appErr(t, err); e.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("wrong old password status = %d, expected 401", e.HTTPStatus)
	}

	if err := svc.ChangePassword(admin.ID, &ChangePasswordRequest{
		OldPassword: "admin123",
		NewPassword: "newsecret",
	}); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(&LoginRequest{Email: admin.Email, Password: "newsecret"}, "", ""); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestCreateAdminIfNotExists(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db, newTestEngine(db), &config.JWTConfig{AccessExpireHour: 1, RefreshExpireHour: 24}, &config.LDAPConfig{})

	adminCfg := &config.AdminConfig{
		Email:    "root@example.com",
		Password: "changeme",
		FullName: "Root",
	}

	if err := svc.CreateAdminIfNotExists(adminCfg); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	// Second call is a no-op.
	if err := svc.CreateAdminIfNotExists(adminCfg); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", string(authz.RoleAdmin)).Count(&count)
	if count != 1 {
		t.Errorf("admin count = %d, expected 1", count)
	}
}
