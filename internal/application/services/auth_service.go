// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"slices"

	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/security"
	"github.com/PageForgeHQ/pageforge-go/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication workflows and JWT operations
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Login validates admin or editor credentials and issues a session token
func (a *AuthService) Login(password string) *AuthResult {
	var role string

	if config.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err == nil {
			role = "admin"
		}
	}

	if role == "" && config.EditorPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(config.EditorPasswordHash), []byte(password)); err == nil {
			role = "editor"
		}
	}

	if role == "" {
		a.logger.LogAuthOperation("login", "", false)
		return &AuthResult{
			Success: false,
			Error:   "Invalid credentials",
		}
	}

	token, err := security.GenerateSessionToken(role, config.JWTSecret, config.TokenTTL)
	if err != nil {
		a.logger.Auth().Error("Session token generation failed", "error", err)
		return &AuthResult{Success: false, Error: "Token generation failed"}
	}

	a.logger.LogAuthOperation("login", role, true)
	return &AuthResult{Token: token, Role: role, Success: true}
}

// ValidateToken validates a session token and returns the role it carries
func (a *AuthService) ValidateToken(tokenString string) (string, bool) {
	if tokenString == "" {
		return "", false
	}

	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return "", false
	}

	role := security.RoleFromClaims(claims)
	if role == "" {
		return "", false
	}
	return role, true
}

// ValidateTokenWithRoles validates a token and checks its role against the allowed list
func (a *AuthService) ValidateTokenWithRoles(tokenString string, allowedRoles []string) bool {
	role, ok := a.ValidateToken(tokenString)
	if !ok {
		return false
	}
	return slices.Contains(allowedRoles, role)
}

// ValidateAdminToken checks if a token belongs to an admin user
func (a *AuthService) ValidateAdminToken(tokenString string) bool {
	return a.ValidateTokenWithRoles(tokenString, []string{"admin"})
}

// ValidateAdminOrEditorToken checks if a token belongs to an admin or editor user
func (a *AuthService) ValidateAdminOrEditorToken(tokenString string) bool {
	return a.ValidateTokenWithRoles(tokenString, []string{"admin", "editor"})
}
