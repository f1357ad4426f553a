package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamkick/teamkick/config"
	"github.com/teamkick/teamkick/internal/middleware"
	"github.com/teamkick/teamkick/internal/user"
	"github.com/teamkick/teamkick/pkg/responses"
	"github.com/teamkick/teamkick/pkg/token"
	"github.com/teamkick/teamkick/pkg/validator"
	"github.com/teamkick/teamkick/utils"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, config: cfg}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.Auth.SessionSecret, ac.config.Auth.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(u.ID, ac.config.Auth.SessionSecret, ac.config.Auth.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.Auth.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account with the player global role and returns a token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if _, err := ac.repo.GetUserByUsername(req.Username); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.Conflict(c, "User with this username already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	newUser := &user.User{
		Username:     req.Username,
		Password:     hashedPassword,
		FullName:     req.FullName,
		Role:         user.RolePlayer,
		Email:        req.Email,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
		LastActive:   time.Now(),
	}
	if err := ac.repo.CreateUser(newUser); err != nil {
		responses.InternalServerError(c, "Failed to create user")
		return
	}

	access, refresh, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User registered", AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         newUser,
	})
}

// Login godoc
// @Summary Authenticate and establish a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByUsername(req.Username)
	if err != nil {
		// Same response for unknown user and wrong password.
		responses.Unauthorized(c, "Invalid username or password")
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid username or password")
		return
	}

	u.LastActive = time.Now()
	if err := ac.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update user")
		return
	}

	access, refresh, err := ac.generateAndSaveTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in", AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         u,
	})
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} responses.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} responses.ErrorResponse
// @Router /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	if _, err := token.ValidateJWT(req.RefreshToken, ac.config.Auth.SessionSecret); err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Refresh token revoked or unknown")
		return
	}

	u, err := ac.repo.GetUserByID(stored.UserID)
	if err != nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	// Rotate: the presented token is revoked and a fresh pair issued.
	if err := ac.repo.RevokeRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	access, refresh, err := ac.generateAndSaveTokens(u)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         u,
	})
}

// Logout godoc
// @Summary Destroy the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	if err := ac.repo.RevokeUserRefreshTokens(userID); err != nil {
		responses.InternalServerError(c, "Failed to revoke tokens")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged out", nil)
}

// Me godoc
// @Summary Current identity
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=user.User}
// @Failure 401 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", u)
}

// UpdateProfile godoc
// @Summary Update own profile fields
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse{data=user.User}
// @Security ApiKeyAuth
// @Router /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Position != nil {
		u.Position = *req.Position
	}
	if req.JerseyNumber != nil {
		u.JerseyNumber = *req.JerseyNumber
	}

	if err := ac.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated", u)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationFailed(c, validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if !utils.CheckPassword(u.Password, req.OldPassword) {
		responses.Unauthorized(c, "Old password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}
	u.Password = hashed

	if err := ac.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to change password")
		return
	}

	// Existing sessions are invalidated on password change.
	if err := ac.repo.RevokeUserRefreshTokens(userID); err != nil {
		responses.InternalServerError(c, "Failed to revoke sessions")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Password changed", nil)
}
