package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/handlers/dto"
	"github.com/rafabene/backoffice/internal/handlers/middleware"
	"github.com/rafabene/backoffice/internal/services"
)

// AuthHandler lida com cadastro, sessão e redefinição de senha
type AuthHandler struct {
	authService  *services.AuthService
	resetService *services.PasswordResetService
	cookies      *middleware.CookieHelper
	logger       ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(
	authService *services.AuthService,
	resetService *services.PasswordResetService,
	cookies *middleware.CookieHelper,
	logger ports.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
		cookies:      cookies,
		logger:       logger,
	}
}

// Register godoc
// @Summary Register
// @Description Creates a regular (non-admin) user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrRegistrationInvalid)
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req.ToInput()); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created"})
}

// Login godoc
// @Summary Login
// @Description Verifies credentials and sets the auth_token and user_role cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrCredentialsRequired)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.cookies.SetSession(c, session.Token, string(session.User.Role), session.ExpiresIn)
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:      dto.ToUserResponse(session.User),
		ExpiresIn: int64(session.ExpiresIn.Seconds()),
	})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session cookies; works even when the token already expired
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.ClearSession(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), h.cookies.SessionToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Always answers the same way whether or not the email exists
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrEmailRequired)
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If that email exists, a reset link has been sent"})
}

// ResetPassword godoc
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrResetInputInvalid)
		return
	}

	if err := h.resetService.ConsumeReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successful"})
}
