package controller

import (
	"net/http"

	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type forgotPasswordRequest struct {
	Email   string `json:"email" binding:"required,email"`
	BaseURL string `json:"baseUrl" binding:"required,url"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "Registration details"
// @Success 201 {object} util.Response
// @Router /auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ctl.auth.Register(input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Account created, check your email for the verification code", user)
}

// VerifyEmail godoc
// @Summary Verify an account with the emailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body verifyEmailRequest true "Email and code"
// @Success 200 {object} util.Response
// @Router /auth/verify-email [post]
func (ctl *AuthController) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ctl.auth.VerifyEmail(req.Email, req.OTP); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Account verified, you can now log in", nil)
}

// ResendOTP godoc
// @Summary Resend the verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body emailRequest true "Account email"
// @Success 200 {object} util.Response
// @Router /auth/resend-otp [post]
func (ctl *AuthController) ResendOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ctl.auth.ResendOTP(req.Email); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Verification code sent", nil)
}

// Login godoc
// @Summary Log in and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "Credentials"
// @Success 200 {object} util.Response
// @Router /auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, tokens, err := ctl.auth.Login(input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Logged in", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh godoc
// @Summary Rotate the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body refreshRequest true "Refresh token"
// @Success 200 {object} util.Response
// @Router /auth/refresh [post]
func (ctl *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := ctl.auth.Refresh(req.RefreshToken)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Tokens refreshed", tokens)
}

// Logout godoc
// @Summary Revoke the current session
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /auth/logout [post]
func (ctl *AuthController) Logout(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	if err := ctl.auth.Logout(userID); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Logged out", nil)
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "Account email and frontend base URL"
// @Success 200 {object} util.Response
// @Router /auth/forgot-password [post]
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ctl.auth.ForgotPassword(req.Email, req.BaseURL); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "If the email is registered, a reset link has been sent", nil)
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "Reset token and new password"
// @Success 200 {object} util.Response
// @Router /auth/reset-password [post]
func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ctl.auth.ResetPassword(req.Token, req.NewPassword); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Password has been reset, log in with the new password", nil)
}

// ChangePassword godoc
// @Summary Change the password while logged in
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body changePasswordRequest true "Current and new password"
// @Success 200 {object} util.Response
// @Router /auth/change-password [post]
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	if err := ctl.auth.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Password changed", nil)
}
