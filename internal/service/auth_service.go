package service

import (
	"fmt"
	"time"

	"studyhive_backend/internal/config"
	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
	"studyhive_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpTTL        = 10 * time.Minute
	resetTokenTTL = time.Hour
)

type RegisterInput struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Department string `json:"department" binding:"required"`
	LevelID    uint   `json:"levelId" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	users  *repository.UserRepository
	levels *repository.LevelRepository
	email  *EmailService
	cfg    *config.Config
}

func NewAuthService(users *repository.UserRepository, levels *repository.LevelRepository, email *EmailService, cfg *config.Config) *AuthService {
	return &AuthService{users: users, levels: levels, email: email, cfg: cfg}
}

// Register creates an unverified account and emails a one-time code. The
// account cannot log in until the code is confirmed.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	existing, err := s.users.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.Conflict("An account with this email already exists")
	}

	level, err := s.levels.FindByID(input.LevelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, util.BadRequest("Unknown academic level")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   string(hash),
		Role:       model.RoleStudent,
		Department: input.Department,
		LevelID:    &input.LevelID,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(user); err != nil {
		// The account exists; the user can ask for a fresh code.
		logger.Log.Warn("Failed to send verification email", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return user, nil
}

func (s *AuthService) issueOTP(user *model.User) error {
	otp, err := util.GenerateOTP()
	if err != nil {
		return err
	}
	expires := time.Now().Add(otpTTL)
	if err := s.users.SetOTP(user.ID, util.HashToken(otp), expires); err != nil {
		return err
	}
	return s.email.SendOTP(user.Email, user.Name, otp)
}

// VerifyEmail confirms the one-time code and marks the account verified.
func (s *AuthService) VerifyEmail(email, otp string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return util.NotFound("Account not found")
	}
	if user.IsVerified {
		return util.BadRequest("Account is already verified")
	}
	if user.OTPHash == "" || user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return util.BadRequest("Verification code has expired, request a new one")
	}
	if util.HashToken(otp) != user.OTPHash {
		return util.BadRequest("Invalid verification code")
	}
	return s.users.ClearOTP(user.ID)
}

// ResendOTP issues a fresh code for an unverified account.
func (s *AuthService) ResendOTP(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return util.NotFound("Account not found")
	}
	if user.IsVerified {
		return util.BadRequest("Account is already verified")
	}
	return s.issueOTP(user)
}

// Login checks credentials and returns a fresh token pair. Only one refresh
// token is live per account; logging in elsewhere invalidates the old one.
func (s *AuthService) Login(input LoginInput) (*model.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, util.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, nil, util.Unauthorized("Invalid email or password")
	}
	if !user.IsVerified {
		return nil, nil, util.Forbidden("Account is not verified, check your email for the code")
	}
	if !user.IsActive {
		return nil, nil, util.Forbidden("Account has been deactivated")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.TouchLastLogin(user.ID); err != nil {
		logger.Log.Warn("Failed to record login time", zap.Uint("userId", user.ID), zap.Error(err))
	}
	return user, pair, nil
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateToken(user.ID, user.Email, user.Role, s.cfg.JWT.AccessSecret, s.cfg.JWT.AccessExpire)
	if err != nil {
		return nil, err
	}
	refresh, err := util.GenerateToken(user.ID, user.Email, user.Role, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshExpire)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(user.ID, refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the token pair. The presented refresh token must be the one
// currently on record; an older one means it was already rotated or revoked.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := util.ParseToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, util.Unauthorized("Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken != refreshToken {
		return nil, util.Unauthorized("Refresh token has been revoked")
	}
	if !user.IsActive {
		return nil, util.Forbidden("Account has been deactivated")
	}

	return s.issueTokens(user)
}

// Logout revokes the stored refresh token.
func (s *AuthService) Logout(userID uint) error {
	return s.users.SetRefreshToken(userID, "")
}

// ForgotPassword emails a reset link. It reports success whether or not the
// email is registered, so the endpoint can't be used to probe for accounts.
func (s *AuthService) ForgotPassword(email, baseURL string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := util.GenerateResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(user.ID, util.HashToken(token), expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)
	return s.email.SendPasswordReset(user.Email, user.Name, resetURL)
}

// ResetPassword trades a valid reset token for a new password and revokes any
// live session.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return util.BadRequest("Password must be at least 8 characters")
	}

	user, err := s.users.FindByResetTokenHash(util.HashToken(token))
	if err != nil {
		return err
	}
	if user == nil {
		return util.BadRequest("Invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(user.ID, string(hash))
}

// ChangePassword verifies the current password before swapping it.
func (s *AuthService) ChangePassword(userID uint, current, newPassword string) error {
	if len(newPassword) < 8 {
		return util.BadRequest("Password must be at least 8 characters")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return util.NotFound("Account not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return util.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdateFields(userID, map[string]interface{}{
		"password":      string(hash),
		"refresh_token": "",
	})
}
