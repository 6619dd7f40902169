package repository

import (
	"errors"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Level").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) SetRefreshToken(id uint, token string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("refresh_token", token).Error
}

func (r *UserRepository) SetOTP(id uint, otpHash string, expiresAt time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp_hash":       otpHash,
		"otp_expires_at": expiresAt,
	}).Error
}

func (r *UserRepository) ClearOTP(id uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp_hash":       "",
		"otp_expires_at": nil,
		"is_verified":    true,
	}).Error
}

func (r *UserRepository) SetResetToken(id uint, tokenHash string, expiresAt time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token_hash":       tokenHash,
		"reset_token_expires_at": expiresAt,
	}).Error
}

func (r *UserRepository) FindByResetTokenHash(tokenHash string) (*model.User, error) {
	var user model.User
	err := r.db.Where("reset_token_hash = ? AND reset_token_expires_at > ?", tokenHash, time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetPassword swaps the password hash and invalidates the reset token and
// any outstanding refresh token in one update.
func (r *UserRepository) ResetPassword(id uint, passwordHash string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password":               passwordHash,
		"reset_token_hash":       "",
		"reset_token_expires_at": nil,
		"refresh_token":          "",
	}).Error
}

func (r *UserRepository) TouchLastLogin(id uint) error {
	now := time.Now()
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", now).Error
}

// addQuizCorrect bumps the quiz contribution counter and refreshes reputation.
func addQuizCorrect(tx *gorm.DB, id uint, delta int) error {
	if delta == 0 {
		return nil
	}
	if err := tx.Model(&model.User{}).Where("id = ?", id).
		Update("quiz_correct", gorm.Expr("quiz_correct + ?", delta)).Error; err != nil {
		return err
	}
	return RecomputeReputation(tx, id)
}

// UserFilter narrows admin user listings. Nil booleans mean "no filter".
type UserFilter struct {
	Role     string
	Verified *bool
	Active   *bool
	Query    string
}

// List pages users for the admin view.
func (r *UserRepository) List(filter UserFilter, page, limit int) ([]model.User, int64, error) {
	query := r.db.Model(&model.User{}).Preload("Level")

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) SetActive(id uint, active bool) error {
	fields := map[string]interface{}{"is_active": active}
	if !active {
		// A deactivated account loses its live session immediately.
		fields["refresh_token"] = ""
	}
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func rankedUsers(db *gorm.DB) *gorm.DB {
	return db.Model(&model.User{}).Where("is_verified = ? AND is_active = ?", true, true)
}

// Leaderboard returns users ranked by reputation, optionally scoped to a
// department and level.
func (r *UserRepository) Leaderboard(department string, levelID uint, limit int) ([]model.User, error) {
	query := rankedUsers(r.db).Preload("Level").
		Order("reputation DESC, id ASC").
		Limit(limit)

	if department != "" {
		query = query.Where("department = ?", department)
	}
	if levelID != 0 {
		query = query.Where("level_id = ?", levelID)
	}

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// TopContributors ranks by notes shared.
func (r *UserRepository) TopContributors(limit int) ([]model.User, error) {
	var users []model.User
	err := rankedUsers(r.db).Preload("Level").
		Where("notes_created > 0").
		Order("notes_created DESC, reputation DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// QuizChampions ranks by correct quiz answers.
func (r *UserRepository) QuizChampions(limit int) ([]model.User, error) {
	var users []model.User
	err := rankedUsers(r.db).Preload("Level").
		Where("quiz_correct > 0").
		Order("quiz_correct DESC, quizzes_taken ASC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Rank counts how many ranked users outrank the given reputation. Ties are
// broken by user ID so the rank is stable.
func (r *UserRepository) Rank(userID uint, reputation int) (int64, error) {
	var ahead int64
	err := rankedUsers(r.db).
		Where("reputation > ? OR (reputation = ? AND id < ?)", reputation, reputation, userID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}
