package repository

import (
	"errors"
	"strings"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.Create(user).Error
	if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
		return util.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

// ListPurchases 返回用户已购课程引用，集合语义（无重复）。
func (r *UserRepository) ListPurchases(userID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&purchases).Error
	return purchases, err
}

// UpsertProgress 写入用户对某课时的观看进度计数。
func (r *UserRepository) UpsertProgress(userID, lessonID uint, progress int) error {
	row := model.LessonProgress{
		UserID:   userID,
		LessonID: lessonID,
		Progress: progress,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "updated_at"}),
	}).Create(&row).Error
}

func (r *UserRepository) ListProgress(userID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}
