package repository

import (
	"errors"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// FindByID 加载课程聚合：课时按位置排序、评论按时间排序、有效令牌池。
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position asc")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at asc")
		}).
		Preload("Tokens").
		First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return &course, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position asc")
		}).
		Preload("Comments").
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByUsername(username string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position asc")
		}).
		Preload("Comments").
		Where("username = ?", username).
		Order("created_at desc").
		Find(&courses).Error
	return courses, err
}

// Update 只合并提供的字段，未提供的字段保持不变。
func (r *CourseRepository) Update(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 值未变化时 MySQL 也报 0 行，需确认课程确实不存在
		var n int64
		if err := r.DB.Model(&model.Course{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return util.ErrCourseNotFound
		}
	}
	return nil
}

// Delete 级联删除课程及其课时、评论和剩余令牌，单事务内完成。
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Course{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrCourseNotFound
		}

		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", id).Delete(&model.PurchaseToken{}).Error
	})
}

// MintTokens 为课程追加一批购买令牌。
func (r *CourseRepository) MintTokens(courseID uint, tokens []string) error {
	rows := make([]model.PurchaseToken, 0, len(tokens))
	for _, t := range tokens {
		rows = append(rows, model.PurchaseToken{CourseID: courseID, Token: t})
	}
	return r.DB.Create(&rows).Error
}
