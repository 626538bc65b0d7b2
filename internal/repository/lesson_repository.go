package repository

import (
	"errors"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"gorm.io/gorm"
)

// LessonUpdate 单个课时的就地字段更新，Fields 至少包含 position。
type LessonUpdate struct {
	ID     uint
	Fields map[string]interface{}
}

// ReconcileChanges 课程编辑时由服务层计算出的课时对账计划，
// 在一个事务内整体应用，中途失败不留下半成品写入。
type ReconcileChanges struct {
	Creates []model.Lesson
	Updates []LessonUpdate
	Deletes []uint
}

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at asc")
		}).
		First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return &lesson, err
}

func (r *LessonRepository) FindAll() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Preload("Comments").Order("course_id asc, position asc").Find(&lessons).Error
	return lessons, err
}

// ListByCourse 返回课程当前持久化的课时快照，按位置排序。
func (r *LessonRepository) ListByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).Order("position asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(id uint, fields map[string]interface{}) (*model.Lesson, error) {
	res := r.DB.Model(&model.Lesson{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	// FindByID 兼作存在性校验，值未变化时 RowsAffected 为 0 不可靠
	return r.FindByID(id)
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Lesson{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrLessonNotFound
		}
		return tx.Where("lesson_id = ?", id).Delete(&model.Comment{}).Error
	})
}

// Reconcile 原子应用一份对账计划：更新在前、新建次之、孤儿删除殿后。
// 所有读写基于事务内的一致视图，任何一步失败则整体回滚。
func (r *LessonRepository) Reconcile(courseID uint, ch ReconcileChanges) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, u := range ch.Updates {
			res := tx.Model(&model.Lesson{}).
				Where("id = ? AND course_id = ?", u.ID, courseID).
				Updates(u.Fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// MySQL 对无变化的 UPDATE 也报 0 行，需区分真正的归属不符
				var n int64
				if err := tx.Model(&model.Lesson{}).
					Where("id = ? AND course_id = ?", u.ID, courseID).
					Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					return util.ErrLessonNotInCourse
				}
			}
		}
		for i := range ch.Creates {
			if err := tx.Create(&ch.Creates[i]).Error; err != nil {
				return err
			}
		}
		if len(ch.Deletes) > 0 {
			if err := tx.Where("lesson_id IN ?", ch.Deletes).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ? AND course_id = ?", ch.Deletes, courseID).
				Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOrphans 清除课程已不存在的悬挂课时，供后台巡检调用。
func (r *LessonRepository) DeleteOrphans() (int64, error) {
	res := r.DB.
		Where("course_id > 0 AND course_id NOT IN (?)",
			r.DB.Model(&model.Course{}).Select("id")).
		Delete(&model.Lesson{})
	return res.RowsAffected, res.Error
}
