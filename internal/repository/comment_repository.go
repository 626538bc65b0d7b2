package repository

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

// DeleteForCourse 删除课程下指定评论，目标不存在时返回 NotFound。
func (r *CommentRepository) DeleteForCourse(courseID, commentID uint) error {
	res := r.DB.Where("id = ? AND course_id = ?", commentID, courseID).Delete(&model.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteForLesson(lessonID, commentID uint) error {
	res := r.DB.Where("id = ? AND lesson_id = ?", commentID, lessonID).Delete(&model.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrCommentNotFound
	}
	return nil
}
