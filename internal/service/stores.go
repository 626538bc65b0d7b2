package service

import (
	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
)

// 各服务只依赖这里声明的仓储接口，由 app 层注入 GORM 实现，
// 测试时用函数字段 mock 替换。

type CourseStore interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindAll() ([]model.Course, error)
	FindByUsername(username string) ([]model.Course, error)
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	MintTokens(courseID uint, tokens []string) error
}

type LessonStore interface {
	Create(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindAll() ([]model.Lesson, error)
	ListByCourse(courseID uint) ([]model.Lesson, error)
	Update(id uint, fields map[string]interface{}) (*model.Lesson, error)
	Delete(id uint) error
	Reconcile(courseID uint, ch repository.ReconcileChanges) error
	DeleteOrphans() (int64, error)
}

type CommentStore interface {
	Create(comment *model.Comment) error
	DeleteForCourse(courseID, commentID uint) error
	DeleteForLesson(lessonID, commentID uint) error
}

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	ListPurchases(userID uint) ([]model.Purchase, error)
	UpsertProgress(userID, lessonID uint, progress int) error
	ListProgress(userID uint) ([]model.LessonProgress, error)
}

type PurchaseStore interface {
	Exists(userID, courseID uint) (bool, error)
	Execute(userID, courseID uint, token string) error
}
