package service

import (
	"os"
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// 函数字段 mock，未设置的方法一律 panic，逼测试声明自己触碰的路径。

type mockCourseStore struct {
	CreateFn     func(course *model.Course) error
	FindByIDFn   func(id uint) (*model.Course, error)
	FindAllFn    func() ([]model.Course, error)
	FindByUserFn func(username string) ([]model.Course, error)
	UpdateFn     func(id uint, fields map[string]interface{}) error
	DeleteFn     func(id uint) error
	MintTokensFn func(courseID uint, tokens []string) error
}

func (m *mockCourseStore) Create(course *model.Course) error { return m.CreateFn(course) }
func (m *mockCourseStore) FindByID(id uint) (*model.Course, error) {
	return m.FindByIDFn(id)
}
func (m *mockCourseStore) FindAll() ([]model.Course, error) { return m.FindAllFn() }
func (m *mockCourseStore) FindByUsername(username string) ([]model.Course, error) {
	return m.FindByUserFn(username)
}
func (m *mockCourseStore) Update(id uint, fields map[string]interface{}) error {
	return m.UpdateFn(id, fields)
}
func (m *mockCourseStore) Delete(id uint) error { return m.DeleteFn(id) }
func (m *mockCourseStore) MintTokens(courseID uint, tokens []string) error {
	return m.MintTokensFn(courseID, tokens)
}

type mockLessonStore struct {
	CreateFn       func(lesson *model.Lesson) error
	FindByIDFn     func(id uint) (*model.Lesson, error)
	FindAllFn      func() ([]model.Lesson, error)
	ListByCourseFn func(courseID uint) ([]model.Lesson, error)
	UpdateFn       func(id uint, fields map[string]interface{}) (*model.Lesson, error)
	DeleteFn       func(id uint) error
	ReconcileFn    func(courseID uint, ch repository.ReconcileChanges) error
	DeleteOrphFn   func() (int64, error)
}

func (m *mockLessonStore) Create(lesson *model.Lesson) error { return m.CreateFn(lesson) }
func (m *mockLessonStore) FindByID(id uint) (*model.Lesson, error) {
	return m.FindByIDFn(id)
}
func (m *mockLessonStore) FindAll() ([]model.Lesson, error) { return m.FindAllFn() }
func (m *mockLessonStore) ListByCourse(courseID uint) ([]model.Lesson, error) {
	return m.ListByCourseFn(courseID)
}
func (m *mockLessonStore) Update(id uint, fields map[string]interface{}) (*model.Lesson, error) {
	return m.UpdateFn(id, fields)
}
func (m *mockLessonStore) Delete(id uint) error { return m.DeleteFn(id) }
func (m *mockLessonStore) Reconcile(courseID uint, ch repository.ReconcileChanges) error {
	return m.ReconcileFn(courseID, ch)
}
func (m *mockLessonStore) DeleteOrphans() (int64, error) { return m.DeleteOrphFn() }

type mockCommentStore struct {
	CreateFn          func(comment *model.Comment) error
	DeleteForCourseFn func(courseID, commentID uint) error
	DeleteForLessonFn func(lessonID, commentID uint) error
}

func (m *mockCommentStore) Create(comment *model.Comment) error { return m.CreateFn(comment) }
func (m *mockCommentStore) DeleteForCourse(courseID, commentID uint) error {
	return m.DeleteForCourseFn(courseID, commentID)
}
func (m *mockCommentStore) DeleteForLesson(lessonID, commentID uint) error {
	return m.DeleteForLessonFn(lessonID, commentID)
}

type mockUserStore struct {
	CreateFn         func(user *model.User) error
	FindByIDFn       func(id uint) (*model.User, error)
	FindByUsernameFn func(username string) (*model.User, error)
	ListPurchasesFn  func(userID uint) ([]model.Purchase, error)
	UpsertProgressFn func(userID, lessonID uint, progress int) error
	ListProgressFn   func(userID uint) ([]model.LessonProgress, error)
}

func (m *mockUserStore) Create(user *model.User) error         { return m.CreateFn(user) }
func (m *mockUserStore) FindByID(id uint) (*model.User, error) { return m.FindByIDFn(id) }
func (m *mockUserStore) FindByUsername(username string) (*model.User, error) {
	return m.FindByUsernameFn(username)
}
func (m *mockUserStore) ListPurchases(userID uint) ([]model.Purchase, error) {
	return m.ListPurchasesFn(userID)
}
func (m *mockUserStore) UpsertProgress(userID, lessonID uint, progress int) error {
	return m.UpsertProgressFn(userID, lessonID, progress)
}
func (m *mockUserStore) ListProgress(userID uint) ([]model.LessonProgress, error) {
	return m.ListProgressFn(userID)
}

type mockPurchaseStore struct {
	ExistsFn  func(userID, courseID uint) (bool, error)
	ExecuteFn func(userID, courseID uint, token string) error
}

func (m *mockPurchaseStore) Exists(userID, courseID uint) (bool, error) {
	return m.ExistsFn(userID, courseID)
}
func (m *mockPurchaseStore) Execute(userID, courseID uint, token string) error {
	return m.ExecuteFn(userID, courseID, token)
}

func uintPtr(v uint) *uint        { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
