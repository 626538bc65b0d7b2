package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"course_market_backend/internal/model"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	courseCacheKeyPrefix = "course:"
	courseListCacheKey   = "courses:all"
	courseCacheTTL       = 5 * time.Minute
)

type CourseService struct {
	Courses  CourseStore
	Lessons  LessonStore
	Comments CommentStore
	Users    UserStore
	Redis    *redis.Client
}

func NewCourseService(courses CourseStore, lessons LessonStore, comments CommentStore, users UserStore, rdb *redis.Client) *CourseService {
	return &CourseService{
		Courses:  courses,
		Lessons:  lessons,
		Comments: comments,
		Users:    users,
		Redis:    rdb,
	}
}

// UserSummary 作者摘要，找不到作者时所有字段保持零值但键始终存在。
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

type LessonResponse struct {
	ID          uint              `json:"id"`
	CourseID    uint              `json:"courseId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	VideoURL    string            `json:"videoUrl"`
	Duration    float64           `json:"duration"`
	Position    int               `json:"position"`
	Comments    []CommentResponse `json:"comments"`
}

// CourseResponse 对外视图。契约：所有键永远存在，可选字段缺省为零值，
// 空序列输出 [] 而不是缺键，前端依赖这一点。
type CourseResponse struct {
	ID             uint              `json:"id"`
	Username       string            `json:"username"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	TimesPurchased int               `json:"timesPurchased"`
	Lessons        []LessonResponse  `json:"lessons"`
	Comments       []CommentResponse `json:"comments"`
	User           UserSummary       `json:"user"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type CourseCreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price"`
}

// LessonInput 课程编辑提交的课时条目。
// 有 ID 带字段 = 就地更新；无 ID = 新建；只有 ID = 原样保留（仅调整顺序）。
type LessonInput struct {
	ID          *uint  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// CourseUpdateRequest 部分更新：nil 字段不触碰，Lessons 非 nil 时触发课时对账。
type CourseUpdateRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price"`
	Lessons     *[]LessonInput `json:"lessons"`
}

func serializeComments(comments []model.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, CommentResponse{
			ID:        cm.ID,
			Body:      cm.Body,
			Username:  cm.Username,
			CreatedAt: cm.CreatedAt,
		})
	}
	return out
}

func serializeLesson(lesson *model.Lesson) LessonResponse {
	return LessonResponse{
		ID:          lesson.ID,
		CourseID:    lesson.CourseID,
		Title:       lesson.Title,
		Description: lesson.Description,
		VideoURL:    lesson.VideoURL,
		Duration:    lesson.Duration,
		Position:    lesson.Position,
		Comments:    serializeComments(lesson.Comments),
	}
}

func serializeCourse(course *model.Course, author *model.User) CourseResponse {
	lessons := make([]LessonResponse, 0, len(course.Lessons))
	for i := range course.Lessons {
		lessons = append(lessons, serializeLesson(&course.Lessons[i]))
	}

	return CourseResponse{
		ID:             course.ID,
		Username:       course.Username,
		Title:          course.Title,
		Description:    course.Description,
		Price:          course.Price,
		TimesPurchased: course.TimesPurchased,
		Lessons:        lessons,
		Comments:       serializeComments(course.Comments),
		User:           serializeUser(author),
		CreatedAt:      course.CreatedAt,
	}
}

func (s *CourseService) serialize(course *model.Course) CourseResponse {
	author, err := s.Users.FindByUsername(course.Username)
	if err != nil {
		author = nil
	}
	return serializeCourse(course, author)
}

func (s *CourseService) ListCourses() ([]CourseResponse, error) {
	courses, err := s.Courses.FindAll()
	if err != nil {
		return nil, err
	}
	return s.serializeAll(courses)
}

func (s *CourseService) ListByAuthor(username string) ([]CourseResponse, error) {
	courses, err := s.Courses.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.serializeAll(courses)
}

// serializeAll 按用户名批量解析作者，避免逐课程的 N+1 查询。
func (s *CourseService) serializeAll(courses []model.Course) ([]CourseResponse, error) {
	authors := map[string]*model.User{}
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		username := courses[i].Username
		author, seen := authors[username]
		if !seen {
			author, _ = s.Users.FindByUsername(username)
			authors[username] = author
		}
		out = append(out, serializeCourse(&courses[i], author))
	}
	return out, nil
}

// GetCourse 读路径走 Redis 旁路缓存，写路径统一失效。
func (s *CourseService) GetCourse(ctx context.Context, id uint) (*CourseResponse, error) {
	cacheKey := fmt.Sprintf("%s%d", courseCacheKeyPrefix, id)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var resp CourseResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	course, err := s.Courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := s.serialize(course)

	if s.Redis != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("course cache set failed", zap.Uint("courseId", id), zap.Error(err))
			}
		}
	}

	return &resp, nil
}

func (s *CourseService) invalidateCache(ctx context.Context, id uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, fmt.Sprintf("%s%d", courseCacheKeyPrefix, id), courseListCacheKey)
}

func (s *CourseService) CreateCourse(username string, req CourseCreateRequest) (*CourseResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || req.Price < 0 {
		return nil, util.ErrValidation
	}

	course := &model.Course{
		Username:    username,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Lessons:     []model.Lesson{},
		Comments:    []model.Comment{},
		Tokens:      []model.PurchaseToken{},
	}
	if err := s.Courses.Create(course); err != nil {
		return nil, err
	}

	resp := s.serialize(course)
	return &resp, nil
}

// UpdateCourse 合并提交的字段；提交了课时列表时执行对账：
// 带 ID 条目就地更新，缺 ID 条目新建，快照中未被提交的课时作为孤儿删除，
// 最终顺序以提交顺序为准。
func (s *CourseService) UpdateCourse(ctx context.Context, id uint, username string, req CourseUpdateRequest) (*CourseResponse, error) {
	course, err := s.Courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course.Username != username {
		return nil, util.ErrNotCourseOwner
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, util.ErrValidation
		}
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, util.ErrValidation
		}
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, util.ErrValidation
		}
		fields["price"] = *req.Price
	}
	if len(fields) > 0 {
		if err := s.Courses.Update(id, fields); err != nil {
			return nil, err
		}
	}

	if req.Lessons != nil {
		// 对账计划基于一次快照计算，应用时整体进一个事务
		existing, err := s.Lessons.ListByCourse(id)
		if err != nil {
			return nil, err
		}
		changes, err := planReconciliation(id, existing, *req.Lessons)
		if err != nil {
			return nil, err
		}
		if err := s.Lessons.Reconcile(id, changes); err != nil {
			return nil, err
		}
	}

	s.invalidateCache(ctx, id)

	updated, err := s.Courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := s.serialize(updated)
	return &resp, nil
}

// planReconciliation 把提交的课时列表与持久化快照对齐，纯函数便于单测。
// 幂等：原样提交当前课时集合时，计划只包含位置重写，没有增删。
func planReconciliation(courseID uint, existing []model.Lesson, submitted []LessonInput) (repository.ReconcileChanges, error) {
	var ch repository.ReconcileChanges

	existingByID := make(map[uint]model.Lesson, len(existing))
	for _, l := range existing {
		existingByID[l.ID] = l
	}

	submittedIDs := make(map[uint]bool, len(submitted))
	for pos, in := range submitted {
		if in.ID != nil {
			if _, ok := existingByID[*in.ID]; !ok {
				return repository.ReconcileChanges{}, util.ErrLessonNotInCourse
			}
			submittedIDs[*in.ID] = true

			fields := map[string]interface{}{"position": pos}
			if in.Title != "" {
				fields["title"] = in.Title
			}
			if in.Description != "" {
				fields["description"] = in.Description
			}
			if in.VideoURL != "" {
				if !isValidURL(in.VideoURL) {
					return repository.ReconcileChanges{}, util.ErrValidation
				}
				fields["video_url"] = in.VideoURL
			}
			ch.Updates = append(ch.Updates, repository.LessonUpdate{ID: *in.ID, Fields: fields})
			continue
		}

		if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || !isValidURL(in.VideoURL) {
			return repository.ReconcileChanges{}, util.ErrValidation
		}
		ch.Creates = append(ch.Creates, model.Lesson{
			Title:       in.Title,
			Description: in.Description,
			VideoURL:    in.VideoURL,
			CourseID:    courseID,
			Position:    pos,
		})
	}

	for _, l := range existing {
		if !submittedIDs[l.ID] {
			ch.Deletes = append(ch.Deletes, l.ID)
		}
	}

	return ch, nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint, username string) error {
	course, err := s.Courses.FindByID(id)
	if err != nil {
		return err
	}
	if course.Username != username {
		return util.ErrNotCourseOwner
	}

	if err := s.Courses.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	return nil
}

// MintTokens 课程作者铸造一批一次性购买令牌。
func (s *CourseService) MintTokens(id uint, username string, count int) ([]string, error) {
	if count < 1 || count > 100 {
		return nil, util.ErrValidation
	}

	course, err := s.Courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course.Username != username {
		return nil, util.ErrNotCourseOwner
	}

	tokens := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tokens = append(tokens, uuid.New().String())
	}
	if err := s.Courses.MintTokens(id, tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *CourseService) AddComment(ctx context.Context, courseID uint, username, body string) (*CourseResponse, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.ErrValidation
	}

	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Body:     body,
		Username: username,
		CourseID: &course.ID,
	}
	if err := s.Comments.Create(comment); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, courseID)

	updated, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	resp := s.serialize(updated)
	return &resp, nil
}

func (s *CourseService) RemoveComment(ctx context.Context, courseID, commentID uint) (*CourseResponse, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, err
	}
	if err := s.Comments.DeleteForCourse(courseID, commentID); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, courseID)

	updated, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	resp := s.serialize(updated)
	return &resp, nil
}
