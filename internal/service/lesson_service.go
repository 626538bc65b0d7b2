package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LessonService struct {
	Lessons  LessonStore
	Comments CommentStore
	Users    UserStore
	Storage  *StorageService
}

func NewLessonService(lessons LessonStore, comments CommentStore, users UserStore, storage *StorageService) *LessonService {
	return &LessonService{
		Lessons:  lessons,
		Comments: comments,
		Users:    users,
		Storage:  storage,
	}
}

type LessonCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	VideoURL    string `json:"videoUrl" binding:"required"`
	CourseID    uint   `json:"courseId"`
}

type LessonUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl"`
}

func (s *LessonService) ListLessons() ([]LessonResponse, error) {
	lessons, err := s.Lessons.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, serializeLesson(&lessons[i]))
	}
	return out, nil
}

func (s *LessonService) GetLesson(id uint) (*LessonResponse, error) {
	lesson, err := s.Lessons.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := serializeLesson(lesson)
	return &resp, nil
}

// CreateLesson 独立创建课时；courseId 为零时保持孤儿状态，
// 直到某次课程编辑把它收编进课时序列。
func (s *LessonService) CreateLesson(req LessonCreateRequest) (*LessonResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || !isValidURL(req.VideoURL) {
		return nil, util.ErrValidation
	}

	lesson := &model.Lesson{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		CourseID:    req.CourseID,
		Comments:    []model.Comment{},
	}
	if req.CourseID > 0 {
		existing, err := s.Lessons.ListByCourse(req.CourseID)
		if err != nil {
			return nil, err
		}
		lesson.Position = len(existing)
	}

	if err := s.Lessons.Create(lesson); err != nil {
		return nil, err
	}
	resp := serializeLesson(lesson)
	return &resp, nil
}

func (s *LessonService) UpdateLesson(id uint, req LessonUpdateRequest) (*LessonResponse, error) {
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
	if req.VideoURL != nil {
		if !isValidURL(*req.VideoURL) {
			return nil, util.ErrValidation
		}
		fields["video_url"] = *req.VideoURL
	}
	if len(fields) == 0 {
		return s.GetLesson(id)
	}

	lesson, err := s.Lessons.Update(id, fields)
	if err != nil {
		return nil, err
	}
	resp := serializeLesson(lesson)
	return &resp, nil
}

func (s *LessonService) DeleteLesson(id uint) error {
	return s.Lessons.Delete(id)
}

func (s *LessonService) AddComment(lessonID uint, username, body string) (*LessonResponse, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.ErrValidation
	}

	lesson, err := s.Lessons.FindByID(lessonID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Body:     body,
		Username: username,
		LessonID: &lesson.ID,
	}
	if err := s.Comments.Create(comment); err != nil {
		return nil, err
	}
	return s.GetLesson(lessonID)
}

func (s *LessonService) RemoveComment(lessonID, commentID uint) (*LessonResponse, error) {
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		return nil, err
	}
	if err := s.Comments.DeleteForLesson(lessonID, commentID); err != nil {
		return nil, err
	}
	return s.GetLesson(lessonID)
}

// RecordProgress 记录用户对课时的观看进度计数。
func (s *LessonService) RecordProgress(userID, lessonID uint, progress int) error {
	if progress < 0 {
		return util.ErrValidation
	}
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		return err
	}
	return s.Users.UpsertProgress(userID, lessonID, progress)
}

// UploadVideo 把视频写入对象存储并回填 videoUrl 和探测到的时长。
// 存储写入和数据库更新跨两个系统，上传成功而回填失败时返回
// 部分写入错误，提示调用方重试回填而不是静默成功。
func (s *LessonService) UploadVideo(ctx context.Context, lessonID uint, file *multipart.FileHeader) (*LessonResponse, error) {
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lesson-video-*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		return nil, err
	}

	var duration float64
	if info, err := util.ProbeVideo(tmp.Name()); err == nil {
		duration = info.Duration
	} else {
		logger.Log.Warn("video probe failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	objectName := fmt.Sprintf("lessons/%d/%s%s", lessonID, uuid.New().String(), filepath.Ext(file.Filename))
	videoURL, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"video_url": videoURL,
		"duration":  duration,
	}
	lesson, err := s.Lessons.Update(lessonID, fields)
	if err != nil {
		// 对象已落存储但数据库没有指向它
		logger.Log.Error("video uploaded but lesson update failed",
			zap.Uint("lessonId", lessonID),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return nil, util.ErrPartialWrite
	}

	resp := serializeLesson(lesson)
	return &resp, nil
}
