package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// List godoc
// @Summary 课时列表
// @Tags 课时
// @Produce json
// @Success 200 {object} util.Response{data=[]service.LessonResponse}
// @Router /api/lesson [get]
func (c *LessonController) List(ctx *gin.Context) {
	lessons, err := c.LessonService.ListLessons()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// Get godoc
// @Summary 课时详情
// @Tags 课时
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response{data=service.LessonResponse}
// @Failure 404 {object} util.Response
// @Router /api/lesson/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Create godoc
// @Summary 创建课时
// @Description courseId 可省略，此时课时保持孤儿状态直到被课程编辑收编
// @Tags 课时
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LessonCreateRequest true "课时内容"
// @Success 201 {object} util.Response{data=service.LessonResponse}
// @Failure 400 {object} util.Response
// @Router /api/lesson [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req service.LessonCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.CreateLesson(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// Update godoc
// @Summary 编辑课时
// @Description 只合并提交的字段
// @Tags 课时
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param body body service.LessonUpdateRequest true "变更内容"
// @Success 200 {object} util.Response{data=service.LessonResponse}
// @Failure 404 {object} util.Response
// @Router /api/lesson/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.LessonUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.UpdateLesson(id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// Delete godoc
// @Summary 删除课时
// @Tags 课时
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lesson/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.LessonService.DeleteLesson(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}

// AddComment godoc
// @Summary 给课时追加评论
// @Tags 课时
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param body body CommentRequest true "评论内容"
// @Success 200 {object} util.Response{data=service.LessonResponse}
// @Router /api/lesson/comment/{id} [post]
func (c *LessonController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.AddComment(id, claims.Username, req.Body)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// RemoveComment godoc
// @Summary 删除课时评论
// @Tags 课时
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param commentId path int true "评论ID"
// @Success 200 {object} util.Response{data=service.LessonResponse}
// @Failure 404 {object} util.Response "评论不存在"
// @Router /api/lesson/comment/{id}/{commentId} [delete]
func (c *LessonController) RemoveComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}

	lesson, err := c.LessonService.RemoveComment(id, commentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// ProgressRequest 观看进度请求体
type ProgressRequest struct {
	Progress int `json:"progress" binding:"min=0"`
}

// RecordProgress godoc
// @Summary 上报课时观看进度
// @Tags 课时
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param body body ProgressRequest true "进度计数"
// @Success 200 {object} util.Response
// @Router /api/lesson/{id}/progress [post]
func (c *LessonController) RecordProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.LessonService.RecordProgress(claims.UserID, lessonID, req.Progress); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lessonId": lessonID, "progress": req.Progress})
}

// UploadVideo godoc
// @Summary 上传课时视频
// @Description 视频写入对象存储并探测时长，回填到课时
// @Tags 课时
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "课时ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response{data=service.LessonResponse}
// @Failure 400 {object} util.Response
// @Router /api/lesson/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	lesson, err := c.LessonService.UploadVideo(ctx.Request.Context(), id, file)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
