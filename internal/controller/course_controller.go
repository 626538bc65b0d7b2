package controller

import (
	"course_market_backend/internal/service"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService   *service.CourseService
	PurchaseService *service.PurchaseService
}

func NewCourseController(courseService *service.CourseService, purchaseService *service.PurchaseService) *CourseController {
	return &CourseController{
		CourseService:   courseService,
		PurchaseService: purchaseService,
	}
}

// List godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response{data=[]service.CourseResponse}
// @Router /api/course [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListMine godoc
// @Summary 当前用户创建的课程
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CourseResponse}
// @Router /api/course/my [get]
func (c *CourseController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListByAuthor(claims.Username)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListByAuthor godoc
// @Summary 按作者查询课程
// @Tags 课程
// @Produce json
// @Param username path string true "作者用户名"
// @Success 200 {object} util.Response{data=[]service.CourseResponse}
// @Router /api/course/author/{username} [get]
func (c *CourseController) ListByAuthor(ctx *gin.Context) {
	courses, err := c.CourseService.ListByAuthor(ctx.Param("username"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 404 {object} util.Response
// @Router /api/course/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseCreateRequest true "课程内容"
// @Success 201 {object} util.Response{data=service.CourseResponse}
// @Failure 400 {object} util.Response
// @Router /api/course [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.Username, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 编辑课程
// @Description 只合并提交的字段；提交课时列表时同步增删改课时并按提交顺序重排
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseUpdateRequest true "变更内容"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 403 {object} util.Response "非课程作者"
// @Failure 404 {object} util.Response
// @Router /api/course/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.CourseUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Request.Context(), id, claims.Username, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Description 级联删除课时、评论和剩余令牌
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "非课程作者"
// @Router /api/course/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), id, claims.Username); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Successfully deleted"})
}

// MintTokensRequest 铸造令牌请求体
type MintTokensRequest struct {
	Count int `json:"count" binding:"required,min=1,max=100"`
}

// MintTokens godoc
// @Summary 铸造购买令牌
// @Description 课程作者为课程生成一批一次性购买令牌
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body MintTokensRequest true "数量"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response "非课程作者"
// @Router /api/course/{id}/tokens [post]
func (c *CourseController) MintTokens(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req MintTokensRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tokens, err := c.CourseService.MintTokens(id, claims.Username, req.Count)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"tokens": tokens})
}

// Purchase godoc
// @Summary 购买课程
// @Description 消费一次性购买令牌解锁课程
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param token path string true "购买令牌"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "不能购买自己的课程"
// @Failure 409 {object} util.Response "重复购买"
// @Failure 422 {object} util.Response "令牌无效或已消费"
// @Router /api/course/{id}/purchase/{token} [post]
func (c *CourseController) Purchase(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	err := c.PurchaseService.Purchase(ctx.Request.Context(), claims.UserID, claims.Username, courseID, ctx.Param("token"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CommentRequest 评论请求体
type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment godoc
// @Summary 给课程追加评论
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body CommentRequest true "评论内容"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Router /api/course/comment/{id} [post]
func (c *CourseController) AddComment(ctx *gin.Context) {
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

	course, err := c.CourseService.AddComment(ctx.Request.Context(), id, claims.Username, req.Body)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// RemoveComment godoc
// @Summary 删除课程评论
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param commentId path int true "评论ID"
// @Success 200 {object} util.Response{data=service.CourseResponse}
// @Failure 404 {object} util.Response "评论不存在"
// @Router /api/course/comment/{id}/{commentId} [delete]
func (c *CourseController) RemoveComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}

	course, err := c.CourseService.RemoveComment(ctx.Request.Context(), id, commentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, course)
}
