package controller

import (
	"errors"
	"net/http"

	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径参数中的数字 ID，非法值直接响应 400。
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseUint(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// respondServiceError 把服务层错误统一映射到 HTTP 状态码：
// 400 参数校验 / 401 认证 / 403 越权 / 404 不存在 / 409 冲突 / 422 业务规则 / 500 其他
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation) || errors.Is(err, util.ErrLessonNotInCourse):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredential):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrNotCourseOwner) || errors.Is(err, util.ErrSelfPurchase):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound) ||
		errors.Is(err, util.ErrCourseNotFound) ||
		errors.Is(err, util.ErrLessonNotFound) ||
		errors.Is(err, util.ErrCommentNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyPurchased) || errors.Is(err, util.ErrUsernameTaken):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidToken):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrPartialWrite):
		util.Error(ctx, http.StatusInternalServerError, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
