package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{util.ErrValidation, http.StatusBadRequest},
		{util.ErrLessonNotInCourse, http.StatusBadRequest},
		{util.ErrInvalidCredential, http.StatusUnauthorized},
		{util.ErrNotCourseOwner, http.StatusForbidden},
		{util.ErrSelfPurchase, http.StatusForbidden},
		{util.ErrUserNotFound, http.StatusNotFound},
		{util.ErrCourseNotFound, http.StatusNotFound},
		{util.ErrLessonNotFound, http.StatusNotFound},
		{util.ErrCommentNotFound, http.StatusNotFound},
		{util.ErrAlreadyPurchased, http.StatusConflict},
		{util.ErrUsernameTaken, http.StatusConflict},
		{util.ErrInvalidToken, http.StatusUnprocessableEntity},
		{util.ErrPartialWrite, http.StatusInternalServerError},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondServiceError(ctx, tc.err)

		if w.Code != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

// 路径 ID 非法时直接 400，不再落到 404。
func TestMalformedPathIDRejected(t *testing.T) {
	r := gin.New()
	r.GET("/api/course/:id", NewCourseController(nil, nil).Get)
	r.GET("/api/lesson/:id", NewLessonController(nil).Get)

	for _, path := range []string{"/api/course/abc", "/api/course/-1", "/api/lesson/12x"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
		}
	}
}

// 包装后的错误也能命中映射。
func TestRespondServiceErrorWrapped(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(ctx, errors.Join(errors.New("context"), util.ErrCourseNotFound))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
