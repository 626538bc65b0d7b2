package service

import (
	"context"
	"fmt"

	"course_market_backend/internal/util"
	"course_market_backend/pkg/logger"
	"course_market_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type PurchaseService struct {
	Courses   CourseStore
	Purchases PurchaseStore
	Redis     *redis.Client
}

func NewPurchaseService(courses CourseStore, purchases PurchaseStore, rdb *redis.Client) *PurchaseService {
	return &PurchaseService{
		Courses:   courses,
		Purchases: purchases,
		Redis:     rdb,
	}
}

// Purchase 购买流程，校验顺序即规则优先级：
//  1. 重复购买 → Conflict，发生在任何令牌触碰之前，令牌保持未消费
//  2. 购买自己的课程 → Forbidden，与令牌是否有效无关
//  3. 令牌不在有效池 → 业务规则拒绝
//  4. 消费令牌 + 计数递增 + 购买登记，三个写入在一个数据库事务里，
//     不会出现令牌已消费而购买未登记的中间态
func (s *PurchaseService) Purchase(ctx context.Context, userID uint, username string, courseID uint, token string) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		monitoring.PurchaseCounter.WithLabelValues("not_found").Inc()
		return err
	}

	purchased, err := s.Purchases.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if purchased {
		monitoring.PurchaseCounter.WithLabelValues("duplicate").Inc()
		return util.ErrAlreadyPurchased
	}

	if course.Username == username {
		monitoring.PurchaseCounter.WithLabelValues("self_purchase").Inc()
		return util.ErrSelfPurchase
	}

	if !course.IsValidToken(token) {
		monitoring.PurchaseCounter.WithLabelValues("invalid_token").Inc()
		return util.ErrInvalidToken
	}

	if err := s.Purchases.Execute(userID, courseID, token); err != nil {
		monitoring.PurchaseCounter.WithLabelValues("failed").Inc()
		return err
	}

	if s.Redis != nil {
		s.Redis.Del(ctx, fmt.Sprintf("%s%d", courseCacheKeyPrefix, courseID), courseListCacheKey)
	}

	monitoring.PurchaseCounter.WithLabelValues("success").Inc()
	logger.Log.Info("course purchased",
		zap.Uint("courseId", courseID),
		zap.Uint("userId", userID),
	)
	return nil
}
