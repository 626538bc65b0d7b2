package repository

import (
	"strings"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

func (r *PurchaseRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Execute 在单事务内完成一次购买：消费令牌、递增购买计数、登记购买记录。
// 令牌单次可用由删除行数校验保证：并发消费同一令牌时只有一个事务
// 能删到这一行，其余事务拿到 RowsAffected=0 并回滚。
// times_purchased 只在令牌删除成功后递增，因此计数单调且与消费一一对应。
func (r *PurchaseRepository) Execute(userID, courseID uint, token string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("course_id = ? AND token = ?", courseID, token).
			Delete(&model.PurchaseToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrInvalidToken
		}

		if err := tx.Model(&model.Course{}).
			Where("id = ?", courseID).
			UpdateColumn("times_purchased", gorm.Expr("times_purchased + 1")).Error; err != nil {
			return err
		}

		err := tx.Create(&model.Purchase{UserID: userID, CourseID: courseID}).Error
		if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
			// 并发重复购买被唯一索引拦下，令牌消费随事务一起回滚
			return util.ErrAlreadyPurchased
		}
		return err
	})
}
