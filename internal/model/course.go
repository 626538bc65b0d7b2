package model

// swagger:model Course
type Course struct {
	BaseModel
	Username    string  `gorm:"size:100;index;not null" json:"username"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Price       float64 `gorm:"default:0" json:"price"`

	// 只增不减，且只能通过消费购买令牌增加
	TimesPurchased int `gorm:"default:0" json:"timesPurchased"`

	Lessons  []Lesson        `gorm:"foreignKey:CourseID" json:"lessons"`
	Comments []Comment       `gorm:"foreignKey:CourseID" json:"comments"`
	Tokens   []PurchaseToken `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// PurchaseToken 属于某一门课程的一次性购买令牌，消费后即删除。
type PurchaseToken struct {
	BaseModel
	CourseID uint   `gorm:"uniqueIndex:idx_course_token;not null" json:"courseId"`
	Token    string `gorm:"size:64;uniqueIndex:idx_course_token;not null" json:"token"`
}

func (PurchaseToken) TableName() string {
	return "purchase_tokens"
}

// IsValidToken 判断令牌是否仍在课程的有效令牌池中。
func (c *Course) IsValidToken(token string) bool {
	for _, t := range c.Tokens {
		if t.Token == token {
			return true
		}
	}
	return false
}

// ConsumeToken 从有效池中移除令牌并使购买计数加一。
// 先校验、再移除、最后计数，令牌不存在时不产生任何副作用，
// 因此同一令牌的第二次调用是空操作，计数最多加一。
// 调用方负责持久化；并发场景下由仓储层的删除行数校验兜底。
func (c *Course) ConsumeToken(token string) bool {
	for i, t := range c.Tokens {
		if t.Token == token {
			c.Tokens = append(c.Tokens[:i], c.Tokens[i+1:]...)
			c.TimesPurchased++
			return true
		}
	}
	return false
}
