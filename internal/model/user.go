package model

// swagger:model User
type User struct {
	BaseModel
	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:100;not null" json:"email"`
	Password  string `gorm:"size:100;not null" json:"-"`
	FirstName string `gorm:"size:100;default:''" json:"firstName"`
	LastName  string `gorm:"size:100;default:''" json:"lastName"`

	// 已购课程（含自己创建的课程引用），集合语义由 purchases 唯一索引保证
	Purchases []Purchase `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Purchase 记录一次成功的课程购买，(user_id, course_id) 唯一，天然防止重复购买。
type Purchase struct {
	BaseModel
	UserID   uint `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID uint `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// LessonProgress 每个用户对单个课时的观看进度计数。
type LessonProgress struct {
	BaseModel
	UserID   uint `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID uint `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	Progress int  `gorm:"default:0" json:"progress"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
