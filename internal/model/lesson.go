package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	VideoURL    string  `gorm:"size:512;not null" json:"videoUrl"`
	Duration    float64 `gorm:"default:0" json:"duration"` // 视频时长（秒），上传时探测

	// 所属课程，课时可先于关联创建（孤儿状态），由课程编辑时的对账收编或清除
	CourseID uint `gorm:"index" json:"courseId"`
	Position int  `gorm:"default:0" json:"position"`

	Comments []Comment `gorm:"foreignKey:LessonID" json:"comments"`
}

func (Lesson) TableName() string {
	return "lessons"
}
