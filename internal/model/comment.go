package model

// Comment 挂在课程或课时其中之一上，追加写入，可按 id 删除。
type Comment struct {
	BaseModel
	Body     string `gorm:"type:text;not null" json:"body"`
	Username string `gorm:"size:100;not null" json:"username"`

	CourseID *uint `gorm:"index" json:"courseId,omitempty"`
	LessonID *uint `gorm:"index" json:"lessonId,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
