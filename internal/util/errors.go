package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("该用户名已被注册")
	ErrInvalidCredential = errors.New("invalid credentials")

	ErrCourseNotFound  = errors.New("course not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrNotCourseOwner    = errors.New("permission denied: not the course owner")
	ErrAlreadyPurchased  = errors.New("course already purchased")
	ErrSelfPurchase      = errors.New("cannot purchase your own course")
	ErrInvalidToken      = errors.New("purchase token invalid or already consumed")
	ErrLessonNotInCourse = errors.New("lesson does not belong to this course")
	ErrPartialWrite      = errors.New("partial write: operation incomplete, please retry")
	ErrValidation        = errors.New("validation failed")
)
