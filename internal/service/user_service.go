package service

import (
	"course_market_backend/internal/model"
)

type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

type ProgressEntry struct {
	LessonID uint `json:"lessonId"`
	Progress int  `json:"progress"`
}

// ProfileResponse 当前用户画像，所有键始终存在。
type ProfileResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Courses   []uint          `json:"courses"`
	Progress  []ProgressEntry `json:"progress"`
}

func (s *UserService) Profile(userID uint) (*ProfileResponse, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.Users.ListPurchases(userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.Users.ListProgress(userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uint, 0, len(purchases))
	for _, p := range purchases {
		courseIDs = append(courseIDs, p.CourseID)
	}

	entries := make([]ProgressEntry, 0, len(progress))
	for _, p := range progress {
		entries = append(entries, ProgressEntry{LessonID: p.LessonID, Progress: p.Progress})
	}

	return &ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Courses:   courseIDs,
		Progress:  entries,
	}, nil
}

func serializeUser(user *model.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
