package service

import (
	"encoding/json"
	"strings"
	"testing"

	"course_market_backend/internal/model"
)

func TestProfileAggregatesPurchasesAndProgress(t *testing.T) {
	users := &mockUserStore{
		FindByIDFn: func(id uint) (*model.User, error) {
			u := &model.User{Username: "bob", Email: "bob@example.com", FirstName: "Bob"}
			u.ID = 7
			return u, nil
		},
		ListPurchasesFn: func(userID uint) ([]model.Purchase, error) {
			return []model.Purchase{{CourseID: 3}, {CourseID: 9}}, nil
		},
		ListProgressFn: func(userID uint) ([]model.LessonProgress, error) {
			return []model.LessonProgress{{LessonID: 5, Progress: 80}}, nil
		},
	}
	svc := NewUserService(users)

	profile, err := svc.Profile(7)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if len(profile.Courses) != 2 || profile.Courses[0] != 3 || profile.Courses[1] != 9 {
		t.Errorf("courses = %v, want [3 9]", profile.Courses)
	}
	if len(profile.Progress) != 1 || profile.Progress[0].LessonID != 5 || profile.Progress[0].Progress != 80 {
		t.Errorf("progress = %v", profile.Progress)
	}
}

// 无购买无进度的新用户，courses 和 progress 序列化为 [] 而不是 null。
func TestProfileEmptyCollections(t *testing.T) {
	users := &mockUserStore{
		FindByIDFn: func(id uint) (*model.User, error) {
			u := &model.User{Username: "fresh"}
			u.ID = 1
			return u, nil
		},
		ListPurchasesFn: func(userID uint) ([]model.Purchase, error) { return nil, nil },
		ListProgressFn:  func(userID uint) ([]model.LessonProgress, error) { return nil, nil },
	}
	svc := NewUserService(users)

	profile, err := svc.Profile(1)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	payload, _ := json.Marshal(profile)
	if !strings.Contains(string(payload), `"courses":[]`) {
		t.Errorf("courses should serialize to [], got %s", payload)
	}
	if !strings.Contains(string(payload), `"progress":[]`) {
		t.Errorf("progress should serialize to [], got %s", payload)
	}
}
