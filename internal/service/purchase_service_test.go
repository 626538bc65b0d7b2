package service

import (
	"context"
	"errors"
	"testing"

	"course_market_backend/internal/model"
	"course_market_backend/internal/util"
)

func marketCourse(id uint, owner string, tokens ...string) *model.Course {
	c := &model.Course{Username: owner, Title: "Go 实战", Description: "desc", Price: 99}
	c.ID = id
	for _, t := range tokens {
		c.Tokens = append(c.Tokens, model.PurchaseToken{Token: t})
	}
	return c
}

func newPurchaseService(courses CourseStore, purchases PurchaseStore) *PurchaseService {
	return NewPurchaseService(courses, purchases, nil)
}

func TestPurchaseSuccess(t *testing.T) {
	executed := false
	courses := &mockCourseStore{
		FindByIDFn: func(id uint) (*model.Course, error) {
			return marketCourse(1, "alice", "tok-1"), nil
		},
	}
	purchases := &mockPurchaseStore{
		ExistsFn: func(userID, courseID uint) (bool, error) { return false, nil },
		ExecuteFn: func(userID, courseID uint, token string) error {
			executed = true
			if userID != 7 || courseID != 1 || token != "tok-1" {
				t.Errorf("execute got (%d, %d, %q)", userID, courseID, token)
			}
			return nil
		},
	}

	svc := newPurchaseService(courses, purchases)
	if err := svc.Purchase(context.Background(), 7, "bob", 1, "tok-1"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if !executed {
		t.Error("expected purchase to reach the store")
	}
}

func TestPurchaseCourseNotFound(t *testing.T) {
	courses := &mockCourseStore{
		FindByIDFn: func(id uint) (*model.Course, error) { return nil, util.ErrCourseNotFound },
	}
	purchases := &mockPurchaseStore{
		ExistsFn: func(userID, courseID uint) (bool, error) {
			t.Fatal("should not check purchases")
			return false, nil
		},
		ExecuteFn: func(userID, courseID uint, token string) error {
			t.Fatal("should not execute")
			return nil
		},
	}

	svc := newPurchaseService(courses, purchases)
	err := svc.Purchase(context.Background(), 7, "bob", 1, "tok-1")
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

// 重复购买的拒绝发生在任何令牌触碰之前，即便提交的令牌有效。
func TestPurchaseDuplicateBeforeTokenTouch(t *testing.T) {
	courses := &mockCourseStore{
		FindByIDFn: func(id uint) (*model.Course, error) {
			return marketCourse(1, "alice", "tok-1"), nil
		},
	}
	purchases := &mockPurchaseStore{
		ExistsFn: func(userID, courseID uint) (bool, error) { return true, nil },
		ExecuteFn: func(userID, courseID uint, token string) error {
			t.Fatal("duplicate purchase must not touch the token")
			return nil
		},
	}

	svc := newPurchaseService(courses, purchases)
	err := svc.Purchase(context.Background(), 7, "bob", 1, "tok-1")
	if !errors.Is(err, util.ErrAlreadyPurchased) {
		t.Fatalf("err = %v, want ErrAlreadyPurchased", err)
	}
}

func TestPurchaseOwnCourseForbidden(t *testing.T) {
	courses := &mockCourseStore{
		FindByIDFn: func(id uint) (*model.Course, error) {
			return marketCourse(1, "alice", "tok-1"), nil
		},
	}
	purchases := &mockPurchaseStore{
		ExistsFn: func(userID, courseID uint) (bool, error) { return false, nil },
		ExecuteFn: func(userID, courseID uint, token string) error {
			t.Fatal("self purchase must not consume the token")
			return nil
		},
	}

	svc := newPurchaseService(courses, purchases)
	err := svc.Purchase(context.Background(), 7, "alice", 1, "tok-1")
	if !errors.Is(err, util.ErrSelfPurchase) {
		t.Fatalf("err = %v, want ErrSelfPurchase", err)
	}
}

func TestPurchaseInvalidToken(t *testing.T) {
	courses := &mockCourseStore{
		FindByIDFn: func(id uint) (*model.Course, error) {
			return marketCourse(1, "alice", "tok-1"), nil
		},
	}
	purchases := &mockPurchaseStore{
		ExistsFn: func(userID, courseID uint) (bool, error) { return false, nil },
		ExecuteFn: func(userID, courseID uint, token string) error {
			t.Fatal("invalid token must not reach the store")
			return nil
		},
	}

	svc := newPurchaseService(courses, purchases)
	err := svc.Purchase(context.Background(), 7, "bob", 1, "tok-unknown")
	if !errors.Is(err, util.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

// 预检查通过但事务内删除行数为零（并发消费），错误原样上抛。
func TestPurchaseTokenRace(t *testing.T) {
	courses := &mockCourseStore{
		FindByIDFn: func(id uint) (*model.Course, error) {
			return marketCourse(1, "alice", "tok-1"), nil
		},
	}
	purchases := &mockPurchaseStore{
		ExistsFn:  func(userID, courseID uint) (bool, error) { return false, nil },
		ExecuteFn: func(userID, courseID uint, token string) error { return util.ErrInvalidToken },
	}

	svc := newPurchaseService(courses, purchases)
	err := svc.Purchase(context.Background(), 7, "bob", 1, "tok-1")
	if !errors.Is(err, util.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
