package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/auth"
	"github.com/trezcool/masomo-client/core/classroom"
)

// Config returns a valid test configuration pointing at baseURL.
func Config(baseURL string) *core.Config {
	return &core.Config{
		Env:      "TEST",
		AppName:  "Masomo",
		TestMode: true,
		API: core.APIConfig{
			BaseURL: baseURL,
			Timeout: 2 * time.Second,
		},
		Endpoints: core.Endpoints{
			Login:      "/v1/auth/login",
			CheckToken: "/v1/auth/check-token",
			Class:      "/v1/classes",
			Student:    "/v1/students",
			Quiz:       "/v1/quizzes",
			Discuss:    "/v1/discussions",
			Assignment: "/v1/assignments",
			Result:     "/v1/results",
			Payment:    "/v1/payments",
			VidTracker: "/v1/video-tracker",
			Notify:     "/v1/notifications",
		},
		Storage: core.StorageConfig{Backend: core.StorageMemory},
	}
}

// Quiz returns a quiz whose period ends at now+end.
func Quiz(id string, now time.Time, end time.Duration) classroom.Quiz {
	return classroom.Quiz{
		ClassID:   "c1",
		QuizID:    id,
		Title:     "Quiz " + id,
		CreatedAt: now.Add(-time.Hour),
		TimePeriod: []classroom.QuizTime{
			{Value: now.Add(-time.Hour)},
			{Value: now.Add(end)},
		},
	}
}

func Discussion(id, title string) classroom.Discussion {
	return classroom.Discussion{ID: id, Title: title, Author: classroom.Owner{Username: "awe"}}
}

// Token signs a JWT for username, expiring at exp.
func Token(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	claims := &auth.Claims{
		StandardClaims: jwt.StandardClaims{Subject: username, ExpiresAt: exp.Unix()},
		Username:       username,
		Name:           "User " + username,
		Email:          username + "@test.cd",
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	return ss
}

// FakeRepo is a store repository answering from fixed data and counting its calls.
type FakeRepo struct {
	mu          sync.Mutex
	calls       map[string]int
	Quizzes     classroom.QuizBuckets
	Discussions []classroom.Discussion
	Assignments []classroom.Assignment
	Err         error
}

func (r *FakeRepo) record(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[kind]++
}

// Calls returns how many times the kind ("quizzes", "discussions", "assignments") was fetched.
func (r *FakeRepo) Calls(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[kind]
}

func (r *FakeRepo) FetchQuizzes(_ context.Context, _, _ string) (classroom.QuizBuckets, error) {
	r.record("quizzes")
	if r.Err != nil {
		return classroom.QuizBuckets{}, r.Err
	}
	return r.Quizzes, nil
}

func (r *FakeRepo) FetchDiscussions(_ context.Context, _, _ string) ([]classroom.Discussion, error) {
	r.record("discussions")
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Discussions, nil
}

func (r *FakeRepo) FetchAssignments(_ context.Context, _, _ string) ([]classroom.Assignment, error) {
	r.record("assignments")
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Assignments, nil
}
