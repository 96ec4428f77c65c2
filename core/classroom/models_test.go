package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func quizEnding(id string, end time.Time) Quiz {
	return Quiz{
		QuizID:     id,
		TimePeriod: []QuizTime{{Value: end.Add(-time.Hour)}, {Value: end}},
	}
}

func TestClass_IsOwner(t *testing.T) {
	class := Class{ID: "c1", Owner: Owner{Username: "teacher"}}

	tests := []struct {
		name    string
		profile Profile
		want    bool
	}{
		{name: "owner", profile: Profile{Username: "teacher"}, want: true},
		{name: "student", profile: Profile{Username: "student"}},
		{name: "anonymous", profile: Profile{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := class.IsOwner(tt.profile); got != tt.want {
				t.Errorf("IsOwner() = %v; want %v", got, tt.want)
			}
		})
	}

	// a class not loaded yet has no owner; nobody owns it
	if (Class{}).IsOwner(Profile{}) {
		t.Error("IsOwner() = true for an empty class and an anonymous profile; want false")
	}
}

func TestClass_IsPaid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		class Class
		want  bool
	}{
		{name: "free", class: Class{}},
		{name: "plan only", class: Class{PlanID: null.StringFrom("pro")}},
		{name: "paid", class: Class{PlanID: null.StringFrom("pro"), PayedOn: null.TimeFrom(now)}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.IsPaid(); got != tt.want {
				t.Errorf("IsPaid() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestQuiz_IsExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		quiz Quiz
		want bool
	}{
		{name: "ended", quiz: quizEnding("q", now.Add(-time.Minute)), want: true},
		{name: "running", quiz: quizEnding("q", now.Add(time.Minute))},
		{name: "ends now", quiz: quizEnding("q", now)},
		{name: "no period", quiz: Quiz{QuizID: "q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quiz.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestQuizBuckets_Add(t *testing.T) {
	now := time.Now()
	past := quizEnding("past", now.Add(-time.Hour))
	future := quizEnding("future", now.Add(time.Hour))

	b := EmptyQuizBuckets().Add(past, now).Add(future, now)

	assert.Equal(t, []Quiz{past}, b.Expired)
	assert.Equal(t, []Quiz{future}, b.Live)
	assert.Empty(t, b.Scored)
}

func TestQuizBuckets_Add_doesNotShareBackingArray(t *testing.T) {
	now := time.Now()
	live := make([]Quiz, 1, 4)
	live[0] = quizEnding("a", now.Add(time.Hour))
	orig := QuizBuckets{Live: live}

	b1 := orig.Add(quizEnding("b", now.Add(time.Hour)), now)
	b2 := orig.Add(quizEnding("c", now.Add(time.Hour)), now)

	if b1.Live[1].QuizID != "b" {
		t.Errorf("b1.Live[1] = %q; want %q", b1.Live[1].QuizID, "b")
	}
	if b2.Live[1].QuizID != "c" {
		t.Errorf("b2.Live[1] = %q; want %q", b2.Live[1].QuizID, "c")
	}
	if len(orig.Live) != 1 {
		t.Errorf("len(orig.Live) = %d; want 1", len(orig.Live))
	}
}

func TestQuizBuckets_Remove(t *testing.T) {
	now := time.Now()
	b := QuizBuckets{
		Live:    []Quiz{quizEnding("x", now.Add(time.Hour)), quizEnding("keep1", now.Add(time.Hour))},
		Expired: []Quiz{quizEnding("x", now.Add(-time.Hour))},
		Scored:  []Quiz{quizEnding("x", now.Add(-time.Hour)), quizEnding("keep2", now.Add(-time.Hour))},
	}

	got := b.Remove("x")

	assert.Len(t, got.Live, 1)
	assert.Empty(t, got.Expired)
	assert.Len(t, got.Scored, 1)
	assert.Equal(t, 5, b.Len(), "receiver must be left untouched")
}

func TestDiscussionHelpers(t *testing.T) {
	ds := []Discussion{{ID: "1"}, {ID: "2"}}

	got := PrependDiscussion(ds, Discussion{ID: "0"})
	assert.Equal(t, []string{"0", "1", "2"}, discussionIDs(got))

	got = RemoveDiscussion(got, "1")
	assert.Equal(t, []string{"0", "2"}, discussionIDs(got))
	assert.Equal(t, []string{"1", "2"}, discussionIDs(ds))
}

func discussionIDs(ds []Discussion) []string {
	ids := make([]string, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID)
	}
	return ids
}
