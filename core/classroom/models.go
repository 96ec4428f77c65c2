package classroom

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type (
	// Owner is the user who created a Class.
	Owner struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Avatar   string `json:"avatar"`
	}

	// Profile is the logged-in user.
	Profile struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}

	Class struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Subject  string      `json:"subject"`
		About    string      `json:"about"`
		Owner    Owner       `json:"owner"`
		Photo    string      `json:"photo"`
		JoinCode string      `json:"joinCode"`
		LockJoin bool        `json:"lockJoin"`
		LockMsg  string      `json:"lockMsg"`
		PlanID   null.String `json:"planId"`
		PayedOn  null.Time   `json:"payedOn"`
	}

	Student struct {
		Username string    `json:"username"`
		Name     string    `json:"name"`
		Avatar   string    `json:"avatar"`
		JoinedAt time.Time `json:"joinedAt"`
	}
)

// IsOwner reports whether p owns the class, which grants teacher permissions.
func (c Class) IsOwner(p Profile) bool {
	return p.Username != "" && c.Owner.Username == p.Username
}

// IsPaid reports whether the class is on a paid plan.
func (c Class) IsPaid() bool {
	return c.PlanID.Valid && c.PayedOn.Valid
}

type (
	Question struct {
		Question string   `json:"question"`
		Type     string   `json:"type"` // e.g. "mcq", "checkbox", "short"
		Options  []string `json:"options,omitempty"`
		Score    int      `json:"score"`
	}

	// QuizTime is one bound of a Quiz time period.
	QuizTime struct {
		Value time.Time `json:"value"`
	}

	Quiz struct {
		ClassID      string     `json:"classId"`
		QuizID       string     `json:"quizId"`
		Questions    []Question `json:"questions"`
		CreatedAt    time.Time  `json:"createdAt"`
		ReleaseScore bool       `json:"releaseScore"`
		TimePeriod   []QuizTime `json:"timePeriod"` // [start, end]
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		RandomOp     bool       `json:"randomOp"`
		RandomQue    bool       `json:"randomQue"`
	}

	// QuizBuckets groups the quizzes of a class.
	// The server does the grouping; the client only re-buckets on local insertion.
	QuizBuckets struct {
		Live    []Quiz `json:"live"`
		Expired []Quiz `json:"expired"`
		Scored  []Quiz `json:"scored"`
	}
)

// End returns the end of the quiz time period, if it has one.
func (q Quiz) End() (time.Time, bool) {
	if len(q.TimePeriod) < 2 {
		return time.Time{}, false
	}
	return q.TimePeriod[1].Value, true
}

// IsExpired reports whether now is strictly after the quiz end.
func (q Quiz) IsExpired(now time.Time) bool {
	end, ok := q.End()
	return ok && now.After(end)
}

// EmptyQuizBuckets returns buckets with non-nil, empty slices.
func EmptyQuizBuckets() QuizBuckets {
	return QuizBuckets{Live: []Quiz{}, Expired: []Quiz{}, Scored: []Quiz{}}
}

// Add returns new buckets with q placed into Expired or Live depending on now.
// The receiver's slices are never written to.
func (b QuizBuckets) Add(q Quiz, now time.Time) QuizBuckets {
	if q.IsExpired(now) {
		b.Expired = appendQuiz(b.Expired, q)
	} else {
		b.Live = appendQuiz(b.Live, q)
	}
	return b
}

// Remove returns new buckets without the quiz quizID.
func (b QuizBuckets) Remove(quizID string) QuizBuckets {
	return QuizBuckets{
		Live:    filterQuizzes(b.Live, quizID),
		Expired: filterQuizzes(b.Expired, quizID),
		Scored:  filterQuizzes(b.Scored, quizID),
	}
}

func (b QuizBuckets) Len() int {
	return len(b.Live) + len(b.Expired) + len(b.Scored)
}

func appendQuiz(quizzes []Quiz, q Quiz) []Quiz {
	out := make([]Quiz, 0, len(quizzes)+1)
	out = append(out, quizzes...)
	return append(out, q)
}

func filterQuizzes(quizzes []Quiz, quizID string) []Quiz {
	out := make([]Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.QuizID != quizID {
			out = append(out, q)
		}
	}
	return out
}

type (
	Discussion struct {
		ID                string    `json:"id"`
		Title             string    `json:"title"`
		CreatedAt         time.Time `json:"createdAt"`
		Author            Owner     `json:"author"`
		Closed            bool      `json:"closed"`
		Comments          int       `json:"comments"`
		ClosedPermanently bool      `json:"closedPermanently"`
	}

	Assignment struct {
		ID          string    `json:"id"`
		ClassID     string    `json:"classId"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"createdAt"`
		DueDate     null.Time `json:"dueDate"`
		Attachments []string  `json:"attachments"`
	}

	Result struct {
		QuizID    string    `json:"quizId"`
		Username  string    `json:"username"`
		Name      string    `json:"name"`
		Score     int       `json:"score"`
		Total     int       `json:"total"`
		Submitted time.Time `json:"submittedAt"`
	}

	Payment struct {
		OrderID   string      `json:"orderId"`
		ClassID   string      `json:"classId"`
		PlanID    string      `json:"planId"`
		Amount    int64       `json:"amount"` // minor units
		Currency  string      `json:"currency"`
		Status    string      `json:"status"`
		CreatedAt time.Time   `json:"createdAt"`
		PaidOn    null.Time   `json:"paidOn"`
		Receipt   null.String `json:"receipt"`
	}
)

// RemoveDiscussion returns a new slice without the discussion id.
func RemoveDiscussion(discussions []Discussion, id string) []Discussion {
	out := make([]Discussion, 0, len(discussions))
	for _, d := range discussions {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}

// PrependDiscussion returns a new slice with d first, newest discussions come first.
func PrependDiscussion(discussions []Discussion, d Discussion) []Discussion {
	out := make([]Discussion, 0, len(discussions)+1)
	out = append(out, d)
	return append(out, discussions...)
}
