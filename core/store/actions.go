package store

import (
	"time"

	"github.com/trezcool/masomo-client/core/classroom"
)

// NowFunc stamps AddQuiz actions. mockable
var NowFunc = time.Now

// Action is a state update message. The set of actions is closed:
// only the types of this package implement it.
type Action interface {
	Type() string
	action()
}

type (
	QuizzesLoadingAction struct {
		ClassID string
		Loading bool
	}
	QuizzesErroredAction struct {
		ClassID string
		Errored bool
	}
	QuizzesFetchedAction struct {
		ClassID string
		Quizzes classroom.QuizBuckets
	}
	QuizAddedAction struct {
		ClassID string
		Quiz    classroom.Quiz
		At      time.Time // dispatch time, decides the bucket
	}
	QuizRemovedAction struct {
		ClassID string
		QuizID  string
	}

	DiscussionsLoadingAction struct {
		ClassID string
		Loading bool
	}
	DiscussionsErroredAction struct {
		ClassID string
		Errored bool
	}
	DiscussionsFetchedAction struct {
		ClassID     string
		Discussions []classroom.Discussion
	}
	DiscussionAddedAction struct {
		ClassID    string
		Discussion classroom.Discussion
	}
	DiscussionRemovedAction struct {
		ClassID      string
		DiscussionID string
	}

	AssignmentsLoadingAction struct {
		ClassID string
		Loading bool
	}
	AssignmentsErroredAction struct {
		ClassID string
		Errored bool
	}
	AssignmentsFetchedAction struct {
		ClassID     string
		Assignments []classroom.Assignment
	}

	TokenSetAction struct {
		Token string
	}
	TokenRemovedAction struct{}

	ProfileSetAction struct {
		Profile classroom.Profile
	}

	CurrentClassSetAction struct {
		Class *classroom.Class // nil clears it
	}

	UnreadIncrementedAction struct {
		ClassID string
	}
	UnreadClearedAction struct {
		ClassID string
	}

	PushTokenRegisteredAction struct {
		OS    string
		Token string
	}
)

func (QuizzesLoadingAction) Type() string      { return "quizzes/loading" }
func (QuizzesErroredAction) Type() string      { return "quizzes/errored" }
func (QuizzesFetchedAction) Type() string      { return "quizzes/fetched" }
func (QuizAddedAction) Type() string           { return "quizzes/added" }
func (QuizRemovedAction) Type() string         { return "quizzes/removed" }
func (DiscussionsLoadingAction) Type() string  { return "discussions/loading" }
func (DiscussionsErroredAction) Type() string  { return "discussions/errored" }
func (DiscussionsFetchedAction) Type() string  { return "discussions/fetched" }
func (DiscussionAddedAction) Type() string     { return "discussions/added" }
func (DiscussionRemovedAction) Type() string   { return "discussions/removed" }
func (AssignmentsLoadingAction) Type() string  { return "assignments/loading" }
func (AssignmentsErroredAction) Type() string  { return "assignments/errored" }
func (AssignmentsFetchedAction) Type() string  { return "assignments/fetched" }
func (TokenSetAction) Type() string            { return "token/set" }
func (TokenRemovedAction) Type() string        { return "token/removed" }
func (ProfileSetAction) Type() string          { return "profile/set" }
func (CurrentClassSetAction) Type() string     { return "currentClass/set" }
func (UnreadIncrementedAction) Type() string   { return "unread/incremented" }
func (UnreadClearedAction) Type() string       { return "unread/cleared" }
func (PushTokenRegisteredAction) Type() string { return "push/registered" }

func (QuizzesLoadingAction) action()      {}
func (QuizzesErroredAction) action()      {}
func (QuizzesFetchedAction) action()      {}
func (QuizAddedAction) action()           {}
func (QuizRemovedAction) action()         {}
func (DiscussionsLoadingAction) action()  {}
func (DiscussionsErroredAction) action()  {}
func (DiscussionsFetchedAction) action()  {}
func (DiscussionAddedAction) action()     {}
func (DiscussionRemovedAction) action()   {}
func (AssignmentsLoadingAction) action()  {}
func (AssignmentsErroredAction) action()  {}
func (AssignmentsFetchedAction) action()  {}
func (TokenSetAction) action()            {}
func (TokenRemovedAction) action()        {}
func (ProfileSetAction) action()          {}
func (CurrentClassSetAction) action()     {}
func (UnreadIncrementedAction) action()   {}
func (UnreadClearedAction) action()       {}
func (PushTokenRegisteredAction) action() {}

// Action creators

func QuizzesLoading(loading bool, classID string) Action {
	return QuizzesLoadingAction{ClassID: classID, Loading: loading}
}

func QuizzesErrored(errored bool, classID string) Action {
	return QuizzesErroredAction{ClassID: classID, Errored: errored}
}

func QuizzesFetched(quizzes classroom.QuizBuckets, classID string) Action {
	return QuizzesFetchedAction{ClassID: classID, Quizzes: quizzes}
}

// AddQuiz inserts a quiz created locally. It is bucketed against the dispatch time.
func AddQuiz(quiz classroom.Quiz, classID string) Action {
	return QuizAddedAction{ClassID: classID, Quiz: quiz, At: NowFunc()}
}

func RemoveQuiz(quizID, classID string) Action {
	return QuizRemovedAction{ClassID: classID, QuizID: quizID}
}

func DiscussionsLoading(loading bool, classID string) Action {
	return DiscussionsLoadingAction{ClassID: classID, Loading: loading}
}

func DiscussionsErrored(errored bool, classID string) Action {
	return DiscussionsErroredAction{ClassID: classID, Errored: errored}
}

func DiscussionsFetched(discussions []classroom.Discussion, classID string) Action {
	return DiscussionsFetchedAction{ClassID: classID, Discussions: discussions}
}

func AddDiscussion(discussion classroom.Discussion, classID string) Action {
	return DiscussionAddedAction{ClassID: classID, Discussion: discussion}
}

func RemoveDiscussion(discussionID, classID string) Action {
	return DiscussionRemovedAction{ClassID: classID, DiscussionID: discussionID}
}

func AssignmentsLoading(loading bool, classID string) Action {
	return AssignmentsLoadingAction{ClassID: classID, Loading: loading}
}

func AssignmentsErrored(errored bool, classID string) Action {
	return AssignmentsErroredAction{ClassID: classID, Errored: errored}
}

func AssignmentsFetched(assignments []classroom.Assignment, classID string) Action {
	return AssignmentsFetchedAction{ClassID: classID, Assignments: assignments}
}

func SetToken(token string) Action { return TokenSetAction{Token: token} }

func RemoveToken() Action { return TokenRemovedAction{} }

func SetProfile(profile classroom.Profile) Action { return ProfileSetAction{Profile: profile} }

// SetCurrentClass selects the class scoping most screens. A nil class clears the selection.
func SetCurrentClass(class *classroom.Class) Action {
	if class != nil {
		c := *class
		class = &c
	}
	return CurrentClassSetAction{Class: class}
}

func IncrementUnread(classID string) Action { return UnreadIncrementedAction{ClassID: classID} }

func ClearUnread(classID string) Action { return UnreadClearedAction{ClassID: classID} }

func RegisterPushToken(os, token string) Action {
	return PushTokenRegisteredAction{OS: os, Token: token}
}
