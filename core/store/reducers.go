package store

import (
	"github.com/trezcool/masomo-client/core/classroom"
)

// PushRegistration is the device registration delivered by the platform push service.
type PushRegistration struct {
	OS    string `json:"os"`
	Token string `json:"token"`
}

// State is the whole client state tree.
// A State returned by the Store must be treated as read-only.
type State struct {
	Token        string                              `json:"token"`
	Profile      classroom.Profile                   `json:"profile"`
	CurrentClass *classroom.Class                    `json:"currentClass"`
	Quizzes      ResourceMap[classroom.QuizBuckets]  `json:"quizzes"`
	Discussions  ResourceMap[[]classroom.Discussion] `json:"discussions"`
	Assignments  ResourceMap[[]classroom.Assignment] `json:"assignments"`
	Unread       map[string]int                      `json:"unread"`
	Push         PushRegistration                    `json:"push"`
}

// Reducer maps the current state and an action to the next state.
type Reducer func(State, Action) State

// InitialState returns the state of a fresh store.
func InitialState() State {
	return State{
		Quizzes:     ResourceMap[classroom.QuizBuckets]{},
		Discussions: ResourceMap[[]classroom.Discussion]{},
		Assignments: ResourceMap[[]classroom.Assignment]{},
		Unread:      map[string]int{},
	}
}

// Reduce is the root reducer, combining the reducer of every state slice.
func Reduce(s State, a Action) State {
	s.Token = reduceToken(s.Token, a)
	s.Profile = reduceProfile(s.Profile, a)
	s.CurrentClass = reduceCurrentClass(s.CurrentClass, a)
	s.Quizzes = ReduceQuizzes(s.Quizzes, a)
	s.Discussions = ReduceDiscussions(s.Discussions, a)
	s.Assignments = ReduceAssignments(s.Assignments, a)
	s.Unread = reduceUnread(s.Unread, a)
	s.Push = reducePush(s.Push, a)
	return s
}

func emptyQuizzes() classroom.QuizBuckets      { return classroom.EmptyQuizBuckets() }
func emptyDiscussions() []classroom.Discussion { return []classroom.Discussion{} }
func emptyAssignments() []classroom.Assignment { return []classroom.Assignment{} }

func ReduceQuizzes(m ResourceMap[classroom.QuizBuckets], a Action) ResourceMap[classroom.QuizBuckets] {
	switch a := a.(type) {
	case QuizzesLoadingAction:
		return m.setLoading(a.ClassID, a.Loading, emptyQuizzes)
	case QuizzesErroredAction:
		return m.setErrored(a.ClassID, a.Errored, emptyQuizzes)
	case QuizzesFetchedAction:
		return m.setData(a.ClassID, a.Quizzes, emptyQuizzes)
	case QuizAddedAction:
		return m.mapData(a.ClassID, emptyQuizzes, func(b classroom.QuizBuckets) classroom.QuizBuckets {
			return b.Add(a.Quiz, a.At)
		})
	case QuizRemovedAction:
		return m.mapData(a.ClassID, emptyQuizzes, func(b classroom.QuizBuckets) classroom.QuizBuckets {
			return b.Remove(a.QuizID)
		})
	default:
		return m
	}
}

func ReduceDiscussions(m ResourceMap[[]classroom.Discussion], a Action) ResourceMap[[]classroom.Discussion] {
	switch a := a.(type) {
	case DiscussionsLoadingAction:
		return m.setLoading(a.ClassID, a.Loading, emptyDiscussions)
	case DiscussionsErroredAction:
		return m.setErrored(a.ClassID, a.Errored, emptyDiscussions)
	case DiscussionsFetchedAction:
		return m.setData(a.ClassID, a.Discussions, emptyDiscussions)
	case DiscussionAddedAction:
		return m.mapData(a.ClassID, emptyDiscussions, func(ds []classroom.Discussion) []classroom.Discussion {
			return classroom.PrependDiscussion(ds, a.Discussion)
		})
	case DiscussionRemovedAction:
		return m.mapData(a.ClassID, emptyDiscussions, func(ds []classroom.Discussion) []classroom.Discussion {
			return classroom.RemoveDiscussion(ds, a.DiscussionID)
		})
	default:
		return m
	}
}

func ReduceAssignments(m ResourceMap[[]classroom.Assignment], a Action) ResourceMap[[]classroom.Assignment] {
	switch a := a.(type) {
	case AssignmentsLoadingAction:
		return m.setLoading(a.ClassID, a.Loading, emptyAssignments)
	case AssignmentsErroredAction:
		return m.setErrored(a.ClassID, a.Errored, emptyAssignments)
	case AssignmentsFetchedAction:
		return m.setData(a.ClassID, a.Assignments, emptyAssignments)
	default:
		return m
	}
}

func reduceToken(token string, a Action) string {
	switch a := a.(type) {
	case TokenSetAction:
		return a.Token
	case TokenRemovedAction:
		return ""
	default:
		return token
	}
}

func reduceProfile(p classroom.Profile, a Action) classroom.Profile {
	switch a := a.(type) {
	case ProfileSetAction:
		return a.Profile
	case TokenRemovedAction: // logged out
		return classroom.Profile{}
	default:
		return p
	}
}

func reduceCurrentClass(c *classroom.Class, a Action) *classroom.Class {
	switch a := a.(type) {
	case CurrentClassSetAction:
		return a.Class
	case TokenRemovedAction:
		return nil
	default:
		return c
	}
}

func reduceUnread(unread map[string]int, a Action) map[string]int {
	switch a := a.(type) {
	case UnreadIncrementedAction:
		next := copyCounts(unread)
		next[a.ClassID]++
		return next
	case UnreadClearedAction:
		if _, ok := unread[a.ClassID]; !ok {
			return unread
		}
		next := copyCounts(unread)
		delete(next, a.ClassID)
		return next
	default:
		return unread
	}
}

func reducePush(p PushRegistration, a Action) PushRegistration {
	if a, ok := a.(PushTokenRegisteredAction); ok {
		return PushRegistration{OS: a.OS, Token: a.Token}
	}
	return p
}

func copyCounts(m map[string]int) map[string]int {
	next := make(map[string]int, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}
