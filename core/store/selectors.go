package store

import (
	"github.com/trezcool/masomo-client/core/classroom"
)

func (s State) QuizzesFor(classID string) (ResourceEntry[classroom.QuizBuckets], bool) {
	return s.Quizzes.Get(classID)
}

func (s State) DiscussionsFor(classID string) (ResourceEntry[[]classroom.Discussion], bool) {
	return s.Discussions.Get(classID)
}

func (s State) AssignmentsFor(classID string) (ResourceEntry[[]classroom.Assignment], bool) {
	return s.Assignments.Get(classID)
}

// UnreadFor returns the number of unread discussion events of classID.
func (s State) UnreadFor(classID string) int {
	return s.Unread[classID]
}

// IsOwner reports whether the logged-in user owns the current class.
func (s State) IsOwner() bool {
	return s.CurrentClass != nil && s.CurrentClass.IsOwner(s.Profile)
}

// LoggedIn reports whether a token is set.
func (s State) LoggedIn() bool {
	return s.Token != ""
}
