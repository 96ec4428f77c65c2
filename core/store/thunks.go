package store

import (
	"context"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/classroom"
)

type (
	QuizRepository interface {
		FetchQuizzes(ctx context.Context, token, classID string) (classroom.QuizBuckets, error)
	}

	DiscussionRepository interface {
		FetchDiscussions(ctx context.Context, token, classID string) ([]classroom.Discussion, error)
	}

	AssignmentRepository interface {
		FetchAssignments(ctx context.Context, token, classID string) ([]classroom.Assignment, error)
	}
)

// Fetcher builds the thunks loading class-scoped resources from the remote API.
//
// Fetch* thunks only hit the network for classes missing from the cache; Refresh* thunks always do.
// Failures are never returned: they end up as errored entries in the state.
type Fetcher struct {
	Quizzes     QuizRepository
	Discussions DiscussionRepository
	Assignments AssignmentRepository
	Log         core.Logger
}

func NewFetcher(quizzes QuizRepository, discussions DiscussionRepository, assignments AssignmentRepository, log core.Logger) *Fetcher {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Fetcher{
		Quizzes:     quizzes,
		Discussions: discussions,
		Assignments: assignments,
		Log:         log,
	}
}

// resource describes how one resource type is fetched and reported to the store.
type resource[T any] struct {
	name    string
	cached  func(State, string) bool
	fetch   func(ctx context.Context, token, classID string) (T, error)
	loading func(bool, string) Action
	errored func(bool, string) Action
	fetched func(T, string) Action
}

func (r resource[T]) thunk(log core.Logger, token, classID string, guarded bool) Thunk {
	return func(ctx context.Context, dispatch DispatchFunc, getState GetStateFunc) error {
		if guarded && r.cached(getState(), classID) {
			return nil
		}

		dispatch(r.loading(true, classID))
		data, err := r.fetch(ctx, token, classID)
		if err != nil {
			log.Error("fetching "+r.name, err, map[string]interface{}{"classId": classID})
			dispatch(r.loading(false, classID))
			dispatch(r.errored(true, classID))
			return nil
		}
		dispatch(r.fetched(data, classID))
		return nil
	}
}

func (f *Fetcher) quizzes() resource[classroom.QuizBuckets] {
	return resource[classroom.QuizBuckets]{
		name:    "quizzes",
		cached:  func(s State, id string) bool { return s.Quizzes.Has(id) },
		fetch:   f.Quizzes.FetchQuizzes,
		loading: QuizzesLoading,
		errored: QuizzesErrored,
		fetched: QuizzesFetched,
	}
}

func (f *Fetcher) discussions() resource[[]classroom.Discussion] {
	return resource[[]classroom.Discussion]{
		name:    "discussions",
		cached:  func(s State, id string) bool { return s.Discussions.Has(id) },
		fetch:   f.Discussions.FetchDiscussions,
		loading: DiscussionsLoading,
		errored: DiscussionsErrored,
		fetched: DiscussionsFetched,
	}
}

func (f *Fetcher) assignments() resource[[]classroom.Assignment] {
	return resource[[]classroom.Assignment]{
		name:    "assignments",
		cached:  func(s State, id string) bool { return s.Assignments.Has(id) },
		fetch:   f.Assignments.FetchAssignments,
		loading: AssignmentsLoading,
		errored: AssignmentsErrored,
		fetched: AssignmentsFetched,
	}
}

// FetchQuizzes loads the quizzes of classID unless they are already cached.
func (f *Fetcher) FetchQuizzes(token, classID string) Thunk {
	return f.quizzes().thunk(f.Log, token, classID, true)
}

// RefreshQuizzes reloads the quizzes of classID, cached or not.
func (f *Fetcher) RefreshQuizzes(token, classID string) Thunk {
	return f.quizzes().thunk(f.Log, token, classID, false)
}

func (f *Fetcher) FetchDiscussions(token, classID string) Thunk {
	return f.discussions().thunk(f.Log, token, classID, true)
}

func (f *Fetcher) RefreshDiscussions(token, classID string) Thunk {
	return f.discussions().thunk(f.Log, token, classID, false)
}

func (f *Fetcher) FetchAssignments(token, classID string) Thunk {
	return f.assignments().thunk(f.Log, token, classID, true)
}

func (f *Fetcher) RefreshAssignments(token, classID string) Thunk {
	return f.assignments().thunk(f.Log, token, classID, false)
}
