package devtools

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-client/core/store"
)

// Resource kinds served under /v1/classes/:id/
const (
	kindQuizzes     = "quizzes"
	kindDiscussions = "discussions"
	kindAssignments = "assignments"
)

type stateAPI struct {
	store   *store.Store
	fetcher *store.Fetcher
}

func registerStateAPI(g *echo.Group, st *store.Store, fetcher *store.Fetcher) {
	api := stateAPI{store: st, fetcher: fetcher}

	g.GET("/state", api.state)

	classes := g.Group("/classes/:id")
	classes.GET("/:kind", api.entry)
	classes.POST("/:kind/refresh", api.refresh)
}

func (api stateAPI) state(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.State())
}

// entry returns the cache entry of one class, 404 when the class was never fetched.
func (api stateAPI) entry(ctx echo.Context) error {
	s := api.store.State()
	classID := ctx.Param("id")

	var (
		entry interface{}
		ok    bool
	)
	switch ctx.Param("kind") {
	case kindQuizzes:
		entry, ok = s.QuizzesFor(classID)
	case kindDiscussions:
		entry, ok = s.DiscussionsFor(classID)
	case kindAssignments:
		entry, ok = s.AssignmentsFor(classID)
	default:
		return errUnknownKind
	}
	if !ok {
		return errNotFetched
	}
	return ctx.JSON(http.StatusOK, entry)
}

// refresh reloads a class resource, bypassing the cache, then returns the new entry.
func (api stateAPI) refresh(ctx echo.Context) error {
	if api.fetcher == nil {
		return errNoFetcherSet
	}
	s := api.store.State()
	if !s.LoggedIn() {
		return errNotLoggedIn
	}
	classID := ctx.Param("id")

	var thunk store.Thunk
	switch ctx.Param("kind") {
	case kindQuizzes:
		thunk = api.fetcher.RefreshQuizzes(s.Token, classID)
	case kindDiscussions:
		thunk = api.fetcher.RefreshDiscussions(s.Token, classID)
	case kindAssignments:
		thunk = api.fetcher.RefreshAssignments(s.Token, classID)
	default:
		return errUnknownKind
	}
	if err := api.store.Run(ctx.Request().Context(), thunk); err != nil {
		return err
	}
	return api.entry(ctx)
}
