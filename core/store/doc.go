/*
Package store is the client state container.

The state tree holds the session (token, profile, current class), the unread counters
and one ResourceMap per class-scoped resource (quizzes, discussions, assignments).
Every update is an Action applied by a pure reducer; reducers never modify a published
map, they build a new one sharing the entries of the untouched classes.

Network calls live in thunks (see Fetcher) run through Store.Run.
*/
package store
