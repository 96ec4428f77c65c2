package notifysvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
	"github.com/trezcool/masomo-client/tests"
)

func TestRegisterDevice(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name    string
		reg     classroom.PushRegistration
		wantErr bool
		wantOS  string
	}{
		{name: "android", reg: classroom.PushRegistration{OS: " Android ", Token: "fcm-token"}, wantOS: "android"},
		{name: "unknown os", reg: classroom.PushRegistration{OS: "symbian", Token: "fcm-token"}, wantErr: true},
		{name: "blank token", reg: classroom.PushRegistration{OS: "ios", Token: "   "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			err := RegisterDevice(st.Dispatch, validate, tt.reg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RegisterDevice() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.wantOS, st.State().Push.OS)
		})
	}
}

func TestListener_Apply(t *testing.T) {
	now := time.Now()
	st := store.New()
	st.Dispatch(store.QuizzesFetched(classroom.EmptyQuizBuckets(), "c1"))
	st.Dispatch(store.DiscussionsFetched([]classroom.Discussion{testutil.Discussion("d1", "Intro")}, "c1"))
	l := NewListener("", st, nil)

	quiz := testutil.Quiz("q1", now, time.Hour)
	disc := testutil.Discussion("d2", "Homework")
	for _, ev := range []Event{
		{Type: EventQuiz, ClassID: "c1", Quiz: &quiz},
		{Type: EventQuiz, ClassID: "c2", Quiz: &quiz},
		{Type: EventDiscussion, ClassID: "c1", Discussion: &disc},
		{Type: EventDiscussion, ClassID: "c2", Discussion: &disc},
		{Type: EventDiscussionRemoved, ClassID: "c1", ID: "d1"},
		{Type: "poke", ClassID: "c1"},
	} {
		l.Apply(ev)
	}

	s := st.State()
	quizzes, _ := s.QuizzesFor("c1")
	require.Len(t, quizzes.Data.Live, 1)
	assert.Equal(t, "q1", quizzes.Data.Live[0].QuizID)
	assert.False(t, s.Quizzes.Has("c2"), "events must not create cache entries")

	discussions, _ := s.DiscussionsFor("c1")
	require.Len(t, discussions.Data, 1)
	assert.Equal(t, "d2", discussions.Data[0].ID)
	assert.False(t, s.Discussions.Has("c2"))

	assert.Equal(t, 1, s.UnreadFor("c1"))
	assert.Equal(t, 1, s.UnreadFor("c2"))

	l.Apply(Event{Type: EventQuizRemoved, ClassID: "c1", ID: "q1"})
	quizzes, _ = st.State().QuizzesFor("c1")
	assert.Empty(t, quizzes.Data.Live)
}

func TestListener_Listen(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(Event{Type: EventDiscussion, ClassID: "c1"})
		_ = conn.WriteJSON(Event{Type: EventDiscussion, ClassID: "c1"})
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		// wait for the client to go away
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	st := store.New()
	l := NewListener("ws"+strings.TrimPrefix(srv.URL, "http"), st, nil)

	err := l.Listen(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", <-received)
	assert.Equal(t, 2, st.State().UnreadFor("c1"))
}

func TestListener_ListenCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	l := NewListener("ws"+strings.TrimPrefix(srv.URL, "http"), store.New(), nil)
	errc := make(chan error, 1)
	go func() { errc <- l.Listen(ctx, "tok") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Listen() did not return after cancel")
	}
}

func TestListener_ListenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	l := NewListener("ws"+strings.TrimPrefix(srv.URL, "http"), store.New(), nil)
	err := l.Listen(context.Background(), "expired")
	assert.True(t, core.IsUnauthorized(err), "error = %v", err)

	err = NewListener("", store.New(), nil).Listen(context.Background(), "tok")
	assert.Error(t, err)
	assert.False(t, core.IsUnauthorized(errors.Cause(err)))
}
