package notifysvc

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
)

// Event types sent by the notification feed.
const (
	EventDiscussion        = "discussion"
	EventDiscussionRemoved = "discussion_removed"
	EventQuiz              = "quiz"
	EventQuizRemoved       = "quiz_removed"
)

// Event is one message of the notification feed.
type Event struct {
	Type       string                `json:"type"`
	ClassID    string                `json:"classId"`
	ID         string                `json:"id,omitempty"` // removed quiz/discussion
	Quiz       *classroom.Quiz       `json:"quiz,omitempty"`
	Discussion *classroom.Discussion `json:"discussion,omitempty"`
}

// RegisterDevice forwards the registration delivered by the platform push service to the store.
func RegisterDevice(dispatch store.DispatchFunc, validate *validator.Validate, reg classroom.PushRegistration) error {
	if err := reg.Validate(validate); err != nil {
		return core.NewValidationError(err)
	}
	dispatch(store.RegisterPushToken(reg.OS, reg.Token))
	return nil
}

// Listener applies the events of the notification feed to a store.
type Listener struct {
	url    string
	store  *store.Store
	dialer *websocket.Dialer
	log    core.Logger
}

func NewListener(url string, st *store.Store, log core.Logger) *Listener {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Listener{
		url:    url,
		store:  st,
		dialer: websocket.DefaultDialer,
		log:    log,
	}
}

// Listen connects to the feed and applies its events until ctx is done or the connection drops.
// It returns nil when ctx is done.
func (l *Listener) Listen(ctx context.Context, token string) error {
	if l.url == "" {
		return errors.New("notifications are not configured")
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, res, err := l.dialer.DialContext(ctx, l.url, header)
	if err != nil {
		if res != nil {
			return errors.Wrap(core.NewAPIError(res.StatusCode, ""), "connecting to notifications")
		}
		return errors.Wrap(err, "connecting to notifications")
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline())
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return errors.Wrap(err, "reading notification")
		}
		l.Apply(ev)
	}
}

func deadline() time.Time {
	return time.Now().Add(time.Second)
}

// Apply dispatches the actions of one event.
// Quizzes and discussions are only inserted into classes already cached, so that a later fetch is not skipped.
func (l *Listener) Apply(ev Event) {
	state := l.store.State()
	switch ev.Type {
	case EventDiscussion:
		l.store.Dispatch(store.IncrementUnread(ev.ClassID))
		if ev.Discussion != nil && state.Discussions.Has(ev.ClassID) {
			l.store.Dispatch(store.AddDiscussion(*ev.Discussion, ev.ClassID))
		}
	case EventDiscussionRemoved:
		if state.Discussions.Has(ev.ClassID) {
			l.store.Dispatch(store.RemoveDiscussion(ev.ID, ev.ClassID))
		}
	case EventQuiz:
		if ev.Quiz != nil && state.Quizzes.Has(ev.ClassID) {
			l.store.Dispatch(store.AddQuiz(*ev.Quiz, ev.ClassID))
		}
	case EventQuizRemoved:
		if state.Quizzes.Has(ev.ClassID) {
			l.store.Dispatch(store.RemoveQuiz(ev.ID, ev.ClassID))
		}
	default:
		l.log.Debug("unknown notification", map[string]interface{}{"type": ev.Type})
	}
}
