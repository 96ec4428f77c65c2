package store

import (
	"encoding/json"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/masomo-client/core"
)

// LoggingMiddleware logs every dispatched action. With verbose set, it also logs
// a unified diff of the state tree before and after the action.
func LoggingMiddleware(log core.Logger, verbose bool) Middleware {
	return func(getState GetStateFunc, next DispatchFunc) DispatchFunc {
		return func(a Action) {
			if !verbose {
				next(a)
				log.Debug("action " + a.Type())
				return
			}

			prev := getState()
			next(a)
			diff, err := StateDiff(prev, getState())
			if err != nil {
				log.Warn("diffing state", err)
				return
			}
			log.Debug("action "+a.Type(), map[string]interface{}{"action": redactAction(a), "diff": diff})
		}
	}
}

// StateDiff returns a unified diff of the JSON forms of prev and next, with tokens masked.
// It is empty when the action changed nothing.
func StateDiff(prev, next State) (string, error) {
	a, err := json.MarshalIndent(redactState(prev), "", "  ")
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(redactState(next), "", "  ")
	if err != nil {
		return "", err
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: "prev",
		ToFile:   "next",
		Context:  1,
	})
}

const redacted = "[redacted]"

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

// redactState masks the auth and push tokens. A changed token still shows in a diff
// because an empty token stays empty.
func redactState(s State) State {
	s.Token = mask(s.Token)
	s.Push.Token = mask(s.Push.Token)
	return s
}

func redactAction(a Action) Action {
	switch a := a.(type) {
	case TokenSetAction:
		a.Token = mask(a.Token)
		return a
	case PushTokenRegisteredAction:
		a.Token = mask(a.Token)
		return a
	}
	return a
}
