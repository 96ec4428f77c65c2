package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-client/core"
	"github.com/trezcool/masomo-client/core/classroom"
)

func TestRollbarLogger(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		log       func(l *RollbarLogger)
		wantLines []string
		dontWant  string
	}{
		{
			name: "error with context",
			log: func(l *RollbarLogger) {
				l.Error("fetching quizzes", errors.New("boom"), classroom.Profile{Username: "awe"})
			},
			wantLines: []string{"fetching quizzes", "boom", "awe"},
		},
		{
			name:     "debug is muted",
			log:      func(l *RollbarLogger) { l.Debug("action token/set") },
			dontWant: "action token/set",
		},
		{
			name:      "debug in debug mode",
			debug:     true,
			log:       func(l *RollbarLogger) { l.Debug("action token/set") },
			wantLines: []string{"action token/set"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			l := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST", Debug: tt.debug})
			tt.log(l)

			out := buf.String()
			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("output = %q; want it to contain %q", out, want)
				}
			}
			if tt.dontWant != "" && strings.Contains(out, tt.dontWant) {
				t.Errorf("output = %q; should not contain %q", out, tt.dontWant)
			}
		})
	}
}
