// Package keymap binds keyboard keys to trainer actions. The web page and
// the terminal drill both resolve keys here.
package keymap

import (
	"strings"

	"github.com/robalobadob/boardparity/internal/quiz"
)

// Action is something a key can do to a session.
type Action uint8

const (
	ToggleRunning Action = iota + 1
	NextQuestion
	AnswerLeft
	AnswerRight
)

func (a Action) String() string {
	switch a {
	case ToggleRunning:
		return "toggle"
	case NextQuestion:
		return "next"
	case AnswerLeft:
		return "left"
	case AnswerRight:
		return "right"
	}
	return "none"
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Key names follow KeyboardEvent.key, lower-cased.
var bindings = map[string]Action{
	" ":          ToggleRunning,
	"space":      ToggleRunning,
	"enter":      NextQuestion,
	"arrowleft":  AnswerLeft,
	"o":          AnswerLeft,
	"b":          AnswerLeft,
	"arrowright": AnswerRight,
	"e":          AnswerRight,
	"w":          AnswerRight,
}

// Lookup resolves a key name, case-insensitively.
func Lookup(key string) (Action, bool) {
	if key != " " {
		key = strings.ToLower(strings.TrimSpace(key))
	}
	a, ok := bindings[key]
	return a, ok
}

// Outcome reports what Apply did.
type Outcome struct {
	Action   Action
	Running  bool
	Question quiz.Question
	// Result is set only when an answer was scored.
	Result *quiz.Result
}

// Apply performs a on s. Answers while stopped are dropped by the session.
func Apply(s *quiz.Session, a Action) Outcome {
	out := Outcome{Action: a}
	switch a {
	case ToggleRunning:
		s.ToggleRunning()
	case NextQuestion:
		s.NextQuestion()
	case AnswerLeft, AnswerRight:
		side := quiz.Left
		if a == AnswerRight {
			side = quiz.Right
		}
		if res, ok := s.SubmitAnswer(side); ok {
			out.Result = &res
		}
	}
	out.Running = s.Running()
	out.Question = s.Question()
	return out
}
