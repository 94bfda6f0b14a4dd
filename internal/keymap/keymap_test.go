package keymap

import (
	"testing"

	"github.com/robalobadob/boardparity/internal/quiz"
)

func TestLookup(t *testing.T) {
	cases := map[string]Action{
		" ":          ToggleRunning,
		"Enter":      NextQuestion,
		"ArrowLeft":  AnswerLeft,
		"O":          AnswerLeft,
		"b":          AnswerLeft,
		"ArrowRight": AnswerRight,
		"E":          AnswerRight,
		"w":          AnswerRight,
	}
	for key, want := range cases {
		got, ok := Lookup(key)
		if !ok || got != want {
			t.Fatalf("Lookup(%q) = %s, %v; want %s", key, got, ok, want)
		}
	}
	if _, ok := Lookup("x"); ok {
		t.Fatal("x should be unbound")
	}
}

func TestApplyGatesAnswers(t *testing.T) {
	s := quiz.NewSeeded(1)
	out := Apply(s, AnswerLeft)
	if out.Result != nil || s.Total() != 0 {
		t.Fatal("answer scored while stopped")
	}

	out = Apply(s, NextQuestion)
	if out.Question != s.Question() || s.Total() != 0 {
		t.Fatalf("next question: %+v, total %d", out, s.Total())
	}

	out = Apply(s, ToggleRunning)
	if !out.Running {
		t.Fatal("toggle did not start the session")
	}
	out = Apply(s, AnswerRight)
	if out.Result == nil || s.Total() != 1 {
		t.Fatalf("answer not scored: %+v", out)
	}
	if out.Question != s.Question() {
		t.Fatal("outcome does not carry the next question")
	}
}
