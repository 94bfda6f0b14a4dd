package labels

import (
	"testing"

	"github.com/robalobadob/boardparity/internal/geometry"
	"github.com/robalobadob/boardparity/internal/quiz"
)

func TestNegotiate(t *testing.T) {
	cases := []struct {
		accept, fallback, want string
	}{
		{"", "", "en"},
		{"ru-RU,ru;q=0.9,en;q=0.8", "en", "ru"},
		{"en-GB", "ru", "en"},
		{"de-DE", "ru", "ru"},
		{"fr", "", "en"},
		{"", "ru", "ru"},
	}
	for _, tc := range cases {
		if got := Negotiate(tc.accept, tc.fallback).Lang; got != tc.want {
			t.Fatalf("Negotiate(%q, %q) = %s, want %s", tc.accept, tc.fallback, got, tc.want)
		}
	}
}

func TestExplain(t *testing.T) {
	en := English()
	cases := []struct {
		q    quiz.Question
		want string
	}{
		{quiz.Question{Mode: quiz.ByFile, File: geometry.FileC}, "c → even"},
		{quiz.Question{Mode: quiz.ByRank, Rank: 7}, "7 → odd"},
		{quiz.Question{Mode: quiz.BySquare, File: geometry.FileA, Rank: 1}, "a(even) + 1(odd) → different → dark"},
		{quiz.Question{Mode: quiz.BySquare, File: geometry.FileC, Rank: 4}, "c(even) + 4(even) → same → light"},
	}
	for _, tc := range cases {
		if got := en.Explain(quiz.Explain(tc.q)); got != tc.want {
			t.Fatalf("Explain(%s) = %q, want %q", tc.q.Prompt(), got, tc.want)
		}
	}
}

func TestFeedbackAndStatus(t *testing.T) {
	ru := Lookup("ru")
	r := quiz.Evaluate(quiz.Question{Mode: quiz.ByRank, Rank: 2}, quiz.Right)
	if got := ru.Feedback(r); got != "Правильно! 2 → чётная" {
		t.Fatalf("Feedback = %q", got)
	}
	if ru.Status(false) != "Пауза" || ru.Button(true) != "Стоп" {
		t.Fatal("unexpected status labels")
	}
	if got := English().Tally(2, 3, 67); got != "Correct 2 / 3 • 67%" {
		t.Fatalf("Tally = %q", got)
	}
	if got := English().Choice(quiz.BySquare, quiz.Left); got != "dark (← / B)" {
		t.Fatalf("Choice = %q", got)
	}
}
