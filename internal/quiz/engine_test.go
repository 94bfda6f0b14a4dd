package quiz

import (
	"encoding/json"
	"testing"

	"github.com/robalobadob/boardparity/internal/geometry"
)

// rightSide returns the answer that scores q as correct.
func rightSide(q Question) Side {
	if Evaluate(q, Left).Correct {
		return Left
	}
	return Right
}

func wrongSide(q Question) Side {
	if rightSide(q) == Left {
		return Right
	}
	return Left
}

func TestNewSession(t *testing.T) {
	s := NewSeeded(1)
	if s.Mode() != ByFile || s.Running() || s.Total() != 0 || s.Correct() != 0 {
		t.Fatalf("unexpected initial state: %+v", s.Snapshot())
	}
	if q := s.Question(); q.Mode != ByFile || !q.File.Valid() || !q.Highlight.Valid() {
		t.Fatalf("bad first question: %+v", q)
	}
}

func TestSetModeResetsScoreKeepsRunning(t *testing.T) {
	s := NewSeeded(2)
	s.ToggleRunning()
	for i := 0; i < 3; i++ {
		s.SubmitAnswer(rightSide(s.Question()))
	}
	if s.Total() != 3 || s.Last() == nil {
		t.Fatalf("expected 3 answers and a verdict, got %+v", s.Snapshot())
	}
	for _, m := range Modes {
		s.SetMode(m)
		if s.Correct() != 0 || s.Total() != 0 {
			t.Fatalf("SetMode(%s) kept score %d/%d", m, s.Correct(), s.Total())
		}
		if !s.Running() {
			t.Fatalf("SetMode(%s) stopped the session", m)
		}
		if s.Last() != nil {
			t.Fatalf("SetMode(%s) kept the last verdict", m)
		}
		if s.Question().Mode != m {
			t.Fatalf("question mode = %s, want %s", s.Question().Mode, m)
		}
	}
}

func TestSubmitWhileStoppedIsNoop(t *testing.T) {
	s := NewSeeded(3)
	before := s.Snapshot()
	if _, ok := s.SubmitAnswer(Left); ok {
		t.Fatal("answer accepted while stopped")
	}
	if _, ok := s.SubmitAnswer(Right); ok {
		t.Fatal("answer accepted while stopped")
	}
	after := s.Snapshot()
	if before.Question != after.Question || after.Total != 0 || after.Correct != 0 {
		t.Fatalf("state changed: before %+v after %+v", before, after)
	}
}

func TestNextQuestionWhileStopped(t *testing.T) {
	s := NewSeeded(4)
	s.SetMode(BySquare)
	seen := map[Question]bool{}
	for i := 0; i < 20; i++ {
		q := s.NextQuestion()
		if q != s.Question() {
			t.Fatal("NextQuestion result differs from Question()")
		}
		if q.Highlight != q.Square() {
			t.Fatalf("square question highlights %s, asks %s", q.Highlight, q.Square())
		}
		seen[q] = true
	}
	if len(seen) < 2 {
		t.Fatal("questions never changed")
	}
}

func TestHighlightFollowsQuestion(t *testing.T) {
	s := NewSeeded(5)
	for i := 0; i < 50; i++ {
		if q := s.NextQuestion(); q.Highlight.File != q.File {
			t.Fatalf("file question %s highlights %s", q.Prompt(), q.Highlight)
		}
	}
	s.SetMode(ByRank)
	for i := 0; i < 50; i++ {
		if q := s.NextQuestion(); q.Highlight.Rank != q.Rank {
			t.Fatalf("rank question %s highlights %s", q.Prompt(), q.Highlight)
		}
	}
}

func TestSeededSequenceIsDeterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	a.SetMode(BySquare)
	b.SetMode(BySquare)
	for i := 0; i < 32; i++ {
		if qa, qb := a.NextQuestion(), b.NextQuestion(); qa != qb {
			t.Fatalf("step %d: %s != %s", i, qa.Prompt(), qb.Prompt())
		}
	}
}

func TestQuestionsCoverDomain(t *testing.T) {
	s := NewSeeded(6)
	s.SetMode(BySquare)
	seen := map[geometry.Square]bool{}
	for i := 0; i < 2000; i++ {
		seen[s.NextQuestion().Square()] = true
	}
	if len(seen) != 64 {
		t.Fatalf("saw %d squares in 2000 draws, want 64", len(seen))
	}
}

func TestSubmitCountsEveryAnswer(t *testing.T) {
	s := NewSeeded(7)
	s.ToggleRunning()
	prev := s.Question()
	res, ok := s.SubmitAnswer(wrongSide(prev))
	if !ok || res.Correct || s.Total() != 1 || s.Correct() != 0 {
		t.Fatalf("wrong answer: ok=%v res=%+v total=%d correct=%d", ok, res, s.Total(), s.Correct())
	}
	if res.Question != prev {
		t.Fatal("verdict is not about the question that was asked")
	}
	res, ok = s.SubmitAnswer(rightSide(s.Question()))
	if !ok || !res.Correct || s.Total() != 2 || s.Correct() != 1 {
		t.Fatalf("right answer: ok=%v res=%+v total=%d correct=%d", ok, res, s.Total(), s.Correct())
	}
}

func TestTenAnswersSixCorrect(t *testing.T) {
	s := NewSeeded(8)
	s.SetMode(ByRank)
	s.ToggleRunning()
	for i := 0; i < 10; i++ {
		side := wrongSide(s.Question())
		if i < 6 {
			side = rightSide(s.Question())
		}
		s.SubmitAnswer(side)
	}
	if s.Total() != 10 || s.Correct() != 6 || s.Accuracy() != 60 {
		t.Fatalf("got %d/%d (%d%%), want 6/10 (60%%)", s.Correct(), s.Total(), s.Accuracy())
	}
}

func TestEvaluateScenarios(t *testing.T) {
	cases := []struct {
		name string
		q    Question
		side Side
		want bool
	}{
		{"file c is even, left wrong", Question{Mode: ByFile, File: geometry.FileC}, Left, false},
		{"file c is even, right right", Question{Mode: ByFile, File: geometry.FileC}, Right, true},
		{"file b is odd, left right", Question{Mode: ByFile, File: geometry.FileB}, Left, true},
		{"rank 3 is odd, left right", Question{Mode: ByRank, Rank: 3}, Left, true},
		{"rank 8 is even, left wrong", Question{Mode: ByRank, Rank: 8}, Left, false},
		{"a1 is dark, left right", Question{Mode: BySquare, File: geometry.FileA, Rank: 1}, Left, true},
		{"a1 is dark, right wrong", Question{Mode: BySquare, File: geometry.FileA, Rank: 1}, Right, false},
		{"e4 is light, right right", Question{Mode: BySquare, File: geometry.FileE, Rank: 4}, Right, true},
	}
	for _, tc := range cases {
		if got := Evaluate(tc.q, tc.side).Correct; got != tc.want {
			t.Fatalf("%s: got %v", tc.name, got)
		}
	}
}

func TestExplainSquare(t *testing.T) {
	e := Explain(Question{Mode: BySquare, File: geometry.FileA, Rank: 1})
	if e.File != geometry.FileA || e.Rank != 1 || e.Color != geometry.Dark {
		t.Fatalf("unexpected explanation %+v", e)
	}
	if e.FileParity != geometry.Even || e.RankParity != geometry.Odd || e.SameParity() {
		t.Fatalf("unexpected parities %+v", e)
	}
}

func TestAccuracyRounding(t *testing.T) {
	cases := []struct{ correct, total, want int }{
		{0, 0, 0},
		{3, 4, 75},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13},
		{6, 10, 60},
		{5, 5, 100},
	}
	for _, tc := range cases {
		if got := accuracy(tc.correct, tc.total); got != tc.want {
			t.Fatalf("accuracy(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestInvalidInputsPanic(t *testing.T) {
	s := NewSeeded(9)
	mustPanic(t, func() { s.SetMode(Mode(7)) })
	mustPanic(t, func() { s.SubmitAnswer(Side(5)) })
}

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
}

func TestParse(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%s) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseMode("diagonal"); err != ErrUnknownMode {
		t.Fatalf("ParseMode(diagonal) err = %v", err)
	}
	if _, err := ParseSide("up"); err != ErrUnknownSide {
		t.Fatalf("ParseSide(up) err = %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewSeeded(10)
	s.SetMode(BySquare)
	s.ToggleRunning()
	s.SubmitAnswer(Left)
	s.SubmitAnswer(Right)

	b, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	r, err := Restore(snap, nil)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if r.Mode() != BySquare || !r.Running() || r.Total() != 2 || r.Question() != s.Question() {
		t.Fatalf("restored %+v, want %+v", r.Snapshot(), s.Snapshot())
	}
	if *r.Last() != *s.Last() {
		t.Fatalf("last verdict %+v, want %+v", r.Last(), s.Last())
	}
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	snap := NewSeeded(11).Snapshot()
	snap.Correct = 3
	if _, err := Restore(snap, nil); err == nil {
		t.Fatal("restored a snapshot with more correct than total")
	}
}
