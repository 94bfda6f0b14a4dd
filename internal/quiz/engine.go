// internal/quiz/engine.go
//
// Quiz engine for a single trainer session.
// Responsibilities:
//   - Hold session state: mode, running flag, current question, counters.
//   - Generate questions from an injected random source.
//   - Score answers against the geometry rules and keep the tally.
//
// Notes:
//   - A Session is not safe for concurrent use. Callers that share one
//     (the HTTP store) serialize access themselves.
//   - Invalid Mode/Side values panic: they can only come from a caller that
//     skipped ParseMode/ParseSide.

package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/boardparity/internal/geometry"
)

// Rand is the random source a session draws questions from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Session is one trainer session.
type Session struct {
	rng      Rand
	mode     Mode
	running  bool
	question Question
	correct  int
	total    int
	last     *Result
}

// New starts a stopped ByFile session with its first question.
// A nil rng gets a randomly seeded PCG.
func New(rng Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Session{rng: rng}
	s.SetMode(ByFile)
	return s
}

// NewPCG returns the generator sessions use for a given seed. Stores keep
// it so they can persist and resume the sequence.
func NewPCG(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// NewSeeded is New with a deterministic source.
func NewSeeded(seed uint64) *Session {
	return New(rand.New(NewPCG(seed)))
}

func (s *Session) Mode() Mode         { return s.mode }
func (s *Session) Running() bool      { return s.running }
func (s *Session) Question() Question { return s.question }
func (s *Session) Correct() int       { return s.correct }
func (s *Session) Total() int         { return s.total }

// Last is the most recent verdict, or nil after a mode change.
func (s *Session) Last() *Result {
	if s.last == nil {
		return nil
	}
	r := *s.last
	return &r
}

// SetMode switches quiz, zeroes the score, drops the last verdict and asks
// a new question. The running flag is kept.
func (s *Session) SetMode(m Mode) {
	if !m.Valid() {
		panic(fmt.Sprintf("quiz: invalid mode %d", m))
	}
	s.mode = m
	s.correct, s.total = 0, 0
	s.last = nil
	s.NextQuestion()
}

// ToggleRunning flips the running flag and returns the new value.
func (s *Session) ToggleRunning() bool {
	s.running = !s.running
	return s.running
}

// NextQuestion replaces the current question. Allowed while stopped.
func (s *Session) NextQuestion() Question {
	q := Question{Mode: s.mode}
	switch s.mode {
	case ByFile:
		q.File = s.pickFile()
		q.Highlight = geometry.Square{File: q.File, Rank: s.pickRank()}
	case ByRank:
		q.Rank = s.pickRank()
		q.Highlight = geometry.Square{File: s.pickFile(), Rank: q.Rank}
	default:
		q.File = s.pickFile()
		q.Rank = s.pickRank()
		q.Highlight = q.Square()
	}
	s.question = q
	return q
}

// SubmitAnswer scores side against the current question. While stopped it
// does nothing and returns ok=false. Otherwise the tally is updated and the
// next question is asked, whatever the verdict.
func (s *Session) SubmitAnswer(side Side) (res Result, ok bool) {
	if !side.Valid() {
		panic(fmt.Sprintf("quiz: invalid side %d", side))
	}
	if !s.running {
		return Result{}, false
	}
	res = Evaluate(s.question, side)
	s.total++
	if res.Correct {
		s.correct++
	}
	s.last = &res
	s.NextQuestion()
	return res, true
}

// Accuracy is round(100 * correct / total), or 0 before any answer.
func (s *Session) Accuracy() int { return accuracy(s.correct, s.total) }

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Mode:     s.mode,
		Running:  s.running,
		Question: s.question,
		Correct:  s.correct,
		Total:    s.total,
		Last:     s.Last(),
	}
}

var errBadSnapshot = errors.New("quiz: bad snapshot")

// Restore rebuilds a session from a snapshot. A nil rng behaves as in New.
func Restore(snap Snapshot, rng Rand) (*Session, error) {
	if !snap.Mode.Valid() || snap.Question.Mode != snap.Mode || !snap.Question.Highlight.Valid() {
		return nil, errBadSnapshot
	}
	if snap.Total < 0 || snap.Correct < 0 || snap.Correct > snap.Total {
		return nil, errBadSnapshot
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := &Session{
		rng:      rng,
		mode:     snap.Mode,
		running:  snap.Running,
		question: snap.Question,
		correct:  snap.Correct,
		total:    snap.Total,
	}
	if snap.Last != nil {
		r := *snap.Last
		s.last = &r
	}
	return s, nil
}

// Evaluate scores side against q without touching any session.
func Evaluate(q Question, side Side) Result {
	e := Explain(q)
	var correct bool
	switch q.Mode {
	case ByFile:
		correct = (side == Left) == (e.FileParity == geometry.Odd)
	case ByRank:
		correct = (side == Left) == (e.RankParity == geometry.Odd)
	default:
		correct = (side == Left) == (e.Color == geometry.Dark)
	}
	return Result{Correct: correct, Side: side, Question: q, Explanation: e}
}

// Explain collects the facts that decide q.
func Explain(q Question) Explanation {
	e := Explanation{Mode: q.Mode}
	switch q.Mode {
	case ByFile:
		e.File = q.File
		e.FileParity = geometry.FileParity(q.File)
	case ByRank:
		e.Rank = q.Rank
		e.RankParity = geometry.RankParity(q.Rank)
	default:
		e.File, e.Rank = q.File, q.Rank
		e.FileParity = geometry.FileParity(q.File)
		e.RankParity = geometry.RankParity(q.Rank)
		e.Color = geometry.SquareColor(q.File, q.Rank)
	}
	return e
}

func (s *Session) pickFile() geometry.File { return geometry.Files[s.rng.IntN(len(geometry.Files))] }
func (s *Session) pickRank() geometry.Rank { return geometry.Ranks[s.rng.IntN(len(geometry.Ranks))] }

// accuracy rounds half up, matching Math.round on the page.
func accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}
