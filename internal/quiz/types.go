// internal/quiz/types.go
//
// Core type definitions for the quiz engine.
// Defines:
//   - Mode: which quiz is active (file parity, rank parity, square color).
//   - Side: which of the two answer buttons was pressed.
//   - Question, Explanation, Result: the values a session hands back.
//   - Snapshot: a plain copy of a session, for stores.

package quiz

import (
	"errors"
	"fmt"

	"github.com/robalobadob/boardparity/internal/geometry"
)

// Mode selects the active quiz.
type Mode uint8

const (
	ByFile Mode = iota
	ByRank
	BySquare
)

// Side is an answer button. Left means odd (file/rank) or dark (square);
// Right means even or light.
type Side uint8

const (
	Left Side = iota
	Right
)

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrUnknownSide = errors.New("unknown side")
)

var modeNames = [...]string{ByFile: "file", ByRank: "rank", BySquare: "square"}

// Modes lists every mode in tab order.
var Modes = [3]Mode{ByFile, ByRank, BySquare}

func (m Mode) Valid() bool { return int(m) < len(modeNames) }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return modeNames[m]
}

// ParseMode accepts "file", "rank" or "square".
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, ErrUnknownMode
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, ErrUnknownMode
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (s Side) Valid() bool { return s == Left || s == Right }

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", s)
	}
}

// ParseSide accepts "left" or "right".
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, ErrUnknownSide
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrUnknownSide
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Question is one prompt. Only the coordinates of its Mode are meaningful:
// File for ByFile, Rank for ByRank, both for BySquare. Highlight is the
// square a display board should mark.
type Question struct {
	Mode      Mode            `json:"mode"`
	File      geometry.File   `json:"file"`
	Rank      geometry.Rank   `json:"rank"`
	Highlight geometry.Square `json:"highlight"`
}

// Prompt is the text asked: "c", "4" or "c4".
func (q Question) Prompt() string {
	switch q.Mode {
	case ByFile:
		return q.File.String()
	case ByRank:
		return q.Rank.String()
	default:
		return q.Square().String()
	}
}

// Square is the (File, Rank) pair of a BySquare question.
func (q Question) Square() geometry.Square {
	return geometry.Square{File: q.File, Rank: q.Rank}
}

// Explanation holds the facts behind a verdict. File facts are set for
// ByFile and BySquare, rank facts for ByRank and BySquare, Color for
// BySquare only.
type Explanation struct {
	Mode       Mode            `json:"mode"`
	File       geometry.File   `json:"file"`
	FileParity geometry.Parity `json:"fileParity"`
	Rank       geometry.Rank   `json:"rank"`
	RankParity geometry.Parity `json:"rankParity"`
	Color      geometry.Color  `json:"color"`
}

// SameParity reports whether the file and rank parities match. Only
// meaningful for BySquare.
func (e Explanation) SameParity() bool { return e.FileParity == e.RankParity }

// Result is the verdict for one answer.
type Result struct {
	Correct     bool        `json:"correct"`
	Side        Side        `json:"side"`
	Question    Question    `json:"question"`
	Explanation Explanation `json:"explanation"`
}

// Snapshot is a plain copy of a session's state.
type Snapshot struct {
	Mode     Mode     `json:"mode"`
	Running  bool     `json:"running"`
	Question Question `json:"question"`
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
	Last     *Result  `json:"last,omitempty"`
}

// Accuracy is the rounded percentage of correct answers.
func (s Snapshot) Accuracy() int { return accuracy(s.Correct, s.Total) }
