// internal/geometry/geometry.go
//
// Board geometry rules for the trainer.
// Responsibilities:
//   - File/Rank/Square coordinate types for an 8x8 board.
//   - File parity (by zero-based index) and rank parity (by number).
//   - Square color, derived purely from the coordinates.
//   - Algebraic names ("c", "4", "c4") for display and parsing.
//
// Notes:
//   - The rules never fail. Out-of-range coordinates are a caller bug; use
//     Valid() or the Parse* helpers at the edges.

package geometry

import (
	"errors"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// File is a board column, 0 (a) through 7 (h).
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank is a board row, 1 through 8.
type Rank int8

// Files and Ranks list each domain in board order.
var (
	Files = [8]File{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}
	Ranks = [8]Rank{1, 2, 3, 4, 5, 6, 7, 8}
)

// Square is a (File, Rank) pair.
type Square struct {
	File File
	Rank Rank
}

var (
	ErrInvalidFile   = errors.New("invalid file")
	ErrInvalidRank   = errors.New("invalid rank")
	ErrInvalidSquare = errors.New("invalid square")
)

// Valid reports whether f is one of the eight files.
func (f File) Valid() bool { return f >= FileA && f <= FileH }

// Valid reports whether r is one of the eight ranks.
func (r Rank) Valid() bool { return r >= 1 && r <= 8 }

// Valid reports whether both coordinates are on the board.
func (sq Square) Valid() bool { return sq.File.Valid() && sq.Rank.Valid() }

func (f File) String() string {
	if !f.Valid() {
		return "?"
	}
	return chess.File(f).String()
}

func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return chess.Rank(r - 1).String()
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "??"
	}
	return chess.NewSquare(chess.File(sq.File), chess.Rank(sq.Rank-1)).String()
}

// FileParity is Even for a, c, e, g (even zero-based index) and Odd otherwise.
func FileParity(f File) Parity {
	if f%2 == 0 {
		return Even
	}
	return Odd
}

// RankParity is Odd when the rank number is odd.
func RankParity(r Rank) Parity {
	if r%2 == 1 {
		return Odd
	}
	return Even
}

// SquareColor is Dark when the file and rank share parity, counted from
// zero for both coordinates. a1 (0, 0) is dark.
func SquareColor(f File, r Rank) Color {
	if FileParity(f) == indexParity(int(r)-1) {
		return Dark
	}
	return Light
}

// Color is shorthand for SquareColor(sq.File, sq.Rank).
func (sq Square) Color() Color { return SquareColor(sq.File, sq.Rank) }

func indexParity(i int) Parity {
	if i%2 == 0 {
		return Even
	}
	return Odd
}

// ParseFile accepts a single file letter, case-insensitive.
func ParseFile(s string) (File, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Files {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, ErrInvalidFile
}

// ParseRank accepts "1".."8".
func ParseRank(s string) (Rank, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 8 {
		return 0, ErrInvalidRank
	}
	return Rank(n), nil
}

// ParseSquare accepts algebraic names like "c4" or "H8".
func ParseSquare(s string) (Square, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Square{}, ErrInvalidSquare
	}
	f, err := ParseFile(s[:1])
	if err != nil {
		return Square{}, ErrInvalidSquare
	}
	r, err := ParseRank(s[1:])
	if err != nil {
		return Square{}, ErrInvalidSquare
	}
	return Square{File: f, Rank: r}, nil
}

// MarshalText renders the file letter.
func (f File) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, ErrInvalidFile
	}
	return []byte(f.String()), nil
}

func (f *File) UnmarshalText(b []byte) error {
	v, err := ParseFile(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalText renders the algebraic name.
func (sq Square) MarshalText() ([]byte, error) {
	if !sq.Valid() {
		return nil, ErrInvalidSquare
	}
	return []byte(sq.String()), nil
}

func (sq *Square) UnmarshalText(b []byte) error {
	v, err := ParseSquare(string(b))
	if err != nil {
		return err
	}
	*sq = v
	return nil
}
