package geometry

import "errors"

// Parity is the odd/even class of a file index or a rank number.
type Parity uint8

const (
	Even Parity = iota
	Odd
)

// Color is the shade of a square.
type Color uint8

const (
	Light Color = iota
	Dark
)

func (p Parity) String() string {
	if p == Odd {
		return "odd"
	}
	return "even"
}

func (c Color) String() string {
	if c == Dark {
		return "dark"
	}
	return "light"
}

func (p Parity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Parity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "even":
		*p = Even
	case "odd":
		*p = Odd
	default:
		return errors.New("invalid parity")
	}
	return nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "light":
		*c = Light
	case "dark":
		*c = Dark
	default:
		return errors.New("invalid color")
	}
	return nil
}

// Facts bundles everything the rules say about one square.
type Facts struct {
	Square     Square `json:"square"`
	File       File   `json:"file"`
	FileParity Parity `json:"fileParity"`
	Rank       Rank   `json:"rank"`
	RankParity Parity `json:"rankParity"`
	Color      Color  `json:"color"`
}

// Describe computes Facts for sq. sq must be valid.
func Describe(sq Square) Facts {
	return Facts{
		Square:     sq,
		File:       sq.File,
		FileParity: FileParity(sq.File),
		Rank:       sq.Rank,
		RankParity: RankParity(sq.Rank),
		Color:      SquareColor(sq.File, sq.Rank),
	}
}
