// internal/labels/labels.go
//
// Text shown around the quiz: badges, answer buttons, prompts and the short
// explanation line under the board. English and Russian catalogs; the
// language is negotiated from Accept-Language or a configured default.

package labels

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/robalobadob/boardparity/internal/geometry"
	"github.com/robalobadob/boardparity/internal/quiz"
)

// Catalog is one language's strings.
type Catalog struct {
	Lang      string       `json:"lang"`
	Title     string       `json:"title"`
	Badges    [3]string    `json:"badges"`  // indexed by quiz.Mode
	Choices   [3][2]string `json:"choices"` // [mode][left, right]
	Tabs      [3]string    `json:"tabs"`
	Start     string       `json:"start"`
	Stop      string       `json:"stop"`
	Ready     string       `json:"ready"`
	Paused    string       `json:"paused"`
	Correct   string       `json:"correct"`
	Incorrect string       `json:"incorrect"`
	Score     string       `json:"score"`
	Odd       string       `json:"odd"`
	Even      string       `json:"even"`
	Dark      string       `json:"dark"`
	Light     string       `json:"light"`
	Same      string       `json:"same"`
	Different string       `json:"different"`
}

var english = Catalog{
	Lang:  "en",
	Title: "Board parity trainer",
	Badges: [3]string{
		"File • odd or even?",
		"Rank • odd or even?",
		"Square • dark or light?",
	},
	Choices: [3][2]string{
		{"odd (← / O)", "even (→ / E)"},
		{"odd (← / O)", "even (→ / E)"},
		{"dark (← / B)", "light (→ / W)"},
	},
	Tabs:      [3]string{"Files", "Ranks", "Squares"},
	Start:     "Start",
	Stop:      "Stop",
	Ready:     "Go! Answer with the buttons or the keys.",
	Paused:    "Paused",
	Correct:   "Correct!",
	Incorrect: "Oops!",
	Score:     "Correct %d / %d • %d%%",
	Odd:       "odd",
	Even:      "even",
	Dark:      "dark",
	Light:     "light",
	Same:      "same",
	Different: "different",
}

var russian = Catalog{
	Lang:  "ru",
	Title: "Тренажёр чётности доски",
	Badges: [3]string{
		"Вертикаль • нечётная или чётная?",
		"Горизонталь • нечётная или чётная?",
		"Клетка • чёрная или белая?",
	},
	Choices: [3][2]string{
		{"нечётная (← / O)", "чётная (→ / E)"},
		{"нечётная (← / O)", "чётная (→ / E)"},
		{"чёрная (← / B)", "белая (→ / W)"},
	},
	Tabs:      [3]string{"Вертикали", "Горизонтали", "Клетки"},
	Start:     "Старт",
	Stop:      "Стоп",
	Ready:     "Поехали! Отвечай, используя кнопки или клавиши.",
	Paused:    "Пауза",
	Correct:   "Правильно!",
	Incorrect: "Упс!",
	Score:     "Верно %d / %d • %d%%",
	Odd:       "нечётная",
	Even:      "чётная",
	Dark:      "чёрная",
	Light:     "белая",
	Same:      "одинаковые",
	Different: "разные",
}

var (
	supported = []language.Tag{language.English, language.Russian}
	catalogs  = []Catalog{english, russian}
	matcher   = language.NewMatcher(supported)
)

// English is the fallback catalog.
func English() Catalog { return english }

// Negotiate picks a catalog from an Accept-Language header, falling back to
// the fallback tag, then English.
func Negotiate(acceptLanguage, fallback string) Catalog {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	if t, err := language.Parse(fallback); err == nil {
		tags = append(tags, t)
	}
	if len(tags) == 0 {
		return english
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return english
	}
	return catalogs[idx]
}

// Lookup returns the catalog for a language tag such as "ru" or "en-GB".
func Lookup(tag string) Catalog { return Negotiate("", tag) }

// Badge is the header line for a mode.
func (c Catalog) Badge(m quiz.Mode) string { return c.Badges[m] }

// Choice is the label of one answer button in mode m.
func (c Catalog) Choice(m quiz.Mode, side quiz.Side) string { return c.Choices[m][side] }

// Status is the prompt shown after start/stop.
func (c Catalog) Status(running bool) string {
	if running {
		return c.Ready
	}
	return c.Paused
}

// Button is the start/stop button label for the current state.
func (c Catalog) Button(running bool) string {
	if running {
		return c.Stop
	}
	return c.Start
}

// Tally formats the score line.
func (c Catalog) Tally(correct, total, accuracy int) string {
	return fmt.Sprintf(c.Score, correct, total, accuracy)
}

func (c Catalog) parity(p geometry.Parity) string {
	if p == geometry.Odd {
		return c.Odd
	}
	return c.Even
}

func (c Catalog) color(col geometry.Color) string {
	if col == geometry.Dark {
		return c.Dark
	}
	return c.Light
}

// Explain renders an explanation as the arrow line:
//
//	c → even
//	4 → even
//	c(even) + 4(even) → same → light
func (c Catalog) Explain(e quiz.Explanation) string {
	switch e.Mode {
	case quiz.ByFile:
		return fmt.Sprintf("%s → %s", e.File, c.parity(e.FileParity))
	case quiz.ByRank:
		return fmt.Sprintf("%s → %s", e.Rank, c.parity(e.RankParity))
	}
	rel := c.Different
	if e.SameParity() {
		rel = c.Same
	}
	return fmt.Sprintf("%s(%s) + %s(%s) → %s → %s",
		e.File, c.parity(e.FileParity), e.Rank, c.parity(e.RankParity), rel, c.color(e.Color))
}

// Feedback is the full line shown after an answer.
func (c Catalog) Feedback(r quiz.Result) string {
	prefix := c.Incorrect
	if r.Correct {
		prefix = c.Correct
	}
	return prefix + " " + c.Explain(r.Explanation)
}
