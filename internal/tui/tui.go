// internal/tui/tui.go
//
// Terminal drill: the same quiz as the web page, drawn with tcell.
//
// Layout (rank 8 at the top, like the page's mini board):
//
//	8 ▒▒  ▒▒  ▒▒  ▒▒     File • odd or even?
//	...                   c
//	1   ▒▒  ▒▒  ▒▒  ▒▒   ← odd (← / O)   even (→ / E) →
//	  a b c d e f g h    Correct! b → odd
//	                     Correct 3 / 4 • 75%
//
// Keys come from internal/keymap, plus 1/2/3 for modes and Esc to quit.

package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boardparity/internal/geometry"
	"github.com/robalobadob/boardparity/internal/keymap"
	"github.com/robalobadob/boardparity/internal/labels"
	"github.com/robalobadob/boardparity/internal/quiz"
)

// FlashDuration is how long mode switches and start/stop highlight the badge.
const FlashDuration = 200 * time.Millisecond

// flashDone and quit are delivered through tcell interrupt events.
type (
	flashDone struct{ gen int }
	quit      struct{}
)

var (
	styleBase   = tcell.StyleDefault
	styleDark   = tcell.StyleDefault.Background(tcell.NewRGBColor(0x76, 0x96, 0x56))
	styleLight  = tcell.StyleDefault.Background(tcell.NewRGBColor(0xee, 0xee, 0xd2))
	styleMatte  = tcell.StyleDefault.Background(tcell.ColorGray)
	styleHi     = tcell.StyleDefault.Background(tcell.ColorGold)
	styleBadge  = tcell.StyleDefault.Bold(true)
	styleFlash  = tcell.StyleDefault.Bold(true).Reverse(true)
	styleOK     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBad    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDim    = tcell.StyleDefault.Dim(true)
	stylePrompt = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
)

// App drives one session on one screen.
type App struct {
	screen  tcell.Screen
	session *quiz.Session
	text    labels.Catalog

	feedback      string
	feedbackStyle tcell.Style

	flash    bool
	flashGen int
	flashFor time.Duration
}

// New binds a session to an initialized screen.
func New(screen tcell.Screen, session *quiz.Session, text labels.Catalog) *App {
	return &App{
		screen:        screen,
		session:       session,
		text:          text,
		feedbackStyle: styleBase,
		flashFor:      FlashDuration,
	}
}

// Run draws and handles events until Esc/Ctrl-C or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(quit{}))
	})
	defer stop()

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		if a.Handle(ev) {
			return ctx.Err()
		}
		a.Draw()
	}
}

// Handle applies one event and reports whether the drill should end.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		switch d := ev.Data().(type) {
		case quit:
			return true
		case flashDone:
			if d.gen == a.flashGen {
				a.flash = false
			}
		}
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case '1', '2', '3':
			a.setMode(quiz.Modes[ev.Rune()-'1'])
			return false
		}
	}

	name, ok := keyName(ev)
	if !ok {
		return false
	}
	action, ok := keymap.Lookup(name)
	if !ok {
		return false
	}
	out := keymap.Apply(a.session, action)
	switch action {
	case keymap.ToggleRunning:
		a.feedback, a.feedbackStyle = a.text.Status(out.Running), styleBase
		a.startFlash()
	case keymap.AnswerLeft, keymap.AnswerRight:
		if out.Result != nil {
			a.feedback = a.text.Feedback(*out.Result)
			a.feedbackStyle = styleBad
			if out.Result.Correct {
				a.feedbackStyle = styleOK
			}
		}
	}
	log.Debug().Str("key", name).Str("action", action.String()).Bool("running", out.Running).Msg("drill key")
	return false
}

func (a *App) setMode(m quiz.Mode) {
	a.session.SetMode(m)
	a.feedback = ""
	a.startFlash()
}

// startFlash highlights the badge until an interrupt clears it. Only the
// newest flash clears it, so rapid toggles don't cut each other short.
func (a *App) startFlash() {
	if a.flashFor <= 0 {
		return
	}
	a.flash = true
	a.flashGen++
	gen := a.flashGen
	time.AfterFunc(a.flashFor, func() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(flashDone{gen: gen}))
	})
}

// keyName maps a tcell key to the KeyboardEvent.key names keymap expects.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "arrowleft", true
	case tcell.KeyRight:
		return "arrowright", true
	case tcell.KeyEnter:
		return "enter", true
	case tcell.KeyRune:
		return string(ev.Rune()), true
	}
	return "", false
}

// Draw repaints the whole screen.
func (a *App) Draw() {
	a.screen.Clear()
	a.drawBoard(0, 0)

	x := 22
	mode := a.session.Mode()
	badge := styleBadge
	if a.flash {
		badge = styleFlash
	}
	a.print(x, 0, badge, a.text.Badge(mode))
	a.print(x, 2, stylePrompt, a.session.Question().Prompt())
	a.print(x, 4, styleBase, "← "+a.text.Choice(mode, quiz.Left))
	a.print(x+20, 4, styleBase, a.text.Choice(mode, quiz.Right)+" →")
	a.print(x, 6, a.feedbackStyle, a.feedback)
	a.print(x, 8, styleBase, a.text.Tally(a.session.Correct(), a.session.Total(), a.session.Accuracy()))
	a.print(x, 10, styleDim, "[Space] "+a.text.Button(a.session.Running())+"   [Enter] →   [1-3] "+
		a.text.Tabs[0]+"/"+a.text.Tabs[1]+"/"+a.text.Tabs[2]+"   [Esc]")
	a.screen.Show()
}

// drawBoard paints the 8x8 board with rank labels on the left and file
// labels underneath. Square mode hides the colors.
func (a *App) drawBoard(x0, y0 int) {
	hi := a.session.Question().Highlight
	matte := a.session.Mode() == quiz.BySquare
	for row, r := 0, geometry.Rank(8); r >= 1; row, r = row+1, r-1 {
		a.print(x0, y0+row, styleDim, r.String())
		for col, f := range geometry.Files {
			st := styleLight
			switch {
			case f == hi.File && r == hi.Rank:
				st = styleHi
			case matte:
				st = styleMatte
			case geometry.SquareColor(f, r) == geometry.Dark:
				st = styleDark
			}
			a.print(x0+2+col*2, y0+row, st, "  ")
		}
	}
	for col, f := range geometry.Files {
		a.print(x0+2+col*2, y0+8, styleDim, f.String())
	}
}

func (a *App) print(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
