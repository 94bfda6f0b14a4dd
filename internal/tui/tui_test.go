package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/boardparity/internal/labels"
	"github.com/robalobadob/boardparity/internal/quiz"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 14)
	app := New(screen, quiz.NewSeeded(3), labels.English())
	app.flashFor = 0
	return app, screen
}

func key(k tcell.Key, r rune) *tcell.EventKey { return tcell.NewEventKey(k, r, tcell.ModNone) }

// screenText returns the drawn screen as lines of text.
func screenText(screen tcell.SimulationScreen) []string {
	cells, w, h := screen.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		lines[y] = b.String()
	}
	return lines
}

func TestSpaceTogglesAndAnswersCount(t *testing.T) {
	app, _ := newTestApp(t)
	s := app.session

	app.Handle(key(tcell.KeyRune, 'o'))
	if s.Total() != 0 {
		t.Fatal("answer counted while paused")
	}

	app.Handle(key(tcell.KeyRune, ' '))
	if !s.Running() || app.feedback != app.text.Ready {
		t.Fatalf("space: running=%v feedback=%q", s.Running(), app.feedback)
	}

	app.Handle(key(tcell.KeyLeft, 0))
	app.Handle(key(tcell.KeyRune, 'E'))
	if s.Total() != 2 {
		t.Fatalf("total = %d, want 2", s.Total())
	}
	if !strings.HasPrefix(app.feedback, app.text.Correct) && !strings.HasPrefix(app.feedback, app.text.Incorrect) {
		t.Fatalf("feedback = %q", app.feedback)
	}

	app.Handle(key(tcell.KeyRune, ' '))
	if s.Running() || app.feedback != app.text.Paused {
		t.Fatalf("second space: running=%v feedback=%q", s.Running(), app.feedback)
	}
}

func TestModeKeysResetScore(t *testing.T) {
	app, _ := newTestApp(t)
	app.Handle(key(tcell.KeyRune, ' '))
	app.Handle(key(tcell.KeyRune, 'w'))
	app.Handle(key(tcell.KeyRune, '3'))
	s := app.session
	if s.Mode() != quiz.BySquare || s.Total() != 0 || !s.Running() || app.feedback != "" {
		t.Fatalf("mode 3: %+v feedback=%q", s.Snapshot(), app.feedback)
	}
	app.Handle(key(tcell.KeyRune, '2'))
	if s.Mode() != quiz.ByRank {
		t.Fatalf("mode = %s", s.Mode())
	}
}

func TestEnterSkipsWhilePaused(t *testing.T) {
	app, _ := newTestApp(t)
	before := app.session.Question()
	changed := false
	for i := 0; i < 10 && !changed; i++ {
		app.Handle(key(tcell.KeyEnter, 0))
		changed = app.session.Question() != before
	}
	if !changed || app.session.Total() != 0 {
		t.Fatalf("enter: changed=%v total=%d", changed, app.session.Total())
	}
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t)
	if !app.Handle(key(tcell.KeyEscape, 0)) {
		t.Fatal("esc should quit")
	}
	if app.Handle(key(tcell.KeyRune, 'x')) {
		t.Fatal("x should not quit")
	}
}

func TestDraw(t *testing.T) {
	app, screen := newTestApp(t)
	app.Draw()
	text := strings.Join(screenText(screen), "\n")
	for _, want := range []string{
		app.text.Badge(quiz.ByFile),
		"a b c d e f g h",
		app.text.Tally(0, 0, 0),
		app.session.Question().Prompt(),
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("screen missing %q:\n%s", want, text)
		}
	}
}

func TestFlashClearsOnInterrupt(t *testing.T) {
	app, _ := newTestApp(t)
	app.flashFor = time.Hour // never fires during the test
	app.Handle(key(tcell.KeyRune, '2'))
	if !app.flash {
		t.Fatal("mode switch should flash")
	}
	app.Handle(tcell.NewEventInterrupt(flashDone{gen: app.flashGen - 1}))
	if !app.flash {
		t.Fatal("stale flash event cleared the flash")
	}
	app.Handle(tcell.NewEventInterrupt(flashDone{gen: app.flashGen}))
	if app.flash {
		t.Fatal("flash not cleared")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}
