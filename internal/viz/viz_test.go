package viz

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/bal16/BubbleLab/internal/config"
	"github.com/bal16/BubbleLab/internal/playback"
	"github.com/bal16/BubbleLab/internal/sequence"
	"github.com/bal16/BubbleLab/internal/storage"
	"github.com/bal16/BubbleLab/internal/timeline"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
)

func newTestApp(t *testing.T) (*App, *storage.Store) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Size = 8
	prefs := storage.New(t.TempDir())
	app, err := NewApp(Options{
		Live:      config.NewLive(cfg),
		Generator: sequence.NewGenerator(3, cfg.Limits.MaxSize),
		Prefs:     prefs,
		Theme:     ThemeDark,
		Clock:     testingclock.NewFakeClock(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app, prefs
}

func press(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func TestAppPlaybackKeys(t *testing.T) {
	app, _ := newTestApp(t)
	ctrl := app.Controller()

	if len(app.Sequence()) != 8 {
		t.Fatalf("expected 8 elements, got %d", len(app.Sequence()))
	}

	press(app, runeKey('s'))
	if got := ctrl.Status().Mode; got != playback.Running {
		t.Fatalf("expected running, got %s", got)
	}

	press(app, keySpace, keyRight, keyRight, keyRight)
	st := ctrl.Status()
	if st.Mode != playback.Paused || st.Cursor != 2 {
		t.Fatalf("expected paused at 2, got %+v", st)
	}
	if app.History().Len() != 2 {
		t.Errorf("expected 2 log lines, got %d", app.History().Len())
	}

	press(app, keyLeft)
	if ctrl.Status().Cursor != 1 || app.History().Len() != 1 {
		t.Errorf("step back failed: %+v log=%d", ctrl.Status(), app.History().Len())
	}

	frame, ok := app.screen.Frame()
	if !ok || frame.Cursor != 1 {
		t.Errorf("screen not in sync: %+v", frame)
	}

	before := app.Sequence()
	press(app, runeKey('x'))
	if st := ctrl.Status(); st.Mode != playback.Idle || st.Cursor != -1 {
		t.Errorf("expected idle at -1, got %+v", st)
	}
	if _, ok := app.screen.Frame(); ok {
		t.Error("screen should be cleared after stop")
	}
	if app.History().Len() != 0 {
		t.Error("log should be cleared after stop")
	}
	if len(app.Sequence()) != len(before) {
		t.Errorf("regenerated sequence has wrong size %d", len(app.Sequence()))
	}
}

func TestAppIgnoresDisabledControls(t *testing.T) {
	app, _ := newTestApp(t)
	ctrl := app.Controller()

	press(app, keySpace, keyRight, keyLeft, runeKey('x'))
	if st := ctrl.Status(); st.Mode != playback.Idle {
		t.Errorf("expected idle, got %+v", st)
	}
	if app.err != nil {
		t.Errorf("disabled controls should not surface errors: %v", app.err)
	}

	press(app, runeKey('s'), runeKey('s'))
	if ctrl.Status().Mode != playback.Running || app.err != nil {
		t.Errorf("second start should be ignored: %+v %v", ctrl.Status(), app.err)
	}
	press(app, runeKey('x'))
}

func TestAppResize(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, runeKey(']'))
	if len(app.Sequence()) != 9 {
		t.Errorf("expected 9 elements, got %d", len(app.Sequence()))
	}

	press(app, runeKey('s'), runeKey(']'))
	if len(app.Sequence()) != 9 || app.live.Size() != 9 {
		t.Errorf("size must not change while running: seq=%d live=%d", len(app.Sequence()), app.live.Size())
	}

	press(app, runeKey('x'), runeKey('['), runeKey('['))
	if len(app.Sequence()) != 7 {
		t.Errorf("expected 7 elements, got %d", len(app.Sequence()))
	}
}

func TestAppSpeedKeys(t *testing.T) {
	app, _ := newTestApp(t)
	start := app.live.SpeedMs()

	press(app, runeKey('+'))
	if app.live.SpeedMs() >= start {
		t.Errorf("faster should lower the delay: %d -> %d", start, app.live.SpeedMs())
	}
	press(app, runeKey('-'), runeKey('-'))
	if app.live.SpeedMs() <= start-speedDelta(start) {
		t.Errorf("slower should raise the delay, got %d", app.live.SpeedMs())
	}
}

func TestAppThemeToggle(t *testing.T) {
	app, prefs := newTestApp(t)

	press(app, runeKey('t'))
	if app.Theme().Name != "light" {
		t.Errorf("expected light theme, got %s", app.Theme().Name)
	}
	saved, err := prefs.Theme()
	if err != nil || saved != "light" {
		t.Errorf("expected persisted light theme, got %q err=%v", saved, err)
	}
}

func TestAppView(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	view := app.View()
	for _, want := range []string{"BUBBLE SORT", "IDLE", "HISTORY", "new sequence generated", "[2-100]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	press(app, runeKey('s'), keySpace, keyRight, keyRight)
	view = app.View()
	if !strings.Contains(view, "PAUSED") || !strings.Contains(view, "[1] comparing") {
		t.Errorf("paused view missing state:\n%s", view)
	}
	press(app, runeKey('x'))
}

func TestRenderBars(t *testing.T) {
	out := RenderBars(sequence.Sequence{100, 50}, timeline.None(2), ThemeDark, 3, 4)
	rows := strings.Split(out, "\n")
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d:\n%s", len(rows), out)
	}
	if got := strings.Count(out, barGlyph); got != 6 {
		t.Errorf("expected 6 filled cells, got %d:\n%s", got, out)
	}

	wide := RenderBars(sequence.Sequence{5, 100, 40}, timeline.None(3), ThemeDark, 20, 5)
	if !strings.Contains(wide, "100") {
		t.Errorf("wide bars should carry labels:\n%s", wide)
	}

	if !strings.Contains(RenderBars(nil, timeline.None(0), ThemeDark, 10, 5), "empty") {
		t.Error("expected placeholder for empty sequence")
	}
}

func TestBarColor(t *testing.T) {
	th := ThemeDark
	tests := []struct {
		name string
		h    timeline.Highlight
		i    int
		want lipgloss.Color
	}{
		{"plain", timeline.None(4), 0, th.Primary},
		{"comparing", timeline.Comparing(0, 1, 4), 1, th.Compare},
		{"swapping", timeline.Swapping(0, 1, 4), 0, th.Swap},
		{"outside pair", timeline.Swapping(0, 1, 4), 2, th.Primary},
		{"sorted wins", timeline.Comparing(2, 3, 3), 3, th.Sorted},
		{"final", timeline.SortedFrom(0), 0, th.Sorted},
	}
	for _, tt := range tests {
		if got := barColor(th, tt.h, tt.i); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestRenderInline(t *testing.T) {
	tl := timeline.Record(sequence.Sequence{5, 3, 8})
	if got := RenderInline(tl.At(2), ThemeDark); got != "[3 5 8]" {
		t.Errorf("unexpected inline render %q", got)
	}
}

func TestResolveTheme(t *testing.T) {
	orig := hasDarkBackground
	defer func() { hasDarkBackground = orig }()
	hasDarkBackground = func() bool { return false }

	tests := []struct {
		configured, persisted, want string
	}{
		{"dark", "light", "dark"},
		{"auto", "dark", "dark"},
		{"", "light", "light"},
		{"auto", "", "light"},
	}
	for _, tt := range tests {
		if got := ResolveTheme(tt.configured, tt.persisted).Name; got != tt.want {
			t.Errorf("ResolveTheme(%q, %q) = %s, want %s", tt.configured, tt.persisted, got, tt.want)
		}
	}

	hasDarkBackground = func() bool { return true }
	if got := ResolveTheme("auto", "").Name; got != "dark" {
		t.Errorf("expected dark from terminal background, got %s", got)
	}
}

func TestScreen(t *testing.T) {
	s := NewScreen()
	tl := timeline.Record(sequence.Sequence{5, 3})

	// a full activity slot must not block the publisher
	s.Publish(playback.Frame{Timeline: tl, Cursor: 0, Total: tl.Len(), Step: tl.At(0)})
	s.Publish(playback.Frame{Timeline: tl, Cursor: 1, Total: tl.Len(), Step: tl.At(1)})

	f, ok := s.Frame()
	if !ok || f.Cursor != 1 {
		t.Errorf("expected latest frame, got %+v ok=%v", f, ok)
	}
	if _, isFrame := s.Wait()().(frameMsg); !isFrame {
		t.Error("expected frameMsg")
	}

	s.Reset()
	if _, ok := s.Frame(); ok {
		t.Error("expected no frame after reset")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 10); strings.Count(got, "█") != 5 {
		t.Errorf("unexpected bar %q", got)
	}
	if got := ProgressBar(2, 4); got != "████" {
		t.Errorf("bar should clamp, got %q", got)
	}
}

func TestScreenNotifyReleasesWait(t *testing.T) {
	s := NewScreen()
	got := make(chan tea.Msg, 1)
	go func() { got <- s.Wait()() }()

	select {
	case <-got:
		t.Fatal("Wait returned before any activity")
	case <-time.After(20 * time.Millisecond):
	}

	s.notify()
	select {
	case msg := <-got:
		if _, ok := msg.(frameMsg); !ok {
			t.Errorf("expected frameMsg, got %T", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait still blocked after notify")
	}
}
