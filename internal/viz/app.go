package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"k8s.io/utils/clock"

	"github.com/bal16/BubbleLab/internal/config"
	"github.com/bal16/BubbleLab/internal/playback"
	"github.com/bal16/BubbleLab/internal/sequence"
	"github.com/bal16/BubbleLab/internal/storage"
	"github.com/bal16/BubbleLab/internal/timeline"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	logPanelWidth = 34
	chromeRows    = 9
)

type Options struct {
	Live      *config.Live
	Generator *sequence.Generator
	Prefs     *storage.Store
	Theme     Theme
	Logger    *slog.Logger
	Clock     clock.Clock
}

// App is the interactive visualizer.
type App struct {
	ctrl   *playback.Controller
	screen *Screen
	hlog   *playback.HistoryLog
	gen    *sequence.Generator
	live   *config.Live
	prefs  *storage.Store
	log    *slog.Logger

	seq    sequence.Sequence
	theme  Theme
	st     styles
	keys   keyMap
	help   help.Model
	status string
	err    error

	width, height int
}

func NewApp(opts Options) (*App, error) {
	if opts.Live == nil || opts.Generator == nil {
		return nil, errors.New("viz: live config and generator are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeDark
	}

	a := &App{
		screen: NewScreen(),
		hlog:   playback.NewHistoryLog(),
		gen:    opts.Generator,
		live:   opts.Live,
		prefs:  opts.Prefs,
		log:    opts.Logger.With("component", "viz"),
		keys:   defaultKeys(),
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	a.applyTheme(opts.Theme)
	a.ctrl = playback.New(playback.Options{
		Clock:  opts.Clock,
		Speed:  opts.Live,
		Logger: opts.Logger,
		OnStop: a.regenerate,
	})
	a.ctrl.AddPublisher(a.screen)
	a.ctrl.AddPublisher(a.hlog)
	a.regenerate()
	return a, a.err
}

func (a *App) Controller() *playback.Controller { return a.ctrl }
func (a *App) Sequence() sequence.Sequence      { return a.seq.Clone() }
func (a *App) Theme() Theme                     { return a.theme }
func (a *App) History() *playback.HistoryLog    { return a.hlog }

func (a *App) Init() tea.Cmd { return a.screen.Wait() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
	case frameMsg:
		return a, a.screen.Wait()
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := a.ctrl.Status().Mode

	switch {
	case key.Matches(msg, a.keys.Quit):
		if mode != playback.Idle {
			a.ignore("stop", a.ctrl.Stop())
		}
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keys.Generate):
		switch mode {
		case playback.Idle:
			a.regenerate()
		case playback.Finished:
			a.ignore("stop", a.ctrl.Stop())
		}
	case key.Matches(msg, a.keys.Start):
		a.start()
	case key.Matches(msg, a.keys.Pause):
		switch mode {
		case playback.Running:
			a.ignore("pause", a.ctrl.Pause())
			a.status = "paused: use ←/→ to step or space to resume"
		case playback.Paused:
			a.ignore("resume", a.ctrl.Resume())
			a.status = "resuming"
		}
	case key.Matches(msg, a.keys.Stop):
		a.ignore("stop", a.ctrl.Stop())
	case key.Matches(msg, a.keys.Back):
		a.ignore("step backward", a.ctrl.StepBackward())
	case key.Matches(msg, a.keys.Forward):
		a.ignore("step forward", a.ctrl.StepForward())
	case key.Matches(msg, a.keys.Faster):
		a.live.AdjustSpeedMs(-speedDelta(a.live.SpeedMs()))
	case key.Matches(msg, a.keys.Slower):
		a.live.AdjustSpeedMs(speedDelta(a.live.SpeedMs()))
	case key.Matches(msg, a.keys.Bigger):
		a.resize(1, mode)
	case key.Matches(msg, a.keys.Smaller):
		a.resize(-1, mode)
	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
	}
	return a, nil
}

func (a *App) start() {
	rec := timeline.NewRecorder()
	rec.AddObserver(timeline.NewLogObserver(a.log))
	tl := rec.Record(a.seq)
	if err := a.ctrl.Start(tl); err != nil {
		a.ignore("start", err)
		return
	}
	a.status = ""
	a.log.Info("sort started", "size", len(a.seq), "steps", tl.Len(), "speed_ms", a.live.SpeedMs())
}

// resize changes the bar count. It applies only while no run is active.
func (a *App) resize(delta int, mode playback.Mode) {
	switch mode {
	case playback.Idle:
		a.live.AdjustSize(delta)
		a.regenerate()
	case playback.Finished:
		a.live.AdjustSize(delta)
		a.ignore("stop", a.ctrl.Stop())
	}
}

func (a *App) regenerate() {
	seq, err := a.gen.Generate(a.live.Size())
	if err != nil {
		a.fail("generate", err)
		return
	}
	a.seq, a.err = seq, nil
	a.status = "new sequence generated: press s to sort"
	a.log.Debug("sequence generated", "size", len(seq))
}

func (a *App) toggleTheme() {
	a.applyTheme(a.theme.Toggle())
	if a.prefs == nil {
		return
	}
	if err := a.prefs.SetTheme(a.theme.Name); err != nil {
		a.log.Warn("theme not saved", "err", err)
		a.status = "theme not saved: " + err.Error()
	}
}

func (a *App) applyTheme(t Theme) {
	a.theme = t
	a.st = newStyles(t)
	a.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(t.Accent)
	a.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(t.Muted)
	a.help.Styles.FullKey = a.help.Styles.ShortKey
	a.help.Styles.FullDesc = a.help.Styles.ShortDesc
}

// ignore drops rejected transitions, which correspond to disabled controls.
func (a *App) ignore(op string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, playback.ErrInvalidTransition) {
		a.log.Debug("ignored key", "op", op, "err", err)
		return
	}
	a.fail(op, err)
}

func (a *App) fail(op string, err error) {
	a.err = fmt.Errorf("%s: %w", op, err)
	a.log.Error("operation failed", "op", op, "err", err)
}

func speedDelta(ms int) int {
	if d := ms / 5; d > 10 {
		return d
	}
	return 10
}

func (a *App) View() string {
	status := a.ctrl.Status()
	frame, ok := a.screen.Frame()

	barsWidth := a.width - logPanelWidth - 6
	if barsWidth < 20 {
		barsWidth = 20
	}
	barsHeight := a.height - chromeRows
	if barsHeight < minHeight {
		barsHeight = minHeight
	}

	var bars, narrative string
	if ok {
		bars = RenderStep(frame.Step, a.theme, barsWidth, barsHeight)
		narrative = frame.Step.Narrative()
	} else {
		bars = RenderBars(a.seq, timeline.None(len(a.seq)), a.theme, barsWidth, barsHeight)
	}

	var s strings.Builder
	s.WriteString(a.st.title.Render("BUBBLE SORT") + "  " + a.st.modeBadge(a.theme, status.Mode.String()) + "\n")
	s.WriteString(a.st.subtle.Render(Separator(barsWidth)) + "\n")
	s.WriteString(bars + "\n")
	s.WriteString(a.st.subtle.Render(Separator(barsWidth)) + "\n")
	s.WriteString(a.statusLine(status, narrative) + "\n")
	s.WriteString(a.statsLine(status) + "\n")

	main := lipgloss.JoinHorizontal(lipgloss.Top, s.String(), a.logPanel(barsHeight+4))
	return main + "\n" + a.help.View(a.keys)
}

func (a *App) statusLine(status playback.Status, narrative string) string {
	if a.err != nil {
		return a.st.warning.Render("error: " + a.err.Error())
	}
	switch status.Mode {
	case playback.Running:
		return a.st.text.Render(narrative)
	case playback.Paused:
		return a.st.text.Render(narrative) + a.st.subtle.Render("  (paused: ←/→ step, space resume)")
	case playback.Finished:
		return a.st.text.Render(narrative)
	}
	return a.st.subtle.Render(a.status)
}

func (a *App) statsLine(status playback.Status) string {
	step := "-"
	progress := 0.0
	if status.Total > 0 && status.Cursor >= 0 {
		step = fmt.Sprintf("%d/%d", status.Cursor, status.Total-1)
		if status.Total > 1 {
			progress = float64(status.Cursor) / float64(status.Total-1)
		} else {
			progress = 1
		}
	}
	lim := a.live.Limits()
	parts := []string{
		a.st.label.Render("step") + a.st.value.Render(step),
		a.st.label.Render("size") + a.st.value.Render(fmt.Sprintf("%d", a.live.Size())) +
			a.st.subtle.Render(fmt.Sprintf(" [%d-%d]", lim.MinSize, lim.MaxSize)),
		a.st.label.Render("speed") + a.st.value.Render(fmt.Sprintf("%dms", a.live.SpeedMs())),
	}
	return strings.Join(parts, "  ") + "  " + a.st.progress.Render(ProgressBar(progress, 16))
}

func (a *App) logPanel(height int) string {
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	lines := a.hlog.Tail(rows)
	body := a.st.subtle.Render("(no steps yet)")
	if len(lines) > 0 {
		trimmed := make([]string, len(lines))
		for i, l := range lines {
			if len(l) > logPanelWidth-4 {
				l = l[:logPanelWidth-5] + "…"
			}
			trimmed[i] = l
		}
		body = a.st.text.Render(strings.Join(trimmed, "\n"))
	}
	title := a.st.title.Render("HISTORY")
	return a.st.panel.Width(logPanelWidth).Height(rows).Render(title + "\n" + body)
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(app *App) error {
	defer func() {
		if app.ctrl.Status().Mode != playback.Idle {
			_ = app.ctrl.Stop()
		}
	}()
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	// release the Wait command still parked on the activity channel
	app.screen.notify()
	return err
}
