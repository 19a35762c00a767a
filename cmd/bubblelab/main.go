package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bal16/BubbleLab/internal/config"
	"github.com/bal16/BubbleLab/internal/export"
	"github.com/bal16/BubbleLab/internal/playback"
	"github.com/bal16/BubbleLab/internal/sequence"
	"github.com/bal16/BubbleLab/internal/storage"
	"github.com/bal16/BubbleLab/internal/timeline"
	"github.com/bal16/BubbleLab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	size       int
	speedMs    int
	seed       int64
	logLevel   string
	logFile    string
	noColor    bool

	asJSON bool
	asCSV  bool
	asPlot bool
	asSVG  bool
	atStep int
	values string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bubblelab",
		Short:         "step-through bubble sort visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".bubblelab", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&size, "size", config.DefaultSize, "number of elements")
	pf.IntVar(&speedMs, "speed", config.DefaultSpeedMs, "delay between steps in milliseconds")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file (default <data>/bubblelab.log for the TUI, stderr otherwise)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record a timeline and print it",
		Args:  cobra.NoArgs,
		RunE:  runRecord,
	}
	recordCmd.Flags().BoolVar(&asJSON, "json", false, "print the timeline as JSON")
	recordCmd.Flags().BoolVar(&asCSV, "csv", false, "print the timeline as CSV")
	recordCmd.Flags().BoolVar(&asPlot, "plot", false, "plot inversions remaining per step")
	recordCmd.Flags().BoolVar(&asSVG, "svg", false, "print one step as SVG")
	recordCmd.Flags().IntVar(&atStep, "at", -1, "step index for --svg (-1 = last)")
	recordCmd.MarkFlagsMutuallyExclusive("json", "csv", "plot", "svg")
	recordCmd.Flags().StringVar(&values, "values", "", "comma separated input instead of a random sequence")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play a timeline to stdout at the configured speed",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	playCmd.Flags().StringVar(&values, "values", "", "comma separated input instead of a random sequence")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tSPEED")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%dms\n", name, p.Size, p.SpeedMs)
			}
			return w.Flush()
		},
	}

	themeCmd := &cobra.Command{
		Use:       "theme [dark|light|auto]",
		Short:     "show or set the saved theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{config.ThemeDark, config.ThemeLight, config.ThemeAuto},
		RunE:      runTheme,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml or toml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInitConfig,
	}

	rootCmd.AddCommand(recordCmd, playCmd, presetsCmd, themeCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicit flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.SpeedMs = speedMs
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// headlessLogger logs to --log-file if set, otherwise to stderr.
func headlessLogger() (*slog.Logger, func(), error) {
	if logFile == "" {
		l, err := newLogger(os.Stderr, logLevel)
		return l, func() {}, err
	}
	return fileLogger(logFile)
}

func fileLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l, err := newLogger(f, logLevel)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the alternate screen owns the terminal, so logs always go to a file
	path := logFile
	if path == "" {
		path = filepath.Join(dataDir, "bubblelab.log")
	}
	logger, closeLog, err := fileLogger(path)
	if err != nil {
		return err
	}
	defer closeLog()

	prefs := storage.New(dataDir)
	if err := prefs.Init(); err != nil {
		return fmt.Errorf("init data dir: %w", err)
	}
	persisted, err := prefs.Theme()
	if err != nil {
		logger.Warn("saved theme unreadable", "err", err)
	}

	app, err := viz.NewApp(viz.Options{
		Live:      config.NewLive(cfg),
		Generator: sequence.NewGenerator(cfg.Seed, cfg.Limits.MaxSize),
		Prefs:     prefs,
		Theme:     viz.ResolveTheme(cfg.Theme, persisted),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	logger.Info("tui started", "size", cfg.Size, "speed_ms", cfg.SpeedMs, "theme", app.Theme().Name)
	return viz.Run(app)
}

// recordTimeline records --values if given, otherwise a generated sequence.
// The returned seed is zero for explicit values.
func recordTimeline(cfg *config.Config, logger *slog.Logger) (*timeline.Timeline, uint64, error) {
	var (
		seq     sequence.Sequence
		seedVal uint64
	)
	if values != "" {
		parsed, err := parseValues(values)
		if err != nil {
			return nil, 0, err
		}
		seq = parsed
	} else {
		gen := sequence.NewGenerator(cfg.Seed, cfg.Limits.MaxSize)
		generated, err := gen.Generate(cfg.Size)
		if err != nil {
			return nil, 0, err
		}
		seq, seedVal = generated, gen.Seed()
	}

	rec := timeline.NewRecorder()
	rec.AddObserver(timeline.NewLogObserver(logger))
	return rec.Record(seq), seedVal, nil
}

// parseValues reads a comma separated list of elements in the display range.
func parseValues(s string) (sequence.Sequence, error) {
	fields := strings.Split(s, ",")
	seq := make(sequence.Sequence, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		seq = append(seq, sequence.Element(v))
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	return seq, nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := headlessLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tl, seedVal, err := recordTimeline(cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("timeline recorded", "steps", tl.Len(), "seed", seedVal)

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return export.WriteJSON(out, tl, seedVal)
	case asCSV:
		return export.WriteCSV(out, tl)
	case asPlot:
		fmt.Fprintln(out, export.Plot(tl, 70, 15))
		return nil
	case asSVG:
		idx := atStep
		if idx < 0 {
			idx = tl.Len() - 1
		}
		if idx >= tl.Len() {
			return fmt.Errorf("step %d out of range [0, %d]", idx, tl.Len()-1)
		}
		fmt.Fprintln(out, export.StepToSVG(tl.At(idx), export.DefaultPalette, 12, 200))
		return nil
	}

	fmt.Fprintf(out, "input:  %v\n", tl.First().Snapshot().Ints())
	if err := export.WriteLog(out, tl); err != nil {
		return err
	}
	printSummary(out, tl)
	return nil
}

func printSummary(w io.Writer, tl *timeline.Timeline) {
	st := tl.Stats()
	fmt.Fprintf(w, "sorted: %v\n", tl.Last().Snapshot().Ints())
	fmt.Fprintf(w, "steps=%d comparisons=%d swaps=%d passes=%d inversions=%d\n",
		tl.Len(), st.Comparisons, st.Swaps, st.Passes, st.Inversions)
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := headlessLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tl, _, err := recordTimeline(cfg, logger)
	if err != nil {
		return err
	}

	viz.ConfigureOutput(os.Stdout, noColor)
	saved, err := storage.New(dataDir).Theme()
	if err != nil {
		logger.Warn("saved theme unreadable", "err", err)
	}
	theme := viz.ResolveTheme(cfg.Theme, saved)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	done := make(chan struct{})
	var once sync.Once

	ctrl := playback.New(playback.Options{
		Speed:  config.NewLive(cfg),
		Logger: logger,
	})
	ctrl.AddPublisher(playback.PublisherFunc(func(f playback.Frame) {
		fmt.Fprintf(out, "%s  %s\n", viz.RenderInline(f.Step, theme), playback.FormatLine(f.Cursor, f.Step.Narrative()))
		if f.Mode == playback.Finished {
			once.Do(func() { close(done) })
		}
	}))

	if err := ctrl.Start(tl); err != nil {
		return err
	}
	return waitPlayback(ctx, ctrl, done, out, tl)
}

func waitPlayback(ctx context.Context, ctrl *playback.Controller, done <-chan struct{}, out io.Writer, tl *timeline.Timeline) error {
	select {
	case <-done:
		printSummary(out, tl)
		return nil
	case <-ctx.Done():
		st := ctrl.Status()
		if err := ctrl.Stop(); err != nil && !errors.Is(err, playback.ErrInvalidTransition) {
			return err
		}
		fmt.Fprintf(out, "stopped at step %d of %d\n", st.Cursor, st.Total-1)
		return nil
	}
}

func runTheme(cmd *cobra.Command, args []string) error {
	prefs := storage.New(dataDir)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		saved, err := prefs.Theme()
		if err != nil {
			return err
		}
		if saved == "" {
			fmt.Fprintf(out, "auto (terminal: %s)\n", viz.ResolveTheme("", "").Name)
			return nil
		}
		fmt.Fprintln(out, saved)
		return nil
	}

	switch args[0] {
	case config.ThemeAuto:
		if err := prefs.ClearTheme(); err != nil {
			return err
		}
	default:
		if err := prefs.SetTheme(args[0]); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "theme set to %s\n", args[0])
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "bubblelab.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", path)
	return nil
}
