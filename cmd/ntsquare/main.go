package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ntsquare/internal/automation"
	"github.com/san-kum/ntsquare/internal/config"
	"github.com/san-kum/ntsquare/internal/export"
	"github.com/san-kum/ntsquare/internal/storage"
	"github.com/san-kum/ntsquare/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string

	// run
	taps        int
	delay       time.Duration
	metricsAddr string
	jsonOut     string
	scriptFile  string

	// svg
	svgOut  string
	partial int
	width   float64
	height  float64

	// plot
	plotSVG string

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

// main registers the commands and launches the interactive view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "ntsquare",
		Short:        "tap-driven folding squares",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ntsquare", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drive the animation headless with scripted taps",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&taps, "taps", 2, "number of taps to deliver")
	runCmd.Flags().DurationVar(&delay, "delay", 0, "pause between ticks (0 keeps the configured delay)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also export the run as json to this path")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "yaml scenario of taps, interrupts and pauses (overrides --taps)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot node scales of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "write the chart as svg to this path")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "export one frame as svg",
		Args:  cobra.NoArgs,
		RunE:  exportFrame,
	}
	svgCmd.Flags().IntVar(&taps, "taps", 1, "completed taps before the frame")
	svgCmd.Flags().IntVar(&partial, "partial", 0, "ticks into one more animation")
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "frame.svg", "output path")
	svgCmd.Flags().Float64Var(&width, "width", 400, "canvas width")
	svgCmd.Flags().Float64Var(&height, "height", 600, "canvas height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure animation length across an easing parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gap", "parameter to vary (gap, div, lines, steps)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.02, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "n", 9, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNODES\tLINES\tSTEPS\tDELAY")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\n", name, p.Nodes, p.Lines, p.Steps, p.Delay)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig()
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, svgCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies the preset, then the config file over defaults.
// The returned name labels stored runs.
func resolveConfig() (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if preset == "" {
			name = "custom"
		}
	}
	return cfg, name, nil
}

// newLogger builds a text logger on out, or on --log-file when set. The
// returned func closes the log file.
func newLogger(out io.Writer) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if preset == "" && configFile == "" {
		logger.Info("starting interactive view", "mode", "menu")
		return viz.RunInteractive(nil)
	}
	cfg, name, err := resolveConfig()
	if err != nil {
		return err
	}
	logger.Info("starting interactive view", "config", name, "nodes", cfg.Nodes)
	return viz.RunInteractive(cfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tNODES\tTAPS\tTICKS\tDONE\tDELAY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nodes,
			run.Taps,
			run.Ticks,
			run.Completions,
			run.Delay,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(trace))

	series := storage.Series(trace)
	for i, data := range series {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption(fmt.Sprintf("node %d scale", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if plotSVG != "" {
		colors := []string{"#FF5722", "#4FC3F7", "#AED581", "#FFD54F", "#BA68C8"}
		if err := os.WriteFile(plotSVG, []byte(export.SeriesToSVG(series, 800, 300, colors)), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Printf("wrote %s\n", plotSVG)
	}
	return nil
}

func exportFrame(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig()
	if err != nil {
		return err
	}
	seq, err := replay(cfg, taps, partial)
	if err != nil {
		return err
	}

	layout := cfg.Layout(width, height)
	svg := export.FrameToSVG(layout, seq.Frame(), cfg.ForeColor, cfg.BackColor)
	if !strings.HasSuffix(svgOut, ".svg") {
		svgOut += ".svg"
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	fmt.Printf("wrote %s (node %d, dir %+d)\n", svgOut, seq.Current(), seq.Dir())
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig()
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), cfg, &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tUNFOLD\tFOLD\n", strings.ToUpper(sweepParam))
	unfold := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%d\n", r.ParamValue, r.UnfoldTicks, r.FoldTicks)
		unfold = append(unfold, float64(r.UnfoldTicks))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(unfold) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(unfold,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("unfold ticks vs %s", sweepParam)),
		))
	}
	return nil
}
