package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/san-kum/ntsquare/internal/automation"
	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/config"
	"github.com/san-kum/ntsquare/internal/driver"
	"github.com/san-kum/ntsquare/internal/metrics"
	"github.com/san-kum/ntsquare/internal/sequencer"
	"github.com/san-kum/ntsquare/internal/storage"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, name, err := resolveConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("delay") {
		cfg.Delay = delay
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	script := automation.TapScript(taps)
	if scriptFile != "" {
		script, err = automation.LoadScenario(scriptFile)
		if err != nil {
			return fmt.Errorf("load script: %w", err)
		}
	}

	c, err := chain.New(cfg.Nodes)
	if err != nil {
		return err
	}
	seq := sequencer.New(c, cfg.Sequencer())
	rec := storage.NewRecorder(seq)
	tempo := metrics.NewTempo()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			logger.Info("starting metrics server", "addr", metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	settler := automation.NewSettler(seq, rec)
	drv := driver.New(seq, settler,
		driver.WithDelay(cfg.Delay),
		driver.WithLogger(logger),
		driver.WithObserver(rec),
		driver.WithObserver(collector),
		driver.WithObserver(tempo),
		driver.WithObserver(settler),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- drv.Run(runCtx) }()

	logger.Info("running", "config", name, "script", script.Name, "nodes", cfg.Nodes, "taps", script.Taps(), "delay", cfg.Delay)
	start := time.Now()

	if err := script.Play(ctx, drv, settler.Settled(), logger); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("received interrupt signal, stopping")
	}
	cancel()
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := runMetadata(cfg, name)
	rec.Fill(&meta)
	runID, err := st.Save(meta, rec.Samples())
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	meta.ID = runID

	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, meta, rec.Samples()); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
	}

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", meta.Ticks)
	fmt.Printf("completions: %d\n", meta.Completions)
	fmt.Printf("%s: %.1f\n", tempo.Name(), tempo.Value())
	fmt.Printf("node: %d dir: %+d\n", seq.Current(), seq.Dir())
	return nil
}

func runMetadata(cfg *config.Config, name string) storage.RunMetadata {
	return storage.RunMetadata{
		Preset: name,
		Nodes:  cfg.Nodes,
		Lines:  cfg.Lines,
		Steps:  cfg.Steps,
		Gap:    cfg.Gap,
		Div:    cfg.Div,
		Delay:  cfg.Delay.String(),
	}
}

// replay plays taps full animations and then partial ticks of one more
// without any pacing, returning the resulting sequencer.
func replay(cfg *config.Config, taps, partial int) (*sequencer.Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := chain.New(cfg.Nodes)
	if err != nil {
		return nil, err
	}
	seq := sequencer.New(c, cfg.Sequencer())
	for i := 0; i < taps; i++ {
		seq.Trigger()
		for seq.Tick().Status == sequencer.Continue {
		}
	}
	if partial > 0 {
		seq.Trigger()
		for i := 0; i < partial; i++ {
			if seq.Tick().Status == sequencer.Stopped {
				break
			}
		}
	}
	return seq, nil
}
