package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/nemclear/config"
	"github.com/kilianp07/nemclear/core/clearing"
	"github.com/kilianp07/nemclear/core/market"
	coremetrics "github.com/kilianp07/nemclear/core/metrics"
	"github.com/kilianp07/nemclear/infra/logger"
	"github.com/kilianp07/nemclear/infra/metrics"
	"github.com/kilianp07/nemclear/infra/mqtt"
	"github.com/kilianp07/nemclear/inputs"
	"github.com/kilianp07/nemclear/pkg/export"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Clear the market described by the input tables",
	RunE:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New("solve-command")

	mkt, err := inputs.Load(cfg.Inputs)
	if err != nil {
		return fmt.Errorf("load inputs: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		go func() {
			if err := metrics.ServePromMetrics(ctx, cfg.Metrics.PrometheusAddr); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	engine := clearing.NewEngine(cfg.Solver.Tolerance, logg, sink)
	res, err := engine.Clear(mkt)
	if err != nil {
		return err
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			logg.Errorf("mqtt publisher: %v", err)
		} else {
			if err := pub.PublishResult(res); err != nil {
				logg.Errorf("publish result: %v", err)
			}
			pub.Close()
		}
	}

	if err := writeOutput(cfg.Output, res); err != nil {
		return err
	}

	// Hold the metrics endpoint open so the scrape target outlives the
	// solve. A plain run without Prometheus exits immediately.
	if cfg.Metrics.PrometheusEnabled {
		logg.Infof("serving metrics on %s until interrupted", cfg.Metrics.PrometheusAddr)
		<-ctx.Done()
	}

	return nil
}

func writeOutput(cfg config.OutputConfig, res market.Result) error {
	var w io.Writer = os.Stdout
	if cfg.Path != "" {
		f, err := os.Create(cfg.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	switch cfg.Format {
	case "json":
		return export.WriteJSON(w, res)
	case "csv":
		return export.WriteCSV(w, res)
	default:
		return export.WriteText(w, res)
	}
}
