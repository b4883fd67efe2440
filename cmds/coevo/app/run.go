package app

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/coevolution/cmds/coevo/scenarios"
	"github.com/mandelsoft/coevolution/pkg/metrics"
	"github.com/mandelsoft/coevolution/pkg/repository"
	"github.com/mandelsoft/coevolution/pkg/utils"
)

const METRICS_NAMESPACE = "coevo"

type Run struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
	write    string
	metrics  bool
	maxDepth int
	seed     int64
}

func NewRun(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario> <options>",
		Short: "run a scenario given by name or index",
		Args:  cobra.ExactArgs(1),
	}

	c := &Run{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args[0]) }
	c.AddFlags(cmd.Flags())
	return cmd
}

func (c *Run) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.output, "output", "o", "", "output format (text, yaml, json)")
	flags.StringVarP(&c.write, "write", "w", "", "write the report to a file (yaml or json by extension)")
	flags.BoolVarP(&c.metrics, "metrics", "m", false, "print propagation metrics")
	flags.IntVarP(&c.maxDepth, "max-depth", "d", 0, "maximum propagation cascade depth (0 means unlimited)")
	flags.Int64VarP(&c.seed, "seed", "s", 0, "seed for randomized scenarios")
}

func (c *Run) Run(key string) error {
	cfg := c.mainopts.cfg

	s, err := scenarios.Get(key)
	if err != nil {
		return err
	}
	format := *cfg.Output
	if c.output != "" {
		format = c.output
	}
	format, err = CheckOutput(format)
	if err != nil {
		return err
	}

	depth := 0
	if cfg.MaxCascadeDepth != nil {
		depth = *cfg.MaxCascadeDepth
	}
	if c.cmd.Flags().Changed("max-depth") {
		depth = c.maxDepth
	}
	if depth < 0 {
		return fmt.Errorf("invalid cascade depth %d", depth)
	}

	var seed int64
	switch {
	case c.cmd.Flags().Changed("seed"):
		seed = c.seed
	case cfg.Seed != nil:
		seed = *cfg.Seed
	default:
		seed = time.Now().UnixNano()
	}

	collector := metrics.New(METRICS_NAMESPACE)
	repo := repository.New(repository.WithObserver(collector), repository.WithMaxCascadeDepth(depth))

	log.Info("running scenario {{scenario}}", "scenario", s.Name, "seed", seed, "maxdepth", depth)
	runerr := s.Run(repo, scenarios.Options{Seed: seed})
	if runerr != nil {
		log.LogError(runerr, "scenario {{scenario}} failed", "scenario", s.Name)
	}

	report := NewReport(s.Name, repo)
	if s.Seeded {
		report.Seed = utils.Pointer(seed)
	}

	out := c.cmd.OutOrStdout()
	if format == OUTPUT_TEXT {
		columns, fields := report.Table()
		PrintTable(out, columns, fields)
	} else {
		data, err := Marshal(format, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", string(data))
	}

	if c.write != "" {
		err = c.Write(report)
		if err != nil {
			return err
		}
	}
	if c.metrics {
		err = PrintMetrics(out, collector)
		if err != nil {
			return err
		}
	}
	return runerr
}

func (c *Run) Write(report *Report) error {
	format := OUTPUT_YAML
	if filepath.Ext(c.write) == ".json" {
		format = OUTPUT_JSON
	}
	data, err := Marshal(format, report)
	if err != nil {
		return err
	}
	err = vfs.WriteFile(c.mainopts.fs, c.write, data, 0o644)
	if err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	log.Info("report written to {{file}}", "file", c.write)
	return nil
}

// PrintMetrics prints the metrics of a collector in the
// prometheus text exposition format.
func PrintMetrics(w io.Writer, c prometheus.Collector) error {
	reg := prometheus.NewRegistry()
	err := reg.Register(c)
	if err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		_, err = expfmt.MetricFamilyToText(w, mf)
		if err != nil {
			return err
		}
	}
	return nil
}
