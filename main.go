package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/crillab/gophermdd/mdd"
	"github.com/crillab/gophermdd/minla"
	"github.com/crillab/gophermdd/misp"
	"github.com/crillab/gophermdd/solver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags are the settings shared by all sub-commands.
type flags struct {
	config   string
	width    int
	timeout  time.Duration
	order    string
	verbose  bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "gophermdd",
		Short:         "Solve discrete optimization problems with decision diagrams",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "YAML configuration file")
	pf.IntVar(&f.width, "width", 0, "maximum width of compiled diagrams (0 means unbounded)")
	pf.DurationVar(&f.timeout, "timeout", 0, "time budget for each instance (0 means none)")
	pf.StringVar(&f.order, "order", "", "frontier order: least-promising-first or most-promising-first")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "report every improved solution")
	pf.StringVar(&f.logLevel, "log-level", "warning", "log level (debug, info, warning, error)")
	root.AddCommand(newSolveCmd(&f), newBenchCmd(&f))
	return root
}

// settings returns the configuration described by the configuration file, overridden by flags.
func (f *flags) settings(cmd *cobra.Command) (solver.Config, error) {
	cfg := solver.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = solver.LoadConfigFile(f.config); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("width") {
		cfg.MaxWidth = f.width
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if cmd.Flags().Changed("order") {
		cfg.FrontierOrder = f.order
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	return cfg, cfg.Validate()
}

func (f *flags) logger(out io.Writer, cfg solver.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(f.logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	if cfg.Verbose && level < logrus.InfoLevel {
		level = logrus.InfoLevel
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

// An instance is a problem read from a file.
type instance interface {
	mdd.Problem
	Expected() (float64, bool)
}

// parse reads the problem in path, according to its extension.
func parse(path string) (instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %q", path)
	}
	defer func() { _ = f.Close() }()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".clq", ".col", ".dimacs":
		pb, err := misp.ParseDIMACS(f)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse %q", path)
		}
		return pb, nil
	case ".gra":
		pb, err := minla.ParseGra(f)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse %q", path)
		}
		return pb, nil
	default:
		return nil, errors.Errorf("unknown format for %q: expected .clq, .col, .dimacs or .gra", path)
	}
}

func newSolveCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "solve file",
		Short: "Solve one instance and print its best solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.settings(cmd)
			if err != nil {
				return err
			}
			logger, err := f.logger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return solve(ctx, cmd.OutOrStdout(), args[0], cfg, logger)
		},
	}
}

func solve(ctx context.Context, out io.Writer, path string, cfg solver.Config, logger logrus.FieldLogger) error {
	fmt.Fprintf(out, "c solving %s\n", path)
	pb, err := parse(path)
	if err != nil {
		return err
	}
	if expected, ok := pb.Expected(); ok {
		fmt.Fprintf(out, "c expected optimum: %g\n", expected)
	}
	s, err := solver.New(pb, solver.WithConfig(cfg), solver.WithLogger(logger.WithField("instance", path)))
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := s.Solve(ctx)
	if err != nil {
		return errors.Wrapf(err, "could not solve %q", path)
	}
	if cfg.Verbose {
		fmt.Fprintf(out, "c time: %v\n", time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(out, "c nb iterations: %d\nc nb pruned: %d\n", res.Stats.NbIterations, res.Stats.NbPruned)
		fmt.Fprintf(out, "c nb restricted: %d\nc nb relaxed: %d\n", res.Stats.NbRestricted, res.Stats.NbRelaxed)
		fmt.Fprintf(out, "c nb cutset states: %d\nc max frontier: %d\n", res.Stats.NbCutsetStates, res.Stats.MaxFrontier)
	}
	fmt.Fprint(out, res.String())
	return nil
}

func newBenchCmd(f *flags) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "bench files...",
		Short: "Solve several instances concurrently and print one line per instance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.settings(cmd)
			if err != nil {
				return err
			}
			logger, err := f.logger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			lines, err := bench(ctx, args, jobs, cfg, logger)
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "number of instances solved at the same time")
	return cmd
}

// bench solves every instance with its own solver and returns one report line per instance, in order.
// An instance that cannot be solved is reported as ERROR; it does not stop the others.
func bench(ctx context.Context, paths []string, jobs int, cfg solver.Config, logger logrus.FieldLogger) ([]string, error) {
	lines := make([]string, len(paths))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			line, err := benchOne(ctx, path, cfg, logger)
			if err != nil {
				lines[i] = fmt.Sprintf("%s\tERROR", path)
				logger.WithField("instance", path).WithError(err).Error("could not solve instance")
				return err
			}
			lines[i] = line
			return nil
		})
	}
	return lines, g.Wait()
}

func benchOne(ctx context.Context, path string, cfg solver.Config, logger logrus.FieldLogger) (string, error) {
	pb, err := parse(path)
	if err != nil {
		return "", err
	}
	s, err := solver.New(pb, solver.WithConfig(cfg), solver.WithLogger(logger.WithField("instance", path)))
	if err != nil {
		return "", err
	}
	start := time.Now()
	res, err := s.Solve(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "could not solve %q", path)
	}
	line := fmt.Sprintf("%s\t%v\t%g\t%v", path, res.Status, res.Value, time.Since(start).Round(time.Millisecond))
	if expected, ok := pb.Expected(); ok && res.Status == solver.Optimal && expected != res.Value {
		line += fmt.Sprintf("\texpected %g", expected)
	}
	return line, nil
}
