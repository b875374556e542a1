package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dshills/porutham/internal/chartfile"
	"github.com/dshills/porutham/internal/config"
	"github.com/dshills/porutham/internal/individual"
	"github.com/dshills/porutham/internal/logging"
	"github.com/dshills/porutham/internal/match"
	"github.com/dshills/porutham/internal/normalize"
	"github.com/dshills/porutham/internal/refdata"
	"github.com/dshills/porutham/internal/render"
	"github.com/dshills/porutham/internal/schema"
	"github.com/dshills/porutham/internal/verdict"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

const (
	exitCodeError    = 1
	exitCodeFailOn   = 2
	exitCodeBadInput = 3
)

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func badInput(err error) error {
	return &exitError{code: exitCodeBadInput, err: err}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := &cobra.Command{
		Use:           "porutham",
		Short:         "Kerala-style porutham marriage compatibility from two birth charts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var common commonFlags
	root.PersistentFlags().StringVar(&common.configPath, "config", "", "YAML config file (default $PORUTHAM_CONFIG)")
	root.PersistentFlags().StringVar(&common.logLevel, "log-level", "", "log level: error, warn, info, debug")
	root.PersistentFlags().StringVar(&common.tables, "tables", "", "substitute reference tables YAML (default embedded)")

	root.AddCommand(newMatchCmd(&common), newAnalyzeCmd(&common), newTablesCmd(&common))

	if err := root.ExecuteContext(ctx); err != nil {
		code := exitCodeError
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	configPath string
	logLevel   string
	tables     string
}

// settings resolves config with flags applied on top.
func (c commonFlags) settings(format, failOn string) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, badInput(err)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.tables != "" {
		cfg.Tables = c.tables
	}
	if format != "" {
		cfg.Format = format
	}
	if failOn != "" {
		cfg.FailOn = failOn
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, badInput(err)
	}
	return cfg, nil
}

func loadTables(path string) (*refdata.Tables, error) {
	if path == "" {
		return refdata.Default(), nil
	}
	t, err := refdata.LoadFile(path)
	if err != nil {
		return nil, badInput(err)
	}
	return t, nil
}

// matchFlags holds the resolved inputs of one match run.
type matchFlags struct {
	commonFlags
	chartFile string
	format    string
	out       string
	failOn    string
}

func newMatchCmd(common *commonFlags) *cobra.Command {
	var f matchFlags
	cmd := &cobra.Command{
		Use:   "match <chart-file>",
		Short: "Evaluate the ten poruthams, pair factors and score for a girl/boy chart pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.commonFlags = *common
			f.chartFile = args[0]
			return runMatch(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "", "output format: json or markdown")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&f.failOn, "fail-on", "", "exit 2 when the verdict is at or beyond this one (e.g. WEAK)")
	return cmd
}

// runMatch executes one match run. It is separated from cobra so tests can
// call it directly.
func runMatch(ctx context.Context, f matchFlags) error {
	if f.chartFile == "" {
		return badInput(errors.New("porutham: a chart file is required"))
	}
	cfg, err := f.settings(f.format, f.failOn)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)

	tables, err := loadTables(cfg.Tables)
	if err != nil {
		return err
	}
	log.Info("loading charts", "file", f.chartFile, "tables", tables.Source())
	girl, boy, err := chartfile.Load(f.chartFile)
	if err != nil {
		return badInput(err)
	}
	warnExtraBodies(log, girl, boy)

	if err := ctx.Err(); err != nil {
		return err
	}
	report, err := match.Run(tables, girl, boy, match.Options{Version: version, ChartFile: f.chartFile})
	if err != nil {
		return &exitError{code: exitCodeError, err: err}
	}
	log.Debug("match evaluated",
		"score", report.Match.Score,
		"verdict", report.Match.Verdict,
		"flags", report.Match.Flags)

	var out []byte
	switch cfg.Format {
	case config.FormatJSON:
		if out, err = render.RenderJSON(report); err != nil {
			return &exitError{code: exitCodeError, err: err}
		}
	default:
		out = []byte(render.RenderMarkdown(report))
	}
	if err := writeOutput(f.out, out); err != nil {
		return &exitError{code: exitCodeError, err: err}
	}

	if cfg.FailOn != "" {
		threshold := schema.Verdict(cfg.FailOn)
		if verdict.VerdictOrdinal(report.Match.Verdict) >= verdict.VerdictOrdinal(threshold) {
			return &exitError{
				code: exitCodeFailOn,
				err:  fmt.Errorf("porutham: verdict %s is at or beyond --fail-on %s", report.Match.Verdict, threshold),
			}
		}
	}
	return nil
}

func newAnalyzeCmd(common *commonFlags) *cobra.Command {
	var f matchFlags
	cmd := &cobra.Command{
		Use:   "analyze <chart-file>",
		Short: "Score career, wealth and life outlook for both charts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.commonFlags = *common
			f.chartFile = args[0]
			return runAnalyze(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "", "output format: json or markdown")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the analysis to this file instead of stdout")
	return cmd
}

func runAnalyze(ctx context.Context, f matchFlags) error {
	cfg, err := f.settings(f.format, "")
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	girl, boy, err := chartfile.Load(f.chartFile)
	if err != nil {
		return badInput(err)
	}
	warnExtraBodies(log, girl, boy)
	if err := ctx.Err(); err != nil {
		return err
	}

	analyses := []schema.IndividualAnalysis{individual.Analyze(girl), individual.Analyze(boy)}
	var out []byte
	switch cfg.Format {
	case config.FormatJSON:
		if out, err = render.RenderAnalysisJSON(analyses); err != nil {
			return &exitError{code: exitCodeError, err: err}
		}
	default:
		out = []byte(render.RenderAnalysisMarkdown(analyses))
	}
	if err := writeOutput(f.out, out); err != nil {
		return &exitError{code: exitCodeError, err: err}
	}
	return nil
}

func newTablesCmd(common *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the reference tables in use as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.settings("", "")
			if err != nil {
				return err
			}
			tables, err := loadTables(cfg.Tables)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(tables.Raw())
			return err
		},
	}
}

func warnExtraBodies(log *slog.Logger, charts ...schema.Chart) {
	for _, c := range charts {
		extra := append(normalize.ExtraBodies(c.Houses), normalize.ExtraBodies(c.Navamsa)...)
		if len(extra) > 0 {
			log.Warn("ignoring non-canonical bodies", "chart", c.Name, "bodies", extra)
		}
	}
}

func writeOutput(path string, data []byte) error {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("porutham: write %s: %w", path, err)
	}
	return nil
}
