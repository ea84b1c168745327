package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogtree/config"
	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/formatter"
	"github.com/philipp01105/nlogtree/handler"
	"github.com/philipp01105/nlogtree/logger"
)

type options struct {
	configFile   string
	level        string
	stackLevel   string
	hierarchical bool
	format       string
	caller       bool
	template     string
	filter       string
	envFile      string
	levels       map[string]string
}

// envPrefix prefixes the environment variables that provide flag defaults,
// e.g. NLOGTREE_LEVEL for --level.
const envPrefix = "NLOGTREE_"

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "nlogtree",
		Short:        "Hierarchical, level-filtered logging from the command line",
		Long:         `nlogtree applies a logger tree config and emits records through named loggers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadEnv(cmd); err != nil {
				return err
			}
			return opts.apply(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.StringVarP(&opts.level, "level", "l", "", "root level (overrides the config)")
	flags.StringVar(&opts.stackLevel, "stack-level", "", "capture stack traces at or above this level")
	flags.BoolVar(&opts.hierarchical, "hierarchical", false, "enable per-logger levels")
	flags.StringVarP(&opts.format, "format", "f", "text", "output format: text, json, template, pretty or zap")
	flags.StringVar(&opts.template, "template", "", "text/template with sprig functions for --format template")
	flags.StringVar(&opts.filter, "filter", "", `only print records matching an expression, e.g. 'level >= WARN && logger startsWith "db"'`)
	flags.StringVar(&opts.envFile, "env-file", "", "load NLOGTREE_* variables from a .env file")
	flags.BoolVar(&opts.caller, "caller", false, "include the caller in text and json output")
	flags.StringToStringVar(&opts.levels, "set", nil, "per-logger levels, e.g. --set db=DEBUG (hierarchical mode)")

	cmd.AddCommand(newEmitCmd(opts), newTreeCmd(opts), newWatchCmd(opts))
	return cmd
}

// loadEnv fills every flag that was not set on the command line from its
// NLOGTREE_* environment variable, after loading --env-file if given.
func (o *options) loadEnv(cmd *cobra.Command) error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("--env-file: %w", err)
		}
	}

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "env-file" {
			return
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if val, ok := os.LookupEnv(key); ok {
			err = multierr.Append(err, cmd.Flags().Set(f.Name, val))
		}
	})
	return err
}

// apply loads the config file and then applies flags on top of it
func (o *options) apply(cmd *cobra.Command) error {
	if o.configFile != "" {
		if _, err := config.LoadAndApply(o.configFile); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("hierarchical") {
		logger.SetHierarchical(o.hierarchical)
	}
	if o.level != "" {
		lvl, err := core.ParseLevel(o.level)
		if err != nil {
			return fmt.Errorf("--level: %w", err)
		}
		if err := logger.Root().SetLevel(lvl); err != nil {
			return err
		}
	}
	if o.stackLevel != "" {
		lvl, err := core.ParseLevel(o.stackLevel)
		if err != nil {
			return fmt.Errorf("--stack-level: %w", err)
		}
		logger.SetStackTraceLevel(lvl)
	}
	for name, level := range o.levels {
		lvl, err := core.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
		l, err := logger.Get(name)
		if err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
		if err := l.SetLevel(lvl); err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
	}
	return nil
}

// newHandler builds the output handler selected by --format, wrapped in
// a filter when --filter is set.
func (o *options) newHandler(w io.Writer) (handler.Handler, error) {
	h, err := o.newFormatHandler(w)
	if err != nil || o.filter == "" {
		return h, err
	}
	return handler.NewFilterHandler(o.filter, h)
}

func (o *options) newFormatHandler(w io.Writer) (handler.Handler, error) {
	cfg := formatter.Config{
		IncludeCaller:     o.caller,
		IncludeStackTrace: true,
	}
	switch o.format {
	case "text":
		return handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:    w,
			Formatter: formatter.NewTextFormatter(cfg),
		}), nil
	case "json":
		return handler.NewConsoleHandler(handler.ConsoleConfig{
			Writer:    w,
			Formatter: formatter.NewJSONFormatter(cfg),
		}), nil
	case "template":
		f, err := formatter.NewTemplateFormatter(o.template)
		if err != nil {
			return nil, fmt.Errorf("--template: %w", err)
		}
		return handler.NewConsoleHandler(handler.ConsoleConfig{Writer: w, Formatter: f}), nil
	case "pretty":
		return handler.NewPtermHandler(w), nil
	case "zap":
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		c := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.DebugLevel)
		return handler.NewZapHandler(c), nil
	default:
		return nil, fmt.Errorf("unknown format %q", o.format)
	}
}

// attach routes the records of l to h. In hierarchical mode records
// propagate, so attaching to the root sees everything.
func attach(l *logger.Logger, h handler.Handler, errOut io.Writer) *logger.Subscription {
	target := l
	if logger.Hierarchical() {
		target = logger.Root()
	}
	return handler.Attach(target, h, func(err error) {
		fmt.Fprintf(errOut, "handler: %v\n", err)
	})
}
