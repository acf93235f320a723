// Command frpcat pipes lines through a chain of event stream combinators.
//
//	tail -f app.log | frpcat --match '^ERROR' --distinct --throttle 1s
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version information set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		linger     time.Duration
		logLevel   string
		flags      stageFlags
	)

	cmd := &cobra.Command{
		Use:   "frpcat [file]",
		Short: "Pipe lines through event stream combinators",
		Long: `frpcat reads lines from a file or stdin, emits each one on an event
stream and prints what comes out of the combinator chain.

Stages come from a YAML pipeline file (--config) or from flags. Stage flags
replace the stages of the file and are applied in this order:
match, skip, distinct, upper, limit, throttle, defer.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &Config{}
			if configPath != "" {
				loaded, err := LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			if stages := flags.stages(cmd.Flags()); len(stages) > 0 {
				cfg.Stages = stages
			}
			if cmd.Flags().Changed("linger") {
				cfg.Linger = linger
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			return runPipeline(cmd.Context(), in, cmd.OutOrStdout(), cfg, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML pipeline file")
	cmd.Flags().DurationVar(&linger, "linger", 0, "keep running this long after the input ends")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.register(cmd.Flags())

	cmd.AddCommand(versionCmd())

	return cmd
}

type stageFlags struct {
	match    string
	skip     int
	distinct bool
	upper    bool
	limit    int
	throttle time.Duration
	delay    time.Duration
}

func (f *stageFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.match, "match", "m", "", "keep lines matching this regular expression")
	fs.IntVar(&f.skip, "skip", 0, "drop the first n lines")
	fs.BoolVarP(&f.distinct, "distinct", "d", false, "drop lines equal to the previous one")
	fs.BoolVarP(&f.upper, "upper", "u", false, "upper-case lines")
	fs.IntVarP(&f.limit, "limit", "n", 0, "stop after n lines")
	fs.DurationVar(&f.throttle, "throttle", 0, "print only the last line of each burst")
	fs.DurationVar(&f.delay, "defer", 0, "delay every line")
}

// stages returns the stages of the flags set on the command line.
func (f *stageFlags) stages(fs *pflag.FlagSet) []Stage {
	var stages []Stage

	if fs.Changed("match") {
		stages = append(stages, Stage{Kind: "match", Pattern: f.match})
	}
	if fs.Changed("skip") {
		stages = append(stages, Stage{Kind: "skip", N: f.skip})
	}
	if f.distinct {
		stages = append(stages, Stage{Kind: "distinct"})
	}
	if f.upper {
		stages = append(stages, Stage{Kind: "upper"})
	}
	if fs.Changed("limit") {
		stages = append(stages, Stage{Kind: "limit", N: f.limit})
	}
	if fs.Changed("throttle") {
		stages = append(stages, Stage{Kind: "throttle", Duration: f.throttle})
	}
	if fs.Changed("defer") {
		stages = append(stages, Stage{Kind: "defer", Duration: f.delay})
	}

	return stages
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "frpcat %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
