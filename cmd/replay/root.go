package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/gestura/internal/adapters/device"
	"github.com/okian/gestura/internal/config"
	"github.com/okian/gestura/internal/domain/recognizer"
	"github.com/okian/gestura/internal/replay"
	"github.com/okian/gestura/pkg/logger"
)

var errNoScript = errors.New("a script path or --demo is required")

type options struct {
	demo       bool
	configPath string
	url        string
	interval   time.Duration
	timeout    time.Duration
	realtime   bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "replay [script.yaml]",
		Short: "Replay a touch frame script through the gesture recognizer",
		Long: `Replay reads a YAML frame script and prints every recognized gesture as
one JSON line. Thresholds come from the daemon configuration
(GESTURA_CONFIG and GESTURA_* variables). With --url the frames are posted
to a running daemon instead and its stats are printed.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "replay the built-in demo script")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (overrides GESTURA_CONFIG)")
	cmd.Flags().StringVar(&opts.url, "url", "", "post frames to the daemon at this base URL")
	cmd.Flags().DurationVar(&opts.interval, "interval", replay.DefaultInterval, "spacing of frames without at_ms")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", replay.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "with --url, post frames one by one at their offsets")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	ctx := cmd.Context()
	log := logger.Nop()
	if opts.verbose {
		log = logger.New(cmd.ErrOrStderr())
	}

	script, err := loadScript(args, opts.demo)
	if err != nil {
		return err
	}

	if opts.url != "" {
		st, err := replay.Remote(ctx, replay.RemoteConfig{
			BaseURL:  opts.url,
			Timeout:  opts.timeout,
			Interval: opts.interval,
			Realtime: opts.realtime,
			Logger:   log,
		}, script)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st)
	}

	if opts.configPath != "" {
		if err := os.Setenv(config.EnvConfig, opts.configPath); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvConfig, err)
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	for _, ce := range cfg.Sanitize() {
		log.Warn(ctx, "invalid config value replaced", logger.String("key", ce.Key), logger.Error(ce))
	}

	recOpts := append(cfg.RecognizerOptions(), recognizer.WithLogger(log.Named("recognizer")))
	st, err := replay.Local(ctx, script, cfg.Classifier(), opts.interval, cmd.OutOrStdout(), recOpts...)
	if err != nil {
		return err
	}
	log.Info(ctx, "replay finished",
		logger.String("script", script.Name),
		logger.Int("frames", st.Frames),
		logger.Int("gestures", st.Gestures))
	return nil
}

func loadScript(args []string, demo bool) (device.Script, error) {
	switch {
	case len(args) == 1:
		return device.LoadScript(args[0])
	case demo:
		return device.DemoScript(), nil
	default:
		return device.Script{}, errNoScript
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
