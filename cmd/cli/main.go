package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yourusername/xdownload/internal/app"
	"github.com/yourusername/xdownload/pkg/logger"
)

var version = "dev"

// errReported marks failures whose message was already printed
var errReported = errors.New("failure already reported")

type rootOptions struct {
	configPath    string
	outputDir     string
	platform      string
	engine        string
	listFormats   bool
	listPlatforms bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "xdownload [url]",
		Short: "Download videos from X/Twitter posts",
		Long: `xdownload downloads the video attached to a social media post using yt-dlp.

The platform is detected from the URL; use --plataforma to force one.`,
		Example: `  xdownload https://x.com/user/status/1234567890
  xdownload --formatos https://twitter.com/user/status/1234567890
  xdownload --plataformas`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.listFormats, "formatos", false, "List the formats available for the URL")
	flags.BoolVar(&opts.listPlatforms, "plataformas", false, "List the supported platforms")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Output directory (overrides config)")
	flags.StringVarP(&opts.platform, "plataforma", "p", "", "Force a platform alias instead of detecting it")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "Config file (default: ./configs/config.yaml or ~/.xdownload/config.yaml)")
	persistent.StringVar(&opts.engine, "engine", "", "Engine backend: ytdlp or go-ytdlp (overrides config)")

	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	return rootCmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	out := cmd.OutOrStdout()

	if opts.listPlatforms {
		printPlatforms(out, app.NewDefaultRegistry(nil))
		return nil
	}

	if len(args) == 0 {
		cmd.Usage()
		return errors.New("a post URL is required")
	}
	url := strings.TrimSpace(args[0])

	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintln(out, strings.Repeat("=", 60))
	color.New(color.Bold).Fprintf(out, "xdownload %s\n", version)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	if opts.listFormats {
		return rt.Manager.ListFormats(cmd.Context(), url, opts.platform, out)
	}

	result := rt.Manager.Download(cmd.Context(), app.DownloadRequest{
		URL:       url,
		Platform:  opts.platform,
		OutputDir: opts.outputDir,
		Out:       out,
	})
	if !result.Success {
		fmt.Fprintln(cmd.ErrOrStderr(), "\n"+color.RedString("Error: %s", result.Error))
		return errReported
	}
	return nil
}

// newRuntime loads the configuration, applies flag overrides and wires the services
func newRuntime(opts *rootOptions) (*app.Runtime, error) {
	config, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.engine != "" {
		config.Engine.Backend = opts.engine
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return app.NewRuntime(config, log)
}

func printPlatforms(out io.Writer, registry *app.Registry) {
	color.New(color.Bold).Fprintln(out, "Supported platforms:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range registry.Platforms() {
		fmt.Fprintf(w, "  %s\t%s\n", p.Alias, strings.Join(p.Domains, ", "))
	}
	w.Flush()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}
