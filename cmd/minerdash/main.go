package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/minerdash/internal/app"
	"github.com/five82/minerdash/internal/buildinfo"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(app.Run).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "minerdash: %v\n", err)
		return 1
	}
	return 0
}

type runFunc func(ctx context.Context, opts app.Options) error

func newRootCmd(runDashboard runFunc) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "minerdash",
		Short: "Terminal dashboard for a mining rig",
		Long: `minerdash polls a miner's stats endpoint and shows pool connectivity,
the current job and every solver device in the terminal.

Press q or ctrl+c to quit, tab to switch panels and T to cycle themes.`,
		Version:       buildinfo.Get().Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/minerdash/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/minerdash/prefs.toml)")
	flags.StringVar(&opts.APIBind, "api", "", "miner stats endpoint, host:port or URL (overrides api_bind)")
	flags.DurationVar(&opts.PollEvery, "poll", 0, "stats poll interval, e.g. 2s (overrides stats_poll)")
	flags.StringVar(&opts.Theme, "theme", "", "color theme: Classic, Nightfox or Slate")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout(), buildinfo.Get())
		},
	}
}

func printVersion(w io.Writer, info buildinfo.Info) {
	fmt.Fprintf(w, "minerdash %s\n", info.Version)
	if info.Commit != "" {
		fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
	}
	if info.Date != "" {
		built := info.Date
		if t, err := time.Parse(time.RFC3339, info.Date); err == nil {
			built = t.UTC().Format("2006-01-02 15:04 MST")
		}
		fmt.Fprintf(w, "  built:    %s\n", built)
	}
	fmt.Fprintf(w, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(w, "  platform: %s\n", info.Platform)
}
