package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/minerdash/internal/buildinfo"
	"github.com/five82/minerdash/internal/config"
	"github.com/five82/minerdash/internal/minerapi"
	"github.com/five82/minerdash/internal/prefs"
	"github.com/five82/minerdash/internal/stats"
	"github.com/five82/minerdash/internal/tui"
	"github.com/five82/minerdash/internal/tui/term"
	"github.com/five82/minerdash/internal/views"
)

// Options configure the dashboard. Non-zero fields override the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/minerdash/prefs.toml
	APIBind    string
	PollEvery  time.Duration
	Theme      string
}

// Run boots the dashboard and blocks until the operator quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logPath := cfg.LogFile
	closeLog, logErr := setupLogging(logPath, cfg.LogLevel)
	defer closeLog()
	if logErr != nil {
		logPath = ""
		defer fmt.Fprintf(os.Stderr, "minerdash: logging disabled: %v\n", logErr)
	}

	client, err := minerapi.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init miner client: %w", err)
	}

	prefsPath := opts.PrefsPath
	if strings.TrimSpace(prefsPath) == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)
	themeName := userPrefs.Theme
	if cfg.Theme != "" {
		themeName = cfg.Theme
	}

	store := &stats.Store{}
	pollCtx, stopPoll := context.WithCancel(ctx)
	pollerDone := StartPoller(pollCtx, store, client, cfg.StatsPoll)
	defer func() {
		stopPoll()
		<-pollerDone
	}()

	info := buildinfo.Get()
	log.WithFields(logrus.Fields{
		"version":  info.Version,
		"endpoint": client.BaseURL(),
		"poll":     cfg.StatsPoll,
		"refresh":  cfg.RefreshInterval,
	}).Info("dashboard starting")

	controller, err := tui.NewController(tui.ControllerOptions{
		UI: tui.UIOptions{
			Surface: term.Factory(term.Options{
				Title:     "Miner Dashboard Version " + info.Version,
				ThemeName: themeName,
				View:      userPrefs.View,
				PrefsPath: prefsPath,
				FPS:       cfg.FPS,
			}),
			Views: dashboardViews(info, logPath),
		},
		UpdateInterval: cfg.RefreshInterval,
		Tick:           cfg.Tick,
	})
	if err != nil {
		return fmt.Errorf("start ui: %w", err)
	}

	controller.Run(ctx, store)
	log.Info("dashboard stopped")
	return nil
}

func dashboardViews(info buildinfo.Info, logPath string) []tui.View {
	return []tui.View{
		views.MiningView{},
		views.VersionView{Info: info, StartedAt: time.Now()},
		views.LogView{Path: logPath},
	}
}

func applyOverrides(cfg *config.Config, opts Options) {
	if v := strings.TrimSpace(opts.APIBind); v != "" {
		cfg.APIBind = v
	}
	if opts.PollEvery > 0 {
		cfg.StatsPoll = opts.PollEvery
	}
	if v := strings.TrimSpace(opts.Theme); v != "" {
		cfg.Theme = v
	}
}
