package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/renuIyer/loadtrack/internal/config"
	"github.com/renuIyer/loadtrack/internal/prefs"
	"github.com/renuIyer/loadtrack/internal/supplychain"
	"github.com/renuIyer/loadtrack/internal/ui"
)

// Options configure the loadtrack application.
type Options struct {
	ConfigPath string // empty uses ~/.config/loadtrack/config.toml
	PrefsPath  string // empty uses ~/.config/loadtrack/prefs.toml
	Record     string // open this record's provenance on launch
	PublicKey  string // overrides the configured viewer identity
}

// Run boots the loadtrack TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithPublicKey(opts.PublicKey)

	logger, closeLog, err := openLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("using default preferences", "path", prefsPath, "error", err)
	}

	client, err := supplychain.NewClient(cfg.APIURL,
		supplychain.WithPublicKey(cfg.PublicKey),
		supplychain.WithAuthToken(cfg.AuthToken),
		supplychain.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	start := startRoute(opts.Record, userPrefs)
	logger.Info("loadtrack starting",
		"api", client.BaseURL(),
		"record_type", cfg.RecordType,
		"authenticated", cfg.Authenticated(),
		"start", start.String(),
	)

	err = ui.Run(ui.Options{
		Context:         ctx,
		API:             client,
		Logger:          logger,
		RecordType:      cfg.RecordType,
		DisplayProperty: cfg.DisplayProperty,
		Start:           start,
		Prefs:           userPrefs,
		PrefsPath:       prefsPath,
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("ui exited", "error", err)
		return err
	}
	logger.Info("loadtrack stopped")
	return nil
}

// startRoute picks the first view: an explicit record wins over the saved
// start view.
func startRoute(record string, p prefs.Prefs) ui.Route {
	if record = strings.TrimSpace(record); record != "" {
		return ui.ProvenanceRoute(record, nil)
	}
	if p.StartView == prefs.StartList {
		return ui.ListRoute()
	}
	return ui.DashboardRoute()
}

// openLogger writes text logs to path. The terminal belongs to the UI, so an
// empty path discards logs instead of falling back to stderr.
func openLogger(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}
