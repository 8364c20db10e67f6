package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/config"
	"github.com/theirongolddev/nexus/internal/ledger"
	"github.com/theirongolddev/nexus/internal/store"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "nexus",
	Short:         "Personal and team budget tracker",
	Long:          "Track income and expenses per profile, compare spending against budgets, and audit managed profiles.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default $XDG_DATA_HOME/nexus)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

// loadConfig reads .env, the config file and the environment, then applies
// command line overrides.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if flagVerbose {
		level = slog.LevelDebug
	}
	if flagQuiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// session is the state shared by commands that touch the ledger.
type session struct {
	cfg    config.Config
	log    *slog.Logger
	db     *store.DB
	ledger *ledger.Ledger
}

func (s *session) Close() {
	_ = s.db.Close()
}

// openSession is the shared loading path used by all ledger commands. Logs go
// to logOut.
func openSession(logOut io.Writer) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(logOut, cfg)

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", "path", cfg.DBPath())

	l, err := ledger.Open(db,
		ledger.WithKey(cfg.StoreKey()),
		ledger.WithLegacyKeys(cfg.General.LegacyKeys...),
		ledger.WithSeed(cfg.Seed()),
		ledger.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &session{cfg: cfg, log: log, db: db, ledger: l}, nil
}

// progressf prints a status line to stderr unless --quiet.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
