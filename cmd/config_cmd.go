// Package cmd implements the nexus CLI commands.
package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/config"
	"github.com/theirongolddev/nexus/internal/store"
)

var flagPruneLegacy bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagPruneLegacy, "prune-legacy", false, "Delete documents left under legacy keys once the current key is saved")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Store key:      %s\n", cfg.StoreKey())
	if len(cfg.General.LegacyKeys) > 0 {
		fmt.Printf("    Legacy keys:    %s\n", strings.Join(cfg.General.LegacyKeys, ", "))
	}
	if err := printStoreInfo(cfg); err != nil {
		return err
	}
	fmt.Println()

	seed := cfg.Seed()
	fmt.Println("  [Profiles]")
	fmt.Printf("    Admin:            %s (%s)\n", seed.AdminName, cli.FormatMoney(seed.AdminBudget))
	fmt.Printf("    Admin categories: %s\n", strings.Join(seed.AdminCats, ", "))
	fmt.Printf("    New profile:      %s\n", cli.FormatMoney(seed.UserBudget))
	fmt.Printf("    User categories:  %s\n", strings.Join(seed.UserCats, ", "))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `nexus setup` to reconfigure.")
	return nil
}

func printStoreInfo(cfg config.Config) error {
	if _, err := os.Stat(cfg.DBPath()); err != nil {
		fmt.Println("    Database:       not created yet")
		return nil
	}
	db, err := store.Open(cfg.DBPath())
	if err != nil {
		fmt.Printf("    Database:       %s (unreadable: %v)\n", cfg.DBPath(), err)
		return nil
	}
	defer func() { _ = db.Close() }()

	info, ok, err := db.Stat(cfg.StoreKey())
	if err != nil || !ok {
		fmt.Printf("    Database:       %s (empty)\n", cfg.DBPath())
		return nil
	}
	fmt.Printf("    Database:       %s\n", cfg.DBPath())
	fmt.Printf("    Document:       %s bytes, revision %d, saved %s\n",
		cli.FormatCount(int(info.Size)), info.Revision, info.UpdatedAt.Local().Format("2006-01-02 15:04"))

	keys, err := db.Keys()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	var others []string
	for _, k := range keys {
		if k == cfg.StoreKey() {
			continue
		}
		if flagPruneLegacy && slices.Contains(cfg.General.LegacyKeys, k) {
			if err := db.Delete(k); err != nil {
				return fmt.Errorf("deleting %s: %w", k, err)
			}
			progressf("Removed legacy document %s", k)
			continue
		}
		others = append(others, k)
	}
	if len(others) > 0 {
		fmt.Printf("    Other docs:     %s\n", strings.Join(others, ", "))
	}
	return nil
}
