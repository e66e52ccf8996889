// Package cli implements the comedor command line client. Every command
// opens a session against the menu service, applies one operation, and
// remembers the menu identifier for the next invocation.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PCalderonpm/menu-escolar/internal/gateway"
	applog "github.com/PCalderonpm/menu-escolar/internal/log"
	"github.com/PCalderonpm/menu-escolar/internal/session"
)

var (
	flagServer string
	flagMenuID string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "comedor",
	Short: "School cafeteria meal tracker",
	Long: "Track per-day meal choices, compare the month against a fixed plan,\n" +
		"and keep the rotating weekly menu, all against a shared menu service.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultServer := os.Getenv("COMEDOR_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", defaultServer, "Menu service base URL")
	rootCmd.PersistentFlags().StringVarP(&flagMenuID, "menu", "m", "", "Menu id (defaults to the last one used)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// stateFile is where the last used menu id is remembered between runs.
func stateFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "comedor", "menu_id"), nil
}

func rememberedMenuID() string {
	path, err := stateFile()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func rememberMenuID(id string) {
	if id == "" {
		return
	}
	path, err := stateFile()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		slog.Debug("Could not remember menu id", "path", path, "error", err)
	}
}

// resolveMenuID picks the session identifier: explicit flag first, then
// the remembered one, and empty otherwise (a fresh id gets minted).
func resolveMenuID() string {
	if flagMenuID != "" {
		return flagMenuID
	}
	return rememberedMenuID()
}

// openSession connects to the service and restores or creates the menu.
func openSession(ctx context.Context) (*session.Session, *gateway.Client) {
	client := gateway.NewClient(flagServer)
	logger := applog.New(applog.Config{Level: slog.LevelWarn}).WithComponent(applog.ComponentCLI)

	id := resolveMenuID()
	s := session.Open(ctx, client, id, logger)
	rememberMenuID(s.ID())

	if !flagQuiet && id == "" && s.ID() != "" {
		fmt.Fprintf(os.Stderr, "  Created menu %s\n", s.ID())
	}
	return s, client
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
