// Package commands implements the chronoctl command tree.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/chronotours/internal/app"
	"github.com/pkordes/chronotours/internal/config"
)

// cli carries per-invocation state shared by every subcommand.
type cli struct {
	home    string
	latency time.Duration
	verbose bool

	app   *app.App
	close func()
}

// Execute runs chronoctl with os.Args.
func Execute() error {
	root, c := newRoot()
	defer c.shutdown()
	return root.Execute()
}

// newRoot builds a fresh command tree. Stores are opened in
// PersistentPreRunE; the caller must call shutdown once the command returns,
// whether or not it failed.
func newRoot() (*cobra.Command, *cli) {
	c := &cli{}
	root := &cobra.Command{
		Use:          "chronoctl",
		Short:        "Browse and book time-travel tours",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.home, "home", "", "state dir (default ~/.chronotours)")
	root.PersistentFlags().DurationVar(&c.latency, "latency", 0, "simulated remote latency")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(
		loginCmd(c), registerCmd(c), logoutCmd(c), whoamiCmd(c),
		periodsCmd(c), toursCmd(c),
		bookCmd(c), bookingsCmd(c), cancelCmd(c),
		themeCmd(c),
	)
	return root, c
}

func (c *cli) open(cmd *cobra.Command) error {
	if c.home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.home = filepath.Join(dir, ".chronotours")
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	kv, closeFn, err := app.OpenStorage(cmd.Context(), app.Storage{Driver: config.DriverFile, DataDir: c.home}, logger)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.home, err)
	}
	c.close = closeFn
	c.app = app.New(app.SimulatedRemote(c.latency), kv, logger)
	c.app.Init(cmd.Context())
	return nil
}

func (c *cli) shutdown() {
	if c.app != nil {
		c.app.Dispose()
		c.app = nil
	}
	if c.close != nil {
		c.close()
		c.close = nil
	}
}
