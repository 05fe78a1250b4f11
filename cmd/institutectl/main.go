// Package main provides institutectl, the operator CLI for the institute
// backend.  It opens the same store the web server uses, so it can inspect
// and export leads, seed a fresh deployment, and hash console passwords.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smskills/institute/internal/app"
	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/logger"
)

var (
	// rootDir is set by the --root flag.
	rootDir string

	// jsonOutput switches list commands to JSON.
	jsonOutput bool

	// inst is the wired application, built by PersistentPreRunE.
	inst *app.App
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "institutectl",
	Short: "Operate the institute content backend",
	Long: `institutectl reads the same configuration as the web server
(conf/institute.yaml plus INSTITUTE_* environment variables) and works
directly against the configured store.`,
	SilenceUsage:      true,
	PersistentPreRunE: openApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if inst != nil {
			return inst.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "install root holding conf/ (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(enquiriesCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(seedCmd)
}

// standalone lists commands that run without a store.
var standalone = map[string]bool{
	"hash-password": true,
	"help":          true,
	"completion":    true,
}

// openApp loads config and builds the app for commands that need it.
func openApp(cmd *cobra.Command, args []string) error {
	if standalone[cmd.Name()] {
		return nil
	}
	root := rootDir
	if root == "" {
		root = config.RootDir()
	}
	cfg, err := config.LoadFrom(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.Console(cfg.Log.Level)
	a, err := app.Build(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	inst = a
	return nil
}
