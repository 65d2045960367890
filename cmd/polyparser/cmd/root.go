/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/config"
	"github.com/ssargent/polyparser/pkg/convert"
	"github.com/ssargent/polyparser/pkg/di"
	"github.com/ssargent/polyparser/pkg/logging"
)

var (
	container *di.Container

	cfg    = config.DefaultConfig()
	logger = slog.New(slog.DiscardHandler)

	flagConfig  string
	flagSilent  bool
	flagVerbose bool
	flagOutput  string
	flagType    convert.Format
)

// SetContainer injects the dependency container.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "polyparser [file]",
	Short: "Convert PolyBridge layouts and save slots",
	Long: `polyparser converts PolyBridge layout (.layout) and save-slot (.slot)
files to readable JSON or YAML trees, and layout trees back to binaries.

Given a file, the conversion is picked from its extension:
  bridge.layout             -> bridge.layout.json
  bridge.layout.json|yaml   -> bridge.layout
  save.slot                 -> save.slot.json`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return convertFiles(cmd, args)
	},
}

// setup loads the config file and builds the logger. Flags win over the
// file.
func setup(cmd *cobra.Command, args []string) error {
	switch {
	case flagConfig != "":
		c, err := config.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = c
	case config.ConfigExists(config.GetDefaultConfigPath()):
		c, err := config.LoadConfig(config.GetDefaultConfigPath())
		if err != nil {
			return err
		}
		cfg = c
	default:
		cfg = config.DefaultConfig()
	}

	if !cmd.Flags().Changed("type") && cfg.Output.Format != "" {
		if err := flagType.Set(cfg.Output.Format); err != nil {
			return fmt.Errorf("config output.format: %w", err)
		}
	}

	level := cfg.Logging.Level
	if flagVerbose {
		level = "debug"
	}
	l, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Silent: flagSilent,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func sessionOptions() codec.SessionOptions {
	return cfg.Limits.SessionOptions(logger)
}

func convertOptions() convert.Options {
	return convert.Options{
		Format:  flagType,
		Indent:  cfg.Output.Indent,
		Output:  flagOutput,
		Session: sessionOptions(),
		Logger:  logger,
	}
}

// stdout is where command results go; --silent suppresses them.
func stdout(cmd *cobra.Command) io.Writer {
	if flagSilent {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// errorMessage renders err for the terminal.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, codec.ErrIO):
		return fmt.Sprintf("could not read or write file: %v", err)
	case errors.Is(err, codec.ErrAnomalousValue):
		return fmt.Sprintf("file looks corrupt, giving up: %v", err)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default "+config.GetDefaultConfigPath()+")")
	pf.BoolVarP(&flagSilent, "silent", "s", false, "suppress all output except errors")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log per-field detail")
	pf.StringVarP(&flagOutput, "output", "o", "", "output path (default derived from the input)")
	pf.VarP(&flagType, "type", "t", "tree format written when decoding (json|yaml)")
}
